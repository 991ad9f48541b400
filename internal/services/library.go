// Package services provides the ROM library scanning and watching logic.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pandeptwidyaop/webretro-server/internal/models"
)

// ReservedFileName is the per-system documentation file that is never listed.
const ReservedFileName = "README.md"

// ErrLibraryUnavailable indicates the ROM root itself could not be read.
var ErrLibraryUnavailable = errors.New("could not read ROMs directory")

// LibraryService lists ROM files below a root directory laid out as
// <root>/<system>/<file>.
type LibraryService struct {
	root string
}

// NewLibraryService creates a new LibraryService for root.
func NewLibraryService(root string) *LibraryService {
	return &LibraryService{root: root}
}

// Root returns the directory being scanned.
func (s *LibraryService) Root() string {
	return s.root
}

// Scan walks the ROM root on every call. Unreadable system directories and
// files are skipped with a warning; only an unreadable root is an error.
// File extensions are not checked against the catalog.
func (s *LibraryService) Scan(ctx context.Context) (models.Library, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryUnavailable, err)
	}

	library := make(models.Library)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		system := entry.Name()

		roms, err := s.scanSystem(ctx, system)
		if err != nil {
			slog.WarnContext(ctx, "Could not read system directory", "system", system, "err", err)
			continue
		}
		if len(roms) > 0 {
			library[system] = roms
		}
	}

	return library, nil
}

func (s *LibraryService) scanSystem(ctx context.Context, system string) ([]models.ROM, error) {
	dir := filepath.Join(s.root, system)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var roms []models.ROM
	for _, entry := range entries {
		name := entry.Name()
		if IsIgnored(name) || entry.IsDir() {
			continue
		}

		// Stat rather than entry.Info so symlinked ROMs report the target size.
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			slog.WarnContext(ctx, "Could not stat ROM", "system", system, "name", name, "err", err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		roms = append(roms, models.ROM{
			Name:   name,
			Path:   system + "/" + name,
			System: system,
			Size:   info.Size(),
		})
	}

	return roms, nil
}

// LogSummary logs the size of lib in human terms.
func LogSummary(ctx context.Context, root string, lib models.Library) {
	slog.InfoContext(ctx, "ROM library",
		"root", root,
		"systems", len(lib),
		"roms", lib.Count(),
		"size", humanize.Bytes(uint64(lib.TotalSize())),
	)
}

// IsIgnored reports whether a file name is excluded from listings.
func IsIgnored(name string) bool {
	return strings.HasPrefix(name, ".") || name == ReservedFileName
}
