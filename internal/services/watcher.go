package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// EventLibraryChanged is the only event type currently emitted.
const EventLibraryChanged = "library_changed"

// LibraryEvent describes a change below the ROM root. Name is empty when a
// whole system directory appeared or went away.
type LibraryEvent struct {
	Type   string `json:"type"`
	System string `json:"system"`
	Name   string `json:"name,omitempty"`
	Op     string `json:"op"`
}

// Watch observes the ROM root and its system directories until ctx is done.
// Each call owns its own watcher; the returned channel is closed when the
// watch ends. Events are dropped when the consumer falls behind.
func (s *LibraryService) Watch(ctx context.Context) (<-chan LibraryEvent, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(s.root); err != nil {
		_ = w.Close()
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := w.Add(filepath.Join(s.root, entry.Name())); err != nil {
			slog.WarnContext(ctx, "Could not watch system directory", "system", entry.Name(), "err", err)
		}
	}

	events := make(chan LibraryEvent, 16)
	go func() {
		defer close(events)
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				ev, ok := s.translate(ctx, w, event)
				if !ok {
					continue
				}
				select {
				case events <- ev:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching ROM library", "err", err)
			}
		}
	}()

	return events, nil
}

func (s *LibraryService) translate(ctx context.Context, w *fsnotify.Watcher, event fsnotify.Event) (LibraryEvent, bool) {
	if event.Op == fsnotify.Chmod {
		return LibraryEvent{}, false
	}
	rel, err := filepath.Rel(s.root, event.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return LibraryEvent{}, false
	}

	ev := LibraryEvent{
		Type: EventLibraryChanged,
		Op:   strings.ToLower(event.Op.String()),
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	switch len(parts) {
	case 1:
		// Root level: only system directories matter.
		ev.System = parts[0]
		if event.Has(fsnotify.Create) {
			info, err := os.Stat(event.Name)
			if err != nil || !info.IsDir() {
				return LibraryEvent{}, false
			}
			if err := w.Add(event.Name); err != nil {
				slog.WarnContext(ctx, "Could not watch system directory", "system", ev.System, "err", err)
			}
			return ev, true
		}
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			return ev, true
		}
		return LibraryEvent{}, false
	case 2:
		if IsIgnored(parts[1]) {
			return LibraryEvent{}, false
		}
		ev.System = parts[0]
		ev.Name = parts[1]
		return ev, true
	default:
		return LibraryEvent{}, false
	}
}
