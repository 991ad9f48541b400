// Package main is the entry point for the WebRetro server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/pandeptwidyaop/webretro-server/internal/assets"
	"github.com/pandeptwidyaop/webretro-server/internal/catalog"
	"github.com/pandeptwidyaop/webretro-server/internal/config"
	"github.com/pandeptwidyaop/webretro-server/internal/router"
	"github.com/pandeptwidyaop/webretro-server/internal/services"
	"github.com/pandeptwidyaop/webretro-server/internal/version"
)

func main() {
	// Check for subcommands first
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("Server failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	started := time.Now()

	configPath := flag.String("config", "config.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return nil
	}

	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	setupLogger(level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("Could not load config, using defaults", "path", *configPath, "err", err)
		cfg, err = config.Load("")
		if err != nil {
			return err
		}
	}
	level.Set(cfg.Log.GetLevel())
	if !cfg.ROMsInAssets() {
		slog.Warn("ROM root is outside the asset root; listed ROMs will not load in the emulator",
			"roms", cfg.ROMs.Root, "assets", cfg.Assets.Root)
	}

	systems := catalog.Default()
	if err := systems.Validate(); err != nil {
		return fmt.Errorf("system catalog: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	library := services.NewLibraryService(cfg.ROMs.Root)
	if lib, err := library.Scan(ctx); err != nil {
		slog.WarnContext(ctx, "ROM library not readable yet", "root", cfg.ROMs.Root, "err", err)
	} else {
		services.LogSummary(ctx, cfg.ROMs.Root, lib)
	}

	r, err := router.New(cfg, systems, library, assets.New(cfg.Assets.Root), started)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	addr := cfg.Addr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "WebRetro server starting",
			"addr", addr,
			"version", version.Version,
			"assets", cfg.Assets.Root,
			"systems", systems.Len(),
		)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.Info("Server stopped")
	}
	return nil
}

// setupLogger installs a tint handler on stderr; colour only on a terminal,
// no timestamps under systemd since journald adds its own.
func setupLogger(level *slog.LevelVar) {
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if underSystemd && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			if a.Key == "id" && a.Value.String() == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)
}
