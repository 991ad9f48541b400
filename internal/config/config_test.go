package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Setenv("PORT", "")
	configPath := writeConfig(t, `
server:
  port: 9090

assets:
  root: "/srv/webretro"
  dashboard: "hub.html"
  emulator: "play.html"

roms:
  root: "/data/roms"

log:
  level: "debug"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Assets.Root != "/srv/webretro" {
		t.Errorf("expected assets root '/srv/webretro', got '%s'", cfg.Assets.Root)
	}
	if cfg.Assets.Dashboard != "hub.html" {
		t.Errorf("expected dashboard 'hub.html', got '%s'", cfg.Assets.Dashboard)
	}
	if cfg.Assets.Emulator != "play.html" {
		t.Errorf("expected emulator 'play.html', got '%s'", cfg.Assets.Emulator)
	}
	if cfg.ROMs.Root != "/data/roms" {
		t.Errorf("expected roms root '/data/roms', got '%s'", cfg.ROMs.Root)
	}
	if cfg.Log.GetLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Log.GetLevel())
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("expected addr '0.0.0.0:9090', got '%s'", cfg.Addr())
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Assets.Root != "./webretro" {
		t.Errorf("expected default assets root './webretro', got '%s'", cfg.Assets.Root)
	}
	if cfg.Assets.Dashboard != "gaming-interface.html" {
		t.Errorf("expected default dashboard 'gaming-interface.html', got '%s'", cfg.Assets.Dashboard)
	}
	if cfg.Assets.Emulator != "index.html" {
		t.Errorf("expected default emulator 'index.html', got '%s'", cfg.Assets.Emulator)
	}
	if cfg.ROMs.Root != filepath.Join("webretro", "roms") {
		t.Errorf("expected default roms root 'webretro/roms', got '%s'", cfg.ROMs.Root)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("expected addr '0.0.0.0:8000', got '%s'", cfg.Addr())
	}
}

func TestLoad_ROMRootFollowsAssetRoot(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(writeConfig(t, "assets:\n  root: /opt/retro\n"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.ROMs.Root != filepath.Join("/opt/retro", "roms") {
		t.Errorf("expected roms root under asset root, got '%s'", cfg.ROMs.Root)
	}
}

func TestLoad_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected PORT env to win, got %d", cfg.Server.Port)
	}
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	for _, v := range []string{"abc", "-1", "70000"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("PORT", v)
			if _, err := Load(""); err == nil {
				t.Errorf("expected error for PORT=%q", v)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for non-existent config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: yaml: content: ["))
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLogConfig_GetLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &LogConfig{Level: tt.level}
		if got := cfg.GetLevel(); got != tt.expected {
			t.Errorf("level %q: expected %v, got %v", tt.level, tt.expected, got)
		}
	}
}

func TestConfig_ROMsInAssets(t *testing.T) {
	tests := []struct {
		name   string
		assets string
		roms   string
		want   bool
	}{
		{"default layout", "./webretro", "webretro/roms", true},
		{"same directory", "/srv/webretro", "/srv/webretro", true},
		{"nested", "/srv/webretro", "/srv/webretro/data/roms", true},
		{"sibling", "/srv/webretro", "/srv/roms", false},
		{"parent", "/srv/webretro", "/srv", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Assets: AssetsConfig{Root: tt.assets},
				ROMs:   ROMsConfig{Root: tt.roms},
			}
			if got := cfg.ROMsInAssets(); got != tt.want {
				t.Errorf("ROMsInAssets() = %v, want %v", got, tt.want)
			}
		})
	}
}
