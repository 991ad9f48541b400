package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// BindHost is the fixed listen address; the server always binds all interfaces.
const BindHost = "0.0.0.0"

type Config struct {
	Server ServerConfig `yaml:"server"`
	Assets AssetsConfig `yaml:"assets"`
	ROMs   ROMsConfig   `yaml:"roms"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type AssetsConfig struct {
	Root      string `yaml:"root"`
	Dashboard string `yaml:"dashboard"`
	Emulator  string `yaml:"emulator"`
}

type ROMsConfig struct {
	Root string `yaml:"root"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// GetLevel parses the configured level, falling back to info.
func (c *LogConfig) GetLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", BindHost, c.Server.Port)
}

// ROMsInAssets reports whether the ROM root lies inside the asset root.
// ROMs outside the asset tree are listed but cannot be fetched by the emulator.
func (c *Config) ROMsInAssets() bool {
	assetRoot, err := filepath.Abs(c.Assets.Root)
	if err != nil {
		return false
	}
	romRoot, err := filepath.Abs(c.ROMs.Root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(assetRoot, romRoot)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Load reads the YAML file at path. An empty path yields the defaults.
// The PORT environment variable always wins over the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Server.Port = port
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Assets.Root == "" {
		cfg.Assets.Root = "./webretro"
	}
	if cfg.Assets.Dashboard == "" {
		cfg.Assets.Dashboard = "gaming-interface.html"
	}
	if cfg.Assets.Emulator == "" {
		cfg.Assets.Emulator = "index.html"
	}
	if cfg.ROMs.Root == "" {
		cfg.ROMs.Root = filepath.Join(cfg.Assets.Root, "roms")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
