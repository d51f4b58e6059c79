package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/tween"
	"github.com/yourusername/gridsync/internal/window"
)

const (
	DefaultConfigDir  = ".config/gridsync"
	DefaultConfigFile = "config.yaml"
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TickIntervalMs:      25,
			Tolerance:           geometry.DefaultTolerance,
			DefaultEasing:       tween.Default,
			UserBoundsTimeoutMs: 2000,
			MaxWidth:            geometry.MaxCoord,
			MaxHeight:           geometry.MaxCoord,
		},
		Logging: LoggingConfig{Level: "info"},
		Backend: BackendConfig{Kind: BackendMemory},
	}
}

// LoadConfig loads configuration from the specified path or default location
// If path is empty, uses ~/.config/gridsync/config.yaml, or Default when
// that file does not exist.
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "yaml", "yml", "json":
	default:
		return nil, fmt.Errorf("unsupported config format: .%s", ext)
	}
	return LoadConfigFromBytes(data, ext)
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json". Missing keys keep their defaults.
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// Limits returns the rect limits applied to animation output
func (c *Config) Limits() geometry.Limits {
	return geometry.Limits{
		MinWidth:  c.Engine.MinWidth,
		MinHeight: c.Engine.MinHeight,
		MaxWidth:  c.Engine.MaxWidth,
		MaxHeight: c.Engine.MaxHeight,
	}
}

// ManagerOptions converts the engine settings for window.NewManager.
// The scheduler is left for the caller to pick.
func (c *Config) ManagerOptions() window.Options {
	opts := window.DefaultOptions()
	opts.TickInterval = time.Duration(c.Engine.TickIntervalMs) * time.Millisecond
	opts.Tolerance = c.Engine.Tolerance
	opts.DefaultEasing = c.Engine.DefaultEasing
	opts.UserBoundsTimeout = time.Duration(c.Engine.UserBoundsTimeoutMs) * time.Millisecond
	opts.Limits = c.Limits()
	return opts
}

// Marshal renders the config in format ("yaml" or "json")
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml", "":
		return yaml.Marshal(c)
	case "json":
		return json.MarshalIndent(c, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
}
