package config

import (
	"fmt"

	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/tween"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateEngine(&c.Engine); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if c.Logging.Level != "" {
		if err := logging.CheckLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging: %w", err)
		}
	}

	switch c.Backend.Kind {
	case BackendMemory, BackendX11:
	default:
		return fmt.Errorf("backend: unknown kind %q (want %s or %s)", c.Backend.Kind, BackendMemory, BackendX11)
	}

	return nil
}

func validateEngine(e *EngineConfig) error {
	if e.TickIntervalMs <= 0 {
		return fmt.Errorf("tickIntervalMs must be positive, got %d", e.TickIntervalMs)
	}
	if e.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, got %d", e.Tolerance)
	}
	if e.UserBoundsTimeoutMs < 0 {
		return fmt.Errorf("userBoundsTimeoutMs cannot be negative, got %d", e.UserBoundsTimeoutMs)
	}
	if _, err := tween.Lookup(e.DefaultEasing); err != nil {
		return fmt.Errorf("defaultEasing: %w", err)
	}

	if e.MinWidth < 0 || e.MinHeight < 0 {
		return fmt.Errorf("minimum size cannot be negative")
	}
	if e.MaxWidth > 0 && e.MinWidth > e.MaxWidth {
		return fmt.Errorf("minWidth %d exceeds maxWidth %d", e.MinWidth, e.MaxWidth)
	}
	if e.MaxHeight > 0 && e.MinHeight > e.MaxHeight {
		return fmt.Errorf("minHeight %d exceeds maxHeight %d", e.MinHeight, e.MaxHeight)
	}
	return nil
}
