package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yourusername/gridsync/internal/config"
	"github.com/yourusername/gridsync/internal/logging"
)

func TestSetupLoggingWarnsOnBadLevel(t *testing.T) {
	defer func() {
		cfg = nil
		logStderr = false
		logging.Logger = zerolog.Nop()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}()

	tests := []struct {
		level    string
		wantWarn bool
	}{
		{"debug", false},
		{"", false},
		{"loud", true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg = config.Default()
			cfg.Logging.Level = tt.level
			logStderr = true

			var warn bytes.Buffer
			setupLogging(&warn)

			got := strings.Contains(warn.String(), "invalid log level")
			if got != tt.wantWarn {
				t.Errorf("warned = %v (%q), want %v", got, warn.String(), tt.wantWarn)
			}
		})
	}
}
