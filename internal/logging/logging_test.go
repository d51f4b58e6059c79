package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitWriterFields(t *testing.T) {
	defer func() { Logger = zerolog.Nop() }()

	var buf bytes.Buffer
	InitWriter(&buf)
	Info().Str("window", "editor").Msg("moved")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "moved" {
		t.Errorf("msg = %v, want moved", entry["msg"])
	}
	if entry["window"] != "editor" {
		t.Errorf("window = %v, want editor", entry["window"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("expected ts field from the timestamp hook")
	}
}

func TestSetDebug(t *testing.T) {
	defer func() {
		Logger = zerolog.Nop()
		SetDebug(false)
	}()

	var buf bytes.Buffer
	InitWriter(&buf)
	Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output at info level: %q", buf.String())
	}
	SetDebug(true)
	Debug().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug output missing after SetDebug(true): %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	defer SetDebug(false)
	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel(warn): %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("GlobalLevel = %v, want warn", zerolog.GlobalLevel())
	}
	if err := SetLevel("shouting"); err == nil {
		t.Error("SetLevel should reject unknown levels")
	}
}

func TestInitFile(t *testing.T) {
	defer func() {
		Close()
		Logger = zerolog.Nop()
	}()

	path := filepath.Join(t.TempDir(), "nested", "gridsync.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Warn().Msg("to file")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want the warn line", data)
	}
}
