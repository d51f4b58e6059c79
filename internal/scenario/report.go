package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/gridsync/internal/types"
)

// Event is one recorded bounds event.
type Event struct {
	Step       int    `yaml:"step" json:"step"`
	AtMs       int64  `yaml:"atMs" json:"atMs"`
	Window     string `yaml:"window" json:"window"`
	Kind       string `yaml:"kind" json:"kind"`
	ChangeType string `yaml:"changeType" json:"changeType"`
	Reason     string `yaml:"reason" json:"reason"`
	Bounds     Rect   `yaml:"bounds" json:"bounds"`
	Deferred   bool   `yaml:"deferred,omitempty" json:"deferred,omitempty"`
}

func eventFrom(step int, atMs int64, ev types.BoundsEvent) Event {
	return Event{
		Step:       step,
		AtMs:       atMs,
		Window:     ev.Window.Name,
		Kind:       string(ev.Kind),
		ChangeType: ev.ChangeType.String(),
		Reason:     string(ev.Reason),
		Bounds:     Rect{X: ev.Left, Y: ev.Top, Width: ev.Width, Height: ev.Height},
		Deferred:   ev.Deferred,
	}
}

// AnimationOutcome is how a scripted transition resolved.
type AnimationOutcome struct {
	Step        int    `yaml:"step" json:"step"`
	Window      string `yaml:"window" json:"window"`
	AtMs        int64  `yaml:"atMs" json:"atMs"`
	Interrupted bool   `yaml:"interrupted,omitempty" json:"interrupted,omitempty"`
	Error       string `yaml:"error,omitempty" json:"error,omitempty"`
	Bounds      Rect   `yaml:"bounds" json:"bounds"`
}

// StepError is a step that failed. Later steps still run.
type StepError struct {
	Step  int    `yaml:"step" json:"step"`
	Error string `yaml:"error" json:"error"`
}

// FinalWindow is a window's state when the scenario ends.
type FinalWindow struct {
	Name    string  `yaml:"name" json:"name"`
	Group   string  `yaml:"group,omitempty" json:"group,omitempty"`
	Bounds  Rect    `yaml:"bounds" json:"bounds"`
	Opacity float64 `yaml:"opacity" json:"opacity"`
	Hidden  bool    `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Report is the recorded outcome of a run.
type Report struct {
	Name       string             `yaml:"name" json:"name"`
	DurationMs int64              `yaml:"durationMs" json:"durationMs"`
	Events     []Event            `yaml:"events" json:"events"`
	Animations []AnimationOutcome `yaml:"animations,omitempty" json:"animations,omitempty"`
	Errors     []StepError        `yaml:"errors,omitempty" json:"errors,omitempty"`
	Windows    []FinalWindow      `yaml:"windows" json:"windows"`
	Batches    int                `yaml:"batches" json:"batches"`
}

// EventsFor returns the events of one window in order.
func (r *Report) EventsFor(name string) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Window == name {
			out = append(out, ev)
		}
	}
	return out
}

// Window returns the final state of name.
func (r *Report) Window(name string) (FinalWindow, bool) {
	for _, w := range r.Windows {
		if w.Name == name {
			return w, true
		}
	}
	return FinalWindow{}, false
}

// LoadReport reads a report written by WriteReport.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}

// WriteReport writes r as JSON or YAML depending on the extension.
func WriteReport(path string, r *Report) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = yaml.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename report: %w", err)
	}
	return nil
}
