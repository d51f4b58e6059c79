// Package scenario replays scripted window sessions against an in-memory
// host and a manual clock, recording every bounds event the engine emits.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/gridsync/internal/animation"
	"github.com/yourusername/gridsync/internal/geometry"
)

// Rect is the file form of a rectangle.
type Rect struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Geometry converts r with default limits.
func (r Rect) Geometry() geometry.Rect {
	return geometry.New(r.X, r.Y, r.Width, r.Height)
}

// FromGeometry is the inverse of Geometry.
func FromGeometry(g geometry.Rect) Rect {
	return Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

// Window is a window present when the scenario starts.
type Window struct {
	Name   string `yaml:"name" json:"name"`
	Bounds Rect   `yaml:"bounds" json:"bounds"`
	Group  string `yaml:"group,omitempty" json:"group,omitempty"`
}

// Actions a step can perform.
const (
	ActionMove       = "move"        // API move through the manager
	ActionUserMove   = "user-move"   // native move outside any user change
	ActionDrag       = "drag"        // interactive change through frames
	ActionBegin      = "begin"       // start an interactive change
	ActionEnd        = "end"         // finish an interactive change
	ActionNudge      = "nudge"       // API move by px toward side
	ActionSnap       = "snap"        // API move until touching the next window toward side
	ActionAnimate    = "animate"
	ActionMinimize   = "minimize"
	ActionMaximize   = "maximize"
	ActionRestore    = "restore"
	ActionUnmaximize = "unmaximize"
	ActionHide       = "hide"
	ActionShow       = "show"
	ActionOpen       = "open"
	ActionClose      = "close"
	ActionJoin       = "join"
	ActionLeave      = "leave"
	ActionWait       = "wait"
)

var windowless = map[string]bool{ActionWait: true}

var known = map[string]bool{
	ActionMove: true, ActionUserMove: true, ActionDrag: true, ActionBegin: true,
	ActionEnd: true, ActionNudge: true, ActionSnap: true, ActionAnimate: true, ActionMinimize: true,
	ActionMaximize: true, ActionRestore: true, ActionUnmaximize: true, ActionHide: true,
	ActionShow: true, ActionOpen: true, ActionClose: true, ActionJoin: true,
	ActionLeave: true, ActionWait: true,
}

// Step is one scripted action. AdvanceMs moves the clock after it ran.
type Step struct {
	Action    string          `yaml:"action" json:"action"`
	Window    string          `yaml:"window,omitempty" json:"window,omitempty"`
	Bounds    *Rect           `yaml:"bounds,omitempty" json:"bounds,omitempty"`
	Frames    []Rect          `yaml:"frames,omitempty" json:"frames,omitempty"`
	Group     string          `yaml:"group,omitempty" json:"group,omitempty"`
	Side      string          `yaml:"side,omitempty" json:"side,omitempty"`
	Px        int             `yaml:"px,omitempty" json:"px,omitempty"`
	Animation *animation.Meta `yaml:"animation,omitempty" json:"animation,omitempty"`
	Easing    string          `yaml:"easing,omitempty" json:"easing,omitempty"`
	AdvanceMs int             `yaml:"advanceMs,omitempty" json:"advanceMs,omitempty"`
}

// Scenario is a scripted session.
type Scenario struct {
	Name    string   `yaml:"name" json:"name"`
	Screen  *Rect    `yaml:"screen,omitempty" json:"screen,omitempty"` // maximize target
	Windows []Window `yaml:"windows" json:"windows"`
	Steps   []Step   `yaml:"steps" json:"steps"`
}

// DefaultScreen is used when a scenario names none.
var DefaultScreen = Rect{Width: 1920, Height: 1080}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a YAML scenario. JSON input works too.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks names and step arguments. Steps may only refer to windows
// declared up front or opened by an earlier step.
func (sc *Scenario) Validate() error {
	names := make(map[string]bool)
	for i, w := range sc.Windows {
		if w.Name == "" {
			return fmt.Errorf("window %d: missing name", i)
		}
		if names[w.Name] {
			return fmt.Errorf("duplicate window name: %s", w.Name)
		}
		names[w.Name] = true
	}

	for i, st := range sc.Steps {
		if err := st.validate(names); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
		if st.Action == ActionOpen {
			names[st.Window] = true
		}
	}
	return nil
}

func (st Step) validate(names map[string]bool) error {
	if !known[st.Action] {
		return fmt.Errorf("unknown action")
	}
	if st.AdvanceMs < 0 {
		return fmt.Errorf("negative advanceMs")
	}
	if windowless[st.Action] {
		return nil
	}
	if st.Window == "" {
		return fmt.Errorf("missing window")
	}
	if st.Action == ActionOpen {
		if names[st.Window] {
			return fmt.Errorf("window %s already exists", st.Window)
		}
	} else if !names[st.Window] {
		return fmt.Errorf("unknown window %s", st.Window)
	}

	switch st.Action {
	case ActionMove, ActionUserMove, ActionOpen:
		if st.Bounds == nil {
			return fmt.Errorf("missing bounds")
		}
	case ActionDrag:
		if len(st.Frames) == 0 {
			return fmt.Errorf("missing frames")
		}
	case ActionNudge, ActionSnap:
		if _, ok := geometry.ParseSide(st.Side); !ok {
			return fmt.Errorf("invalid side %q", st.Side)
		}
	case ActionAnimate:
		if st.Animation == nil {
			return fmt.Errorf("missing animation")
		}
	case ActionJoin:
		if st.Group == "" {
			return fmt.Errorf("missing group")
		}
	}
	return nil
}
