package scenario

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/gridsync/internal/window"
)

const dragScenario = `
name: drag-pair
windows:
  - name: left
    bounds: {x: 0, y: 0, width: 400, height: 300}
    group: pair
  - name: right
    bounds: {x: 400, y: 0, width: 400, height: 300}
    group: pair
steps:
  - action: drag
    window: left
    frames:
      - {x: 0, y: 0, width: 450, height: 300}
      - {x: 0, y: 0, width: 500, height: 300}
`

func run(t *testing.T, src string) *Report {
	t.Helper()
	sc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rep, err := Run(sc, window.DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return rep
}

func TestDragResizesNeighbour(t *testing.T) {
	rep := run(t, dragScenario)

	right, ok := rep.Window("right")
	if !ok {
		t.Fatalf("right missing from report")
	}
	if want := (Rect{X: 500, Y: 0, Width: 300, Height: 300}); right.Bounds != want {
		t.Errorf("right bounds = %+v, want %+v", right.Bounds, want)
	}
	if len(rep.Errors) != 0 {
		t.Errorf("errors = %v", rep.Errors)
	}

	left := rep.EventsFor("left")
	if len(left) != 3 {
		t.Fatalf("left events = %+v, want 3", left)
	}
	if last := left[2]; last.Kind != "bounds-changed" || last.ChangeType != "size" || last.Reason != "self" {
		t.Errorf("left final = %+v", last)
	}
	for _, ev := range rep.EventsFor("right") {
		if ev.Reason != "group" {
			t.Errorf("right reason = %s, want group", ev.Reason)
		}
	}
}

func TestAnimateAndClock(t *testing.T) {
	rep := run(t, `
name: slide
windows:
  - name: a
    bounds: {x: 0, y: 0, width: 100, height: 100}
steps:
  - action: animate
    window: a
    easing: easeOutQuad
    animation:
      position: {left: 200, top: 0, duration: 200ms}
      opacity: {opacity: 0.5, duration: 100ms}
`)
	a, _ := rep.Window("a")
	if want := (Rect{X: 200, Y: 0, Width: 100, Height: 100}); a.Bounds != want {
		t.Errorf("a bounds = %+v, want %+v", a.Bounds, want)
	}
	if a.Opacity != 0.5 {
		t.Errorf("a opacity = %v, want 0.5", a.Opacity)
	}
	if len(rep.Animations) != 1 || rep.Animations[0].Error != "" || rep.Animations[0].Interrupted {
		t.Fatalf("animations = %+v, want one clean success", rep.Animations)
	}
	if rep.DurationMs < 200 {
		t.Errorf("DurationMs = %d, want at least 200", rep.DurationMs)
	}
	events := rep.EventsFor("a")
	if len(events) == 0 || events[len(events)-1].Reason != "animation" {
		t.Errorf("a events = %+v, want final animation event", events)
	}
}

func TestInterruptedAnimation(t *testing.T) {
	rep := run(t, `
name: interrupt
windows:
  - name: a
    bounds: {x: 0, y: 0, width: 100, height: 100}
steps:
  - action: animate
    window: a
    animation:
      position: {left: 1000, top: 0, duration: 1s}
    advanceMs: 100
  - action: animate
    window: a
    animation:
      interrupt: true
      position: {left: 0, top: 500, duration: 0s}
`)
	if len(rep.Animations) != 2 {
		t.Fatalf("animations = %+v, want 2", rep.Animations)
	}
	if !rep.Animations[0].Interrupted {
		t.Errorf("first animation not flagged interrupted")
	}
	a, _ := rep.Window("a")
	if a.Bounds.Y != 500 {
		t.Errorf("a bounds = %+v, want y 500", a.Bounds)
	}
}

func TestStepErrorsDoNotStopRun(t *testing.T) {
	rep := run(t, `
name: errors
windows:
  - name: a
    bounds: {x: 0, y: 0, width: 100, height: 100}
steps:
  - action: close
    window: a
  - action: move
    window: a
    bounds: {x: 5, y: 5, width: 100, height: 100}
  - action: open
    window: b
    bounds: {x: 10, y: 10, width: 50, height: 50}
`)
	if len(rep.Errors) != 1 || rep.Errors[0].Step != 1 {
		t.Errorf("errors = %+v, want one for step 1", rep.Errors)
	}
	if _, ok := rep.Window("a"); ok {
		t.Errorf("closed window a still reported")
	}
	if _, ok := rep.Window("b"); !ok {
		t.Errorf("opened window b missing")
	}
}

func TestMaximizeDefersEvents(t *testing.T) {
	rep := run(t, `
name: maximize
screen: {x: 0, y: 0, width: 1000, height: 800}
windows:
  - name: a
    bounds: {x: 10, y: 10, width: 100, height: 100}
steps:
  - action: maximize
    window: a
  - action: restore
    window: a
`)
	events := rep.EventsFor("a")
	if len(events) == 0 {
		t.Fatalf("no events for a")
	}
	for _, ev := range events {
		if !ev.Deferred {
			t.Errorf("event %+v not deferred", ev)
		}
	}
	a, _ := rep.Window("a")
	if want := (Rect{X: 10, Y: 10, Width: 100, Height: 100}); a.Bounds != want {
		t.Errorf("a bounds = %+v, want %+v", a.Bounds, want)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"duplicate window", "windows: [{name: a}, {name: a}]", "duplicate"},
		{"unknown action", "windows: [{name: a}]\nsteps: [{action: explode, window: a}]", "unknown action"},
		{"unknown window", "steps: [{action: hide, window: ghost}]", "unknown window"},
		{"missing bounds", "windows: [{name: a}]\nsteps: [{action: move, window: a}]", "missing bounds"},
		{"bad side", "windows: [{name: a}]\nsteps: [{action: nudge, window: a, side: up}]", "invalid side"},
		{"reopen", "windows: [{name: a}]\nsteps: [{action: open, window: a, bounds: {width: 1, height: 1}}]", "already exists"},
		{"negative advance", "steps: [{action: wait, advanceMs: -1}]", "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestWriteReport(t *testing.T) {
	rep := run(t, dragScenario)
	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := WriteReport(path, rep); err != nil {
				t.Fatalf("WriteReport: %v", err)
			}
			got, err := LoadReport(path)
			if err != nil {
				t.Fatalf("LoadReport: %v", err)
			}
			if len(got.Events) != len(rep.Events) || got.Name != rep.Name {
				t.Errorf("loaded report = %d events %q, want %d %q", len(got.Events), got.Name, len(rep.Events), rep.Name)
			}
		})
	}
}
