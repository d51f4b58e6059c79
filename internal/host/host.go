// Package host defines what the engine needs from the native window system
// and provides an in-memory implementation plus an X11 one.
package host

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/types"
)

// ErrUnknownWindow is returned for handles the host does not know.
var ErrUnknownWindow = errors.New("unknown native window")

// NativeState is the window state reported alongside its bounds.
type NativeState struct {
	Maximized bool
	Minimized bool
}

// Flags modify a Placement.
type Flags uint8

const (
	NoZOrder Flags = 1 << iota
	NoSize
	NoMove
	NoActivate
)

// Has reports whether all of f2 are set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

func (f Flags) String() string {
	var parts []string
	for _, fl := range []struct {
		flag Flags
		name string
	}{{NoZOrder, "nozorder"}, {NoSize, "nosize"}, {NoMove, "nomove"}, {NoActivate, "noactivate"}} {
		if f.Has(fl.flag) {
			parts = append(parts, fl.name)
		}
	}
	return strings.Join(parts, "|")
}

// Placement is one entry of a batched positioning request.
type Placement struct {
	Handle types.Handle
	Bounds geometry.Rect
	Flags  Flags
}

// BoundsSource reads native bounds synchronously.
type BoundsSource interface {
	Bounds(h types.Handle) (geometry.Rect, error)
	State(h types.Handle) (NativeState, error)
}

// PositionSink applies positioning requests. ApplyBatch commits every
// placement as one operation; windows that fail are skipped and reported in a
// *BatchError while the rest still apply.
type PositionSink interface {
	ApplyBatch(placements []Placement) error
	Unmaximize(h types.Handle) error
	Opacity(h types.Handle) (float64, error)
	SetOpacity(h types.Handle, opacity float64) error
}

// Host is a full native backend.
type Host interface {
	BoundsSource
	PositionSink
}

// NotificationSource delivers native notifications per window. The returned
// func unsubscribes.
type NotificationSource interface {
	Subscribe(fn func(types.Handle, types.Notification)) func()
}

// BatchError lists the windows a batch could not position.
type BatchError struct {
	Failed  map[types.Handle]error
	Applied int
}

func (e *BatchError) Error() string {
	handles := make([]int, 0, len(e.Failed))
	for h := range e.Failed {
		handles = append(handles, int(h))
	}
	sort.Ints(handles)
	parts := make([]string, 0, len(handles))
	for _, h := range handles {
		parts = append(parts, fmt.Sprintf("%d: %v", h, e.Failed[types.Handle(h)]))
	}
	return fmt.Sprintf("batch: %d applied, %d failed (%s)", e.Applied, len(e.Failed), strings.Join(parts, "; "))
}

// Unwrap exposes the per-window errors to errors.Is.
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, err := range e.Failed {
		out = append(out, err)
	}
	return out
}

// resolve applies a placement's flags against the current bounds.
func resolve(cur geometry.Rect, p Placement) geometry.Rect {
	next := cur
	if !p.Flags.Has(NoMove) {
		next.X, next.Y = p.Bounds.X, p.Bounds.Y
	}
	if !p.Flags.Has(NoSize) {
		next.Width, next.Height = p.Bounds.Width, p.Bounds.Height
	}
	return next
}
