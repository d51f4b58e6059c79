package host

import (
	"fmt"
	"sync"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/types"
)

type memWindow struct {
	bounds   geometry.Rect
	restore  geometry.Rect
	state    NativeState
	hidden   bool
	opacity  float64
	failNext error
}

// MemoryHost is an in-process window system. It applies batches instantly and
// delivers a BoundsChanged notification for every window a batch moved, the
// way a real window manager echoes configure events.
type MemoryHost struct {
	mu      sync.Mutex
	windows map[types.Handle]*memWindow
	next    types.Handle
	subs    map[int]func(types.Handle, types.Notification)
	subSeq  int
	batches [][]Placement
}

var (
	_ Host               = (*MemoryHost)(nil)
	_ NotificationSource = (*MemoryHost)(nil)
)

// NewMemoryHost returns an empty host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		windows: make(map[types.Handle]*memWindow),
		subs:    make(map[int]func(types.Handle, types.Notification)),
	}
}

// AddWindow creates a native window and returns its handle.
func (m *MemoryHost) AddWindow(bounds geometry.Rect) types.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.windows[m.next] = &memWindow{bounds: bounds, opacity: 1}
	return m.next
}

// RemoveWindow destroys a native window. Later calls for h fail.
func (m *MemoryHost) RemoveWindow(h types.Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, h)
}

// FailNext makes the next positioning of h fail with err.
func (m *MemoryHost) FailNext(h types.Handle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[h]; ok {
		w.failNext = err
	}
}

// Subscribe registers fn for every notification.
func (m *MemoryHost) Subscribe(fn func(types.Handle, types.Notification)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subSeq++
	id := m.subSeq
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// notify runs subscribers without the lock held.
func (m *MemoryHost) notify(h types.Handle, n types.Notification) {
	m.mu.Lock()
	subs := make([]func(types.Handle, types.Notification), 0, len(m.subs))
	for i := 1; i <= m.subSeq; i++ {
		if fn, ok := m.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(h, n)
	}
}

func (m *MemoryHost) window(h types.Handle) (*memWindow, error) {
	w, ok := m.windows[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWindow, h)
	}
	return w, nil
}

func (m *MemoryHost) Bounds(h types.Handle) (geometry.Rect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.window(h)
	if err != nil {
		return geometry.Rect{}, err
	}
	return w.bounds, nil
}

func (m *MemoryHost) State(h types.Handle) (NativeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.window(h)
	if err != nil {
		return NativeState{}, err
	}
	return w.state, nil
}

// ApplyBatch positions every placement it can and reports the rest.
func (m *MemoryHost) ApplyBatch(placements []Placement) error {
	m.mu.Lock()
	batch := make([]Placement, len(placements))
	copy(batch, placements)
	m.batches = append(m.batches, batch)

	var changed []types.Handle
	failed := make(map[types.Handle]error)
	applied := 0
	for _, p := range placements {
		w, err := m.window(p.Handle)
		if err == nil && w.failNext != nil {
			err, w.failNext = w.failNext, nil
		}
		if err != nil {
			failed[p.Handle] = err
			continue
		}
		applied++
		next := resolve(w.bounds, p)
		if !next.Equal(w.bounds) {
			w.bounds = next
			changed = append(changed, p.Handle)
		}
	}
	m.mu.Unlock()

	for _, h := range changed {
		m.notify(h, types.BoundsChanged{})
	}
	if len(failed) > 0 {
		logging.Debug().Int("applied", applied).Int("failed", len(failed)).Msg("memory host batch partially applied")
		return &BatchError{Failed: failed, Applied: applied}
	}
	return nil
}

// Unmaximize drops the maximized state without moving the window.
func (m *MemoryHost) Unmaximize(h types.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.window(h)
	if err != nil {
		return err
	}
	w.state.Maximized = false
	return nil
}

func (m *MemoryHost) Opacity(h types.Handle) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.window(h)
	if err != nil {
		return 0, err
	}
	return w.opacity, nil
}

func (m *MemoryHost) SetOpacity(h types.Handle, opacity float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.window(h)
	if err != nil {
		return err
	}
	w.opacity = opacity
	return nil
}

// Batches returns every batch applied so far.
func (m *MemoryHost) Batches() [][]Placement {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]Placement, len(m.batches))
	copy(out, m.batches)
	return out
}

// The methods below simulate what a user or the window manager does to a
// window, each followed by the notifications a native system would send.

// Move sets the native bounds directly and reports BoundsChanged.
func (m *MemoryHost) Move(h types.Handle, r geometry.Rect) error {
	m.mu.Lock()
	w, err := m.window(h)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	w.bounds = r
	m.mu.Unlock()
	m.notify(h, types.BoundsChanged{})
	return nil
}

// BeginUserMove starts an interactive move or resize.
func (m *MemoryHost) BeginUserMove(h types.Handle) {
	m.notify(h, types.BeginUserBoundsChange{})
}

// EndUserMove finishes an interactive move or resize.
func (m *MemoryHost) EndUserMove(h types.Handle) {
	m.notify(h, types.EndUserBoundsChange{})
}

// Drag performs a whole interactive change through frames.
func (m *MemoryHost) Drag(h types.Handle, frames []geometry.Rect) error {
	m.BeginUserMove(h)
	for _, f := range frames {
		if err := m.Move(h, f); err != nil {
			return err
		}
	}
	m.EndUserMove(h)
	return nil
}

func (m *MemoryHost) update(h types.Handle, fn func(w *memWindow)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.window(h)
	if err != nil {
		return err
	}
	fn(w)
	return nil
}

// Minimize iconifies the window.
func (m *MemoryHost) Minimize(h types.Handle) error {
	if err := m.update(h, func(w *memWindow) { w.state.Minimized = true }); err != nil {
		return err
	}
	m.notify(h, types.Minimize{})
	m.notify(h, types.BoundsChanged{})
	return nil
}

// Maximize fills screen, remembering the previous bounds.
func (m *MemoryHost) Maximize(h types.Handle, screen geometry.Rect) error {
	err := m.update(h, func(w *memWindow) {
		if !w.state.Maximized {
			w.restore = w.bounds
		}
		w.state.Maximized = true
		w.bounds = screen
	})
	if err != nil {
		return err
	}
	m.notify(h, types.Maximize{})
	m.notify(h, types.BoundsChanged{})
	return nil
}

// UserUnmaximize returns a maximized window to its previous bounds.
func (m *MemoryHost) UserUnmaximize(h types.Handle) error {
	err := m.update(h, func(w *memWindow) {
		if w.state.Maximized {
			w.bounds = w.restore
		}
		w.state.Maximized = false
	})
	if err != nil {
		return err
	}
	m.notify(h, types.BoundsChanged{})
	m.notify(h, types.Unmaximize{})
	return nil
}

// Restore brings a minimized or maximized window back.
func (m *MemoryHost) Restore(h types.Handle) error {
	err := m.update(h, func(w *memWindow) {
		if w.state.Maximized {
			w.bounds = w.restore
		}
		w.state = NativeState{}
	})
	if err != nil {
		return err
	}
	m.notify(h, types.BoundsChanged{})
	m.notify(h, types.Restore{})
	return nil
}

// Hide unmaps the window.
func (m *MemoryHost) Hide(h types.Handle) error {
	if err := m.update(h, func(w *memWindow) { w.hidden = true }); err != nil {
		return err
	}
	m.notify(h, types.VisibilityChanged{Visible: false})
	return nil
}

// Show maps the window again.
func (m *MemoryHost) Show(h types.Handle) error {
	if err := m.update(h, func(w *memWindow) { w.hidden = false }); err != nil {
		return err
	}
	m.notify(h, types.VisibilityChanged{Visible: true})
	return nil
}

// Hidden reports whether the window is unmapped.
func (m *MemoryHost) Hidden(h types.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[h]
	return ok && w.hidden
}
