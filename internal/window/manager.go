// Package window is the in-process API of the coordination engine. A Manager
// owns the window registry, the group leader table, one bounds tracker per
// window and the animation pump, and runs all of them on one serial executor.
package window

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/gridsync/internal/animation"
	"github.com/yourusername/gridsync/internal/bounds"
	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/host"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/sched"
	"github.com/yourusername/gridsync/internal/state"
	"github.com/yourusername/gridsync/internal/transaction"
	"github.com/yourusername/gridsync/internal/tween"
	"github.com/yourusername/gridsync/internal/types"
)

var (
	// ErrUnknownWindow is returned for identities the manager never opened.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrDuplicateWindow is returned when a window is opened twice.
	ErrDuplicateWindow = errors.New("window already open")
)

// Options configures a Manager
type Options struct {
	Scheduler         sched.Scheduler
	TickInterval      time.Duration
	Tolerance         int
	DefaultEasing     string
	UserBoundsTimeout time.Duration
	Limits            geometry.Limits
}

// DefaultOptions returns the engine defaults
func DefaultOptions() Options {
	return Options{
		Scheduler:         sched.Real{},
		TickInterval:      animation.DefaultInterval,
		Tolerance:         geometry.DefaultTolerance,
		DefaultEasing:     tween.Default,
		UserBoundsTimeout: 2 * time.Second,
		Limits:            geometry.DefaultLimits(),
	}
}

// Manager coordinates every window of one host.
//
// Methods block until the engine has processed them. They must not be called
// from an OnBoundsEvent listener; listeners run on the engine's executor.
type Manager struct {
	host        host.Host
	notifying   bool
	unsubscribe func()
	opts        Options

	serial   *sched.Serial
	registry *state.Registry
	leaders  *transaction.Tracker
	pump     *animation.Pump
	trackers map[string]*bounds.Tracker

	mu        sync.Mutex
	listeners map[int]func(types.BoundsEvent)
	nextID    int
}

// NewManager wires a manager to h. Hosts that also implement
// host.NotificationSource feed their notifications in directly; for others
// the manager synthesizes BoundsChanged after each positioning it issues.
func NewManager(h host.Host, opts Options) *Manager {
	def := DefaultOptions()
	if opts.Scheduler == nil {
		opts.Scheduler = def.Scheduler
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = def.TickInterval
	}
	if opts.Tolerance < 0 {
		opts.Tolerance = def.Tolerance
	}
	if opts.DefaultEasing == "" {
		opts.DefaultEasing = def.DefaultEasing
	}
	if opts.Limits == (geometry.Limits{}) {
		opts.Limits = def.Limits
	}

	m := &Manager{
		host:      h,
		opts:      opts,
		serial:    &sched.Serial{},
		registry:  state.NewRegistry(),
		leaders:   transaction.NewTracker(),
		trackers:  make(map[string]*bounds.Tracker),
		listeners: make(map[int]func(types.BoundsEvent)),
	}
	m.pump = animation.NewPump(animTarget{m}, animation.Options{
		Scheduler: opts.Scheduler,
		Post:      m.serial.Post,
		Interval:  opts.TickInterval,
		Limits:    opts.Limits,
	})
	if ns, ok := h.(host.NotificationSource); ok {
		m.notifying = true
		m.unsubscribe = ns.Subscribe(m.onNative)
	}
	return m
}

// onNative routes a host notification to the window's tracker.
func (m *Manager) onNative(h types.Handle, n types.Notification) {
	m.serial.Post(func() {
		id, ok := m.registry.ByHandle(h)
		if !ok {
			return
		}
		if tr := m.trackers[id.UUID]; tr != nil {
			tr.Handle(n)
		}
	})
}

func (m *Manager) deps() bounds.Deps {
	return bounds.Deps{
		Host:      m.host,
		Groups:    m.registry,
		Leaders:   m.leaders,
		Scheduler: m.opts.Scheduler,
		Post:      m.serial.Post,
		Emit:      m.emit,
		Peer: func(uuid string) *bounds.Tracker {
			return m.trackers[uuid]
		},
		Tolerance:         m.opts.Tolerance,
		UserBoundsTimeout: m.opts.UserBoundsTimeout,
	}
}

// do runs fn on the executor and waits for it.
func (m *Manager) do(fn func() error) error {
	var err error
	m.serial.Do(func() { err = fn() })
	return err
}

func (m *Manager) tracker(id types.Identity) (*bounds.Tracker, error) {
	tr, ok := m.trackers[id.UUID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWindow, id)
	}
	return tr, nil
}

// OpenWindow starts tracking a native window.
func (m *Manager) OpenWindow(id types.Identity, h types.Handle) error {
	return m.do(func() error {
		if _, ok := m.trackers[id.UUID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateWindow, id)
		}
		if err := m.registry.AddWindow(id, h); err != nil {
			return err
		}
		tr, err := bounds.NewTracker(id, h, m.deps())
		if err != nil {
			m.registry.RemoveWindow(id.UUID)
			return fmt.Errorf("opening %s: %w", id, err)
		}
		m.trackers[id.UUID] = tr
		logging.Info().Str("window", id.Name).Uint32("handle", uint32(h)).Msg("window opened")
		return nil
	})
}

// CloseWindow stops tracking a window. Its queued animations are rejected and
// a group leadership it holds is released.
func (m *Manager) CloseWindow(id types.Identity) error {
	return m.do(func() error {
		tr, err := m.tracker(id)
		if err != nil {
			return err
		}
		m.pump.Remove(id)
		tr.Close()
		delete(m.trackers, id.UUID)
		if _, err := m.registry.RemoveWindow(id.UUID); err != nil {
			return err
		}
		logging.Info().Str("window", id.Name).Msg("window closed")
		return nil
	})
}

// JoinGroup pins a window to group, leaving any previous group.
func (m *Manager) JoinGroup(id types.Identity, group string) error {
	if group == "" {
		return m.LeaveGroup(id)
	}
	return m.do(func() error {
		tr, err := m.tracker(id)
		if err != nil {
			return err
		}
		if err := m.registry.JoinGroup(id.UUID, group); err != nil {
			return err
		}
		tr.SetGroup(group)
		logging.Info().Str("window", id.Name).Str("group", group).Msg("window joined group")
		return nil
	})
}

// LeaveGroup unpins a window from its group.
func (m *Manager) LeaveGroup(id types.Identity) error {
	return m.do(func() error {
		tr, err := m.tracker(id)
		if err != nil {
			return err
		}
		group, err := m.registry.LeaveGroup(id.UUID)
		if err != nil {
			return err
		}
		tr.SetGroup("")
		if group != "" {
			logging.Info().Str("window", id.Name).Str("group", group).Msg("window left group")
		}
		return nil
	})
}

// Notify feeds a notification for a window by hand, for hosts without a
// notification source.
func (m *Manager) Notify(id types.Identity, n types.Notification) error {
	return m.do(func() error {
		tr, err := m.tracker(id)
		if err != nil {
			return err
		}
		tr.Handle(n)
		return nil
	})
}

// Animate queues a transition. An empty easing uses the configured default.
// Callbacks run on the executor.
func (m *Manager) Animate(id types.Identity, meta animation.Meta, easing string, onSuccess func(animation.Result), onError func(error)) error {
	if easing == "" {
		easing = m.opts.DefaultEasing
	}
	return m.do(func() error {
		if _, err := m.tracker(id); err != nil {
			if onError != nil {
				onError(err)
			}
			return err
		}
		return m.pump.Add(id, meta, easing, onSuccess, onError)
	})
}

// OnBoundsEvent registers fn for every emitted event. The returned func
// unregisters it.
func (m *Manager) OnBoundsEvent(fn func(types.BoundsEvent)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) emit(ev types.BoundsEvent) {
	m.mu.Lock()
	fns := make([]func(types.BoundsEvent), 0, len(m.listeners))
	for i := 1; i <= m.nextID; i++ {
		if fn, ok := m.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()

	logging.Debug().
		Str("window", ev.Window.Name).
		Str("kind", string(ev.Kind)).
		Str("reason", string(ev.Reason)).
		Str("changeType", ev.ChangeType.String()).
		Bool("deferred", ev.Deferred).
		Msg("bounds event")
	for _, fn := range fns {
		fn(ev)
	}
}

// Registry exposes window and group membership.
func (m *Manager) Registry() *state.Registry { return m.registry }

// Leaders exposes the group leader table.
func (m *Manager) Leaders() *transaction.Tracker { return m.leaders }

// Snapshot returns the tracker state of a window.
func (m *Manager) Snapshot(id types.Identity) (bounds.Snapshot, error) {
	var snap bounds.Snapshot
	err := m.do(func() error {
		tr, err := m.tracker(id)
		if err != nil {
			return err
		}
		snap = tr.Snapshot()
		return nil
	})
	return snap, err
}

// Animating reports whether id has queued transitions.
func (m *Manager) Animating(id types.Identity) bool {
	active := false
	m.serial.Do(func() { active = m.pump.Active(id) })
	return active
}

// Close stops the pump and unhooks every tracker.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.serial.Do(func() {
		m.pump.Stop()
		for uuid, tr := range m.trackers {
			m.pump.Remove(tr.ID())
			tr.Close()
			delete(m.trackers, uuid)
		}
	})
}

// animTarget adapts the manager to the pump.
type animTarget struct {
	m *Manager
}

func (a animTarget) handle(id types.Identity) (types.Handle, error) {
	ws, ok := a.m.registry.Window(id.UUID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownWindow, id)
	}
	return ws.Handle, nil
}

func (a animTarget) Bounds(id types.Identity) (geometry.Rect, error) {
	h, err := a.handle(id)
	if err != nil {
		return geometry.Rect{}, err
	}
	return a.m.host.Bounds(h)
}

func (a animTarget) Opacity(id types.Identity) (float64, error) {
	h, err := a.handle(id)
	if err != nil {
		return 0, err
	}
	return a.m.host.Opacity(h)
}

// Commit sends an animation frame through the same batch path as group moves.
func (a animTarget) Commit(id types.Identity, r geometry.Rect, opacity float64, ch animation.Changes) error {
	h, err := a.handle(id)
	if err != nil {
		return err
	}
	if ch.Bounds {
		if err := a.m.host.ApplyBatch([]host.Placement{{Handle: h, Bounds: r, Flags: host.NoZOrder | host.NoActivate}}); err != nil {
			return err
		}
		if !a.m.notifying {
			if tr := a.m.trackers[id.UUID]; tr != nil {
				tr.Handle(types.BoundsChanged{})
			}
		}
	}
	if ch.Opacity {
		if err := a.m.host.SetOpacity(h, opacity); err != nil {
			return err
		}
	}
	return nil
}

func (a animTarget) AnimationBegan(id types.Identity) {
	if tr := a.m.trackers[id.UUID]; tr != nil {
		tr.Handle(types.SynthAnimateBegin{})
	}
}

// AnimationEnded is queued behind the echo of the last frame.
func (a animTarget) AnimationEnded(id types.Identity, opacityChanged, boundsChanged bool) {
	a.m.serial.Post(func() {
		if tr := a.m.trackers[id.UUID]; tr != nil {
			tr.Handle(types.SynthAnimateEnd{Opacity: opacityChanged, Bounds: boundsChanged})
		}
	})
}
