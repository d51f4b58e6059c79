// Package animation interpolates window position, size and opacity over time.
//
// A single Pump runs on a fixed tick for every animating window. Each window
// has a queue of transitions; the head transition advances its position, size
// and opacity parts independently and is popped once all three are done.
// The timer runs only while some window has queued work.
package animation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/sched"
	"github.com/yourusername/gridsync/internal/tween"
	"github.com/yourusername/gridsync/internal/types"
)

// DefaultInterval is the tick period, 40 Hz.
const DefaultInterval = 25 * time.Millisecond

var (
	// ErrWindowClosed rejects transitions of a window removed mid-animation.
	ErrWindowClosed = errors.New("window closed during animation")
	// ErrInvalidDuration is returned for negative durations.
	ErrInvalidDuration = errors.New("invalid animation duration")
)

// Position targets the window's left/top. Relative adds to the current value.
type Position struct {
	Left     int           `yaml:"left" json:"left"`
	Top      int           `yaml:"top" json:"top"`
	Relative bool          `yaml:"relative" json:"relative"`
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Size targets the window's width/height.
type Size struct {
	Width    int           `yaml:"width" json:"width"`
	Height   int           `yaml:"height" json:"height"`
	Relative bool          `yaml:"relative" json:"relative"`
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Opacity targets the window's opacity in [0, 1].
type Opacity struct {
	Opacity  float64       `yaml:"opacity" json:"opacity"`
	Relative bool          `yaml:"relative" json:"relative"`
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Meta describes one transition. Nil parts are left alone.
type Meta struct {
	Position  *Position `yaml:"position" json:"position,omitempty"`
	Size      *Size     `yaml:"size" json:"size,omitempty"`
	Opacity   *Opacity  `yaml:"opacity" json:"opacity,omitempty"`
	Interrupt bool      `yaml:"interrupt" json:"interrupt"`
}

func (m Meta) empty() bool {
	return m.Position == nil && m.Size == nil && m.Opacity == nil
}

func (m Meta) validate() error {
	check := func(part string, d time.Duration) error {
		if d < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidDuration, part, d)
		}
		return nil
	}
	if m.Position != nil {
		if err := check("position", m.Position.Duration); err != nil {
			return err
		}
	}
	if m.Size != nil {
		if err := check("size", m.Size.Duration); err != nil {
			return err
		}
	}
	if m.Opacity != nil {
		if err := check("opacity", m.Opacity.Duration); err != nil {
			return err
		}
	}
	return nil
}

// Result is handed to a transition's success callback. Interrupted is set
// when a later interrupting Add cut the transition short; those still
// resolve through success.
type Result struct {
	Interrupted bool
	Bounds      geometry.Rect
	Opacity     float64
}

// Changes says which properties a Commit touches.
type Changes struct {
	Bounds  bool
	Opacity bool
}

// Target is what the pump animates.
type Target interface {
	Bounds(id types.Identity) (geometry.Rect, error)
	Opacity(id types.Identity) (float64, error)
	// Commit applies one frame through the shared batched positioning path.
	Commit(id types.Identity, bounds geometry.Rect, opacity float64, ch Changes) error
	AnimationBegan(id types.Identity)
	// AnimationEnded fires once the window's queue drains.
	AnimationEnded(id types.Identity, opacityChanged, boundsChanged bool)
}

// Options configure a Pump.
type Options struct {
	Scheduler sched.Scheduler
	// Post runs a tick on the engine's serial executor.
	Post     func(fn func())
	Interval time.Duration
	Limits   geometry.Limits
}

type part struct {
	duration time.Duration
	active   bool
}

type transition struct {
	meta   Meta
	easing tween.Func

	started        bool
	start          time.Time
	initialBounds  geometry.Rect
	initialOpacity float64
	lastBounds     geometry.Rect
	lastOpacity    float64

	// absolute deltas computed at start
	dx, dy, dw, dh, dop float64
	pos, size, op       part

	onSuccess func(Result)
	onError   func(error)
}

func (t *transition) done() bool {
	return !t.pos.active && !t.size.active && !t.op.active
}

type queue struct {
	id             types.Identity
	entries        []*transition
	began          bool
	boundsChanged  bool
	opacityChanged bool
}

// Pump is the animation scheduler. All methods must be called from the
// engine's serial executor.
type Pump struct {
	target Target
	opts   Options

	active map[string]*queue
	order  []string
	cancel sched.Cancel
}

// NewPump creates a stopped pump.
func NewPump(target Target, opts Options) *Pump {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Scheduler == nil {
		opts.Scheduler = sched.Real{}
	}
	if opts.Post == nil {
		serial := &sched.Serial{}
		opts.Post = serial.Post
	}
	return &Pump{
		target: target,
		opts:   opts,
		active: make(map[string]*queue),
	}
}

// Add queues a transition for id. With meta.Interrupt every queued
// transition of the window resolves at once as interrupted. Errors are
// reported both to onError and as the return value.
func (p *Pump) Add(id types.Identity, meta Meta, easing string, onSuccess func(Result), onError func(error)) error {
	if onSuccess == nil {
		onSuccess = func(Result) {}
	}
	if onError == nil {
		onError = func(error) {}
	}

	fn, err := tween.Lookup(easing)
	if err != nil {
		onError(err)
		return err
	}
	if err := meta.validate(); err != nil {
		onError(err)
		return err
	}

	q := p.active[id.UUID]
	if meta.Interrupt && q != nil {
		entries := q.entries
		q.entries = nil
		for _, tr := range entries {
			tr.onSuccess(Result{Interrupted: true, Bounds: tr.lastBounds, Opacity: tr.lastOpacity})
		}
		logging.Debug().Str("window", id.Name).Int("interrupted", len(entries)).Msg("animation interrupted")
	}

	if meta.empty() {
		if q != nil && len(q.entries) == 0 {
			p.finish(q)
			p.maybeStop()
		}
		onSuccess(Result{})
		return nil
	}

	if q == nil {
		q = &queue{id: id}
		p.active[id.UUID] = q
		p.order = append(p.order, id.UUID)
	}
	q.entries = append(q.entries, &transition{
		meta:      meta,
		easing:    fn,
		onSuccess: onSuccess,
		onError:   onError,
	})
	p.ensureTimer()
	return nil
}

// Remove drops every transition of id, rejecting them with ErrWindowClosed.
func (p *Pump) Remove(id types.Identity) {
	q, ok := p.active[id.UUID]
	if !ok {
		return
	}
	p.drop(id.UUID)
	for _, tr := range q.entries {
		tr.onError(fmt.Errorf("%w: %s", ErrWindowClosed, id))
	}
	p.maybeStop()
}

// Active reports whether id has queued transitions.
func (p *Pump) Active(id types.Identity) bool {
	_, ok := p.active[id.UUID]
	return ok
}

// Pending returns the number of queued transitions for id.
func (p *Pump) Pending(id types.Identity) int {
	if q, ok := p.active[id.UUID]; ok {
		return len(q.entries)
	}
	return 0
}

// Running reports whether the tick timer is armed.
func (p *Pump) Running() bool { return p.cancel != nil }

// Stop cancels the timer. Queued transitions stay queued until the next Add.
func (p *Pump) Stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Pump) ensureTimer() {
	if p.cancel != nil {
		return
	}
	p.cancel = p.opts.Scheduler.Every(p.opts.Interval, func() {
		p.opts.Post(p.tick)
	})
}

func (p *Pump) maybeStop() {
	if len(p.active) == 0 {
		p.Stop()
	}
}

func (p *Pump) drop(uuid string) {
	delete(p.active, uuid)
	for i, u := range p.order {
		if u == uuid {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *Pump) finish(q *queue) {
	p.drop(q.id.UUID)
	if q.began {
		p.target.AnimationEnded(q.id, q.opacityChanged, q.boundsChanged)
	}
}

// tick advances every animating window by one frame.
func (p *Pump) tick() {
	now := p.opts.Scheduler.Now()
	order := make([]string, len(p.order))
	copy(order, p.order)
	for _, uuid := range order {
		if q, ok := p.active[uuid]; ok {
			p.stepSafe(q, now)
		}
	}
	p.maybeStop()
}

func (p *Pump) stepSafe(q *queue, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Str("window", q.id.Name).Interface("panic", r).Msg("animation tick panicked")
		}
	}()
	if err := p.step(q, now); err != nil {
		logging.Warn().Str("window", q.id.Name).Err(err).Msg("animation frame skipped")
	}
}

func (p *Pump) step(q *queue, now time.Time) error {
	if len(q.entries) == 0 {
		p.finish(q)
		return nil
	}
	tr := q.entries[0]
	if !tr.started {
		if err := p.begin(q, tr, now); err != nil {
			return err
		}
	}

	bounds, opacity := p.frame(tr, now.Sub(tr.start))

	ch := Changes{
		Bounds:  !bounds.Equal(tr.lastBounds),
		Opacity: opacity != tr.lastOpacity,
	}
	if ch.Bounds || ch.Opacity {
		if err := p.target.Commit(q.id, bounds, opacity, ch); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		tr.lastBounds, tr.lastOpacity = bounds, opacity
		q.boundsChanged = q.boundsChanged || ch.Bounds
		q.opacityChanged = q.opacityChanged || ch.Opacity
	}

	if !tr.done() {
		return nil
	}
	q.entries = q.entries[1:]
	tr.onSuccess(Result{Bounds: bounds, Opacity: opacity})
	if len(q.entries) == 0 && p.active[q.id.UUID] == q {
		p.finish(q)
	}
	return nil
}

// begin snapshots the live state and turns targets into absolute deltas.
func (p *Pump) begin(q *queue, tr *transition, now time.Time) error {
	b, err := p.target.Bounds(q.id)
	if err != nil {
		return fmt.Errorf("reading bounds: %w", err)
	}
	op, err := p.target.Opacity(q.id)
	if err != nil {
		return fmt.Errorf("reading opacity: %w", err)
	}

	tr.started = true
	tr.start = now
	tr.initialBounds, tr.lastBounds = b, b
	tr.initialOpacity, tr.lastOpacity = op, op

	if m := tr.meta.Position; m != nil {
		tr.dx, tr.dy = float64(m.Left), float64(m.Top)
		if !m.Relative {
			tr.dx -= float64(b.X)
			tr.dy -= float64(b.Y)
		}
		tr.pos = part{duration: m.Duration, active: true}
	}
	if m := tr.meta.Size; m != nil {
		tr.dw, tr.dh = float64(m.Width), float64(m.Height)
		if !m.Relative {
			tr.dw -= float64(b.Width)
			tr.dh -= float64(b.Height)
		}
		tr.size = part{duration: m.Duration, active: true}
	}
	if m := tr.meta.Opacity; m != nil {
		tr.dop = m.Opacity
		if !m.Relative {
			tr.dop -= op
		}
		tr.op = part{duration: m.Duration, active: true}
	}

	if !q.began {
		q.began = true
		p.target.AnimationBegan(q.id)
	}
	return nil
}

// frame computes the values at elapsed. Parts that reach their duration are
// folded into the initial snapshot and retired.
func (p *Pump) frame(tr *transition, elapsed time.Duration) (geometry.Rect, float64) {
	ms := float64(elapsed) / float64(time.Millisecond)
	x, y := tr.initialBounds.X, tr.initialBounds.Y
	w, h := tr.initialBounds.Width, tr.initialBounds.Height
	opacity := tr.initialOpacity

	if tr.pos.active {
		if elapsed >= tr.pos.duration {
			tr.initialBounds.X = geometry.SafeIntOr(float64(tr.initialBounds.X)+tr.dx, tr.initialBounds.X)
			tr.initialBounds.Y = geometry.SafeIntOr(float64(tr.initialBounds.Y)+tr.dy, tr.initialBounds.Y)
			x, y = tr.initialBounds.X, tr.initialBounds.Y
			tr.pos.active = false
		} else {
			d := durationMs(tr.pos.duration)
			x = geometry.SafeIntOr(tr.easing(ms, float64(x), tr.dx, d), x)
			y = geometry.SafeIntOr(tr.easing(ms, float64(y), tr.dy, d), y)
		}
	}
	if tr.size.active {
		if elapsed >= tr.size.duration {
			tr.initialBounds.Width = geometry.SafeIntOr(float64(tr.initialBounds.Width)+tr.dw, tr.initialBounds.Width)
			tr.initialBounds.Height = geometry.SafeIntOr(float64(tr.initialBounds.Height)+tr.dh, tr.initialBounds.Height)
			w, h = tr.initialBounds.Width, tr.initialBounds.Height
			tr.size.active = false
		} else {
			d := durationMs(tr.size.duration)
			w = geometry.SafeIntOr(tr.easing(ms, float64(w), tr.dw, d), w)
			h = geometry.SafeIntOr(tr.easing(ms, float64(h), tr.dh, d), h)
		}
	}
	if tr.op.active {
		if elapsed >= tr.op.duration {
			tr.initialOpacity = clampOpacity(tr.initialOpacity + tr.dop)
			opacity = tr.initialOpacity
			tr.op.active = false
		} else {
			opacity = clampOpacity(tr.easing(ms, opacity, tr.dop, durationMs(tr.op.duration)))
		}
	}

	limits := tr.initialBounds.Limits
	if p.opts.Limits != (geometry.Limits{}) {
		limits = p.opts.Limits
	}
	return geometry.NewWithLimits(x, y, w, h, limits), opacity
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func clampOpacity(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return math.Max(0, math.Min(1, v))
}
