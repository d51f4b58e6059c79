package scenario

import (
	"fmt"
	"time"

	"github.com/yourusername/gridsync/internal/animation"
	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/host"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/sched"
	"github.com/yourusername/gridsync/internal/types"
	"github.com/yourusername/gridsync/internal/window"
)

// Epoch is the manual clock's start time.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// maxSettle bounds how long Run waits for animations after the last step.
const maxSettle = 10 * time.Minute

type runner struct {
	sc     *Scenario
	opts   window.Options
	clock  *sched.Manual
	host   *host.MemoryHost
	mgr    *window.Manager
	screen geometry.Rect

	ids     map[string]types.Identity
	handles map[string]types.Handle
	order   []string

	step   int
	report *Report
}

// Run replays sc and returns what happened. opts.Scheduler is replaced by a
// manual clock. Step failures are recorded in the report; only a broken
// initial window set fails the run.
func Run(sc *Scenario, opts window.Options) (*Report, error) {
	clock := sched.NewManual(Epoch)
	opts.Scheduler = clock
	mem := host.NewMemoryHost()

	r := &runner{
		sc:      sc,
		opts:    opts,
		clock:   clock,
		host:    mem,
		mgr:     window.NewManager(mem, opts),
		screen:  DefaultScreen.Geometry(),
		ids:     make(map[string]types.Identity),
		handles: make(map[string]types.Handle),
		step:    -1,
		report:  &Report{Name: sc.Name},
	}
	defer r.mgr.Close()
	if sc.Screen != nil {
		r.screen = sc.Screen.Geometry()
	}

	r.mgr.OnBoundsEvent(func(ev types.BoundsEvent) {
		r.report.Events = append(r.report.Events, eventFrom(r.step, r.elapsedMs(), ev))
	})

	for _, w := range sc.Windows {
		if err := r.open(w.Name, w.Bounds, w.Group); err != nil {
			return nil, err
		}
	}

	for i, st := range sc.Steps {
		r.step = i
		if err := r.apply(st); err != nil {
			logging.Warn().Int("step", i).Str("action", st.Action).Err(err).Msg("scenario step failed")
			r.report.Errors = append(r.report.Errors, StepError{Step: i, Error: err.Error()})
		}
		if st.AdvanceMs > 0 {
			r.clock.Advance(time.Duration(st.AdvanceMs) * time.Millisecond)
		}
	}

	r.settle()
	r.finalize()
	return r.report, nil
}

func (r *runner) elapsedMs() int64 {
	return r.clock.Now().Sub(Epoch).Milliseconds()
}

func (r *runner) open(name string, b Rect, group string) error {
	hd := r.host.AddWindow(b.Geometry())
	id := types.NewIdentity(name)
	if err := r.mgr.OpenWindow(id, hd); err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	if group != "" {
		if err := r.mgr.JoinGroup(id, group); err != nil {
			return fmt.Errorf("grouping %s: %w", name, err)
		}
	}
	r.ids[name] = id
	r.handles[name] = hd
	r.order = append(r.order, name)
	return nil
}

func (r *runner) lookup(name string) (types.Identity, types.Handle, error) {
	id, ok := r.ids[name]
	if !ok {
		return types.Identity{}, 0, fmt.Errorf("window %s is not open", name)
	}
	return id, r.handles[name], nil
}

func (r *runner) apply(st Step) error {
	switch st.Action {
	case ActionWait:
		return nil
	case ActionOpen:
		return r.open(st.Window, *st.Bounds, st.Group)
	}

	id, hd, err := r.lookup(st.Window)
	if err != nil {
		return err
	}

	switch st.Action {
	case ActionMove:
		_, err = r.mgr.SetBounds(id, st.Bounds.Geometry())
	case ActionNudge:
		side, _ := geometry.ParseSide(st.Side)
		_, err = r.mgr.Nudge(id, side, st.Px)
	case ActionSnap:
		side, _ := geometry.ParseSide(st.Side)
		_, err = r.mgr.Snap(id, side)
	case ActionUserMove:
		err = r.host.Move(hd, st.Bounds.Geometry())
	case ActionDrag:
		frames := make([]geometry.Rect, len(st.Frames))
		for i, f := range st.Frames {
			frames[i] = f.Geometry()
		}
		err = r.host.Drag(hd, frames)
	case ActionBegin:
		r.host.BeginUserMove(hd)
	case ActionEnd:
		r.host.EndUserMove(hd)
	case ActionAnimate:
		err = r.animate(id, st)
	case ActionMinimize:
		err = r.host.Minimize(hd)
	case ActionMaximize:
		err = r.host.Maximize(hd, r.screen)
	case ActionRestore:
		err = r.host.Restore(hd)
	case ActionUnmaximize:
		err = r.host.UserUnmaximize(hd)
	case ActionHide:
		err = r.host.Hide(hd)
	case ActionShow:
		err = r.host.Show(hd)
	case ActionJoin:
		err = r.mgr.JoinGroup(id, st.Group)
	case ActionLeave:
		err = r.mgr.LeaveGroup(id)
	case ActionClose:
		err = r.close(st.Window, id, hd)
	default:
		err = fmt.Errorf("unknown action %q", st.Action)
	}
	return err
}

func (r *runner) animate(id types.Identity, st Step) error {
	name := st.Window
	idx := r.step
	record := func(res animation.Result, err error) {
		out := AnimationOutcome{
			Step:        idx,
			Window:      name,
			AtMs:        r.elapsedMs(),
			Interrupted: res.Interrupted,
			Bounds:      FromGeometry(res.Bounds),
		}
		if err != nil {
			out.Error = err.Error()
		}
		r.report.Animations = append(r.report.Animations, out)
	}
	return r.mgr.Animate(id, *st.Animation, st.Easing,
		func(res animation.Result) { record(res, nil) },
		func(err error) { record(animation.Result{}, err) },
	)
}

func (r *runner) close(name string, id types.Identity, hd types.Handle) error {
	if err := r.mgr.CloseWindow(id); err != nil {
		return err
	}
	r.host.RemoveWindow(hd)
	delete(r.ids, name)
	delete(r.handles, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// settle runs the clock until every animation drained.
func (r *runner) settle() {
	tick := r.opts.TickInterval
	if tick <= 0 {
		tick = animation.DefaultInterval
	}
	for waited := time.Duration(0); waited < maxSettle; waited += tick {
		busy := false
		for _, id := range r.ids {
			if r.mgr.Animating(id) {
				busy = true
				break
			}
		}
		if !busy {
			return
		}
		r.clock.Advance(tick)
	}
	logging.Warn().Str("scenario", r.sc.Name).Msg("animations still running after settle limit")
}

func (r *runner) finalize() {
	r.report.DurationMs = r.elapsedMs()
	r.report.Batches = len(r.host.Batches())
	for _, name := range r.order {
		hd := r.handles[name]
		b, err := r.host.Bounds(hd)
		if err != nil {
			continue
		}
		op, _ := r.host.Opacity(hd)
		r.report.Windows = append(r.report.Windows, FinalWindow{
			Name:    name,
			Group:   r.mgr.Registry().GroupOf(r.ids[name].UUID),
			Bounds:  FromGeometry(b),
			Opacity: op,
			Hidden:  r.host.Hidden(hd),
		})
	}
}
