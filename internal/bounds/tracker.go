// Package bounds reconciles native bounds notifications for one window.
//
// A Tracker diffs every notification against the bounds it last confirmed,
// decides whether the change is the window's own, a group move or an
// animation frame, and emits bounds-changing / bounds-changed events. When it
// leads its group it drags the other members along in one batched commit.
// While the window is minimized, maximized or hidden, events are queued and
// flushed, collapsed, when it comes back.
//
// Trackers are not safe for concurrent use; every call must come from the
// engine's serial executor.
package bounds

import (
	"time"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/host"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/sched"
	"github.com/yourusername/gridsync/internal/transaction"
	"github.com/yourusername/gridsync/internal/types"
)

// Groups is the group membership provider.
type Groups interface {
	Members(group string) ([]types.Member, error)
	GroupOf(uuid string) string
}

// Leaders is the group leader table.
type Leaders interface {
	GetLeader(group string) (transaction.Leader, bool)
	SetLeader(group, name, uuid string, typ types.LeaderType) bool
	ReleaseLeader(group, uuid string) bool
	NotifyTransactionEnd(group string)
	Watch(group string, fn func(group string)) func()
}

// Deps are the collaborators shared by every Tracker of an engine.
type Deps struct {
	Host      host.Host
	Groups    Groups
	Leaders   Leaders
	Scheduler sched.Scheduler

	// Post queues fn behind the work currently running.
	Post func(fn func())
	// Emit receives every event that is not deferred.
	Emit func(types.BoundsEvent)
	// Peer finds the tracker of another window, nil if it has none.
	Peer func(uuid string) *Tracker

	Tolerance int
	// UserBoundsTimeout ends a user change whose end notification never
	// arrived. Zero disables it.
	UserBoundsTimeout time.Duration
}

// Tracker is the bounds-change state machine of one window.
type Tracker struct {
	id     types.Identity
	handle types.Handle
	deps   Deps

	cachedBounds    geometry.Rect
	cachedState     host.NativeState
	positionChanged bool
	sizeChanged     bool

	userBoundsChangeActive bool
	animating              bool
	deferred               bool
	deferredEvents         []types.BoundsEvent

	// groupTarget is where the last leader batch sent this window.
	groupTarget *geometry.Rect
	// groupReason is set while this window follows another leader and has
	// reported provisional frames of that move.
	groupReason types.Reason

	group   string
	unwatch func()

	cancelTimeout sched.Cancel
	timeoutGen    int

	busy    bool
	pending []types.Notification
	closed  bool
}

// NewTracker snapshots the window's current bounds as the baseline.
func NewTracker(id types.Identity, h types.Handle, deps Deps) (*Tracker, error) {
	if deps.Post == nil {
		serial := &sched.Serial{}
		deps.Post = serial.Post
	}
	if deps.Emit == nil {
		deps.Emit = func(types.BoundsEvent) {}
	}
	if deps.Peer == nil {
		deps.Peer = func(string) *Tracker { return nil }
	}

	b, err := deps.Host.Bounds(h)
	if err != nil {
		return nil, err
	}
	st, err := deps.Host.State(h)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		id:           id,
		handle:       h,
		deps:         deps,
		cachedBounds: b,
		cachedState:  st,
	}
	if deps.Groups != nil {
		t.SetGroup(deps.Groups.GroupOf(id.UUID))
	}
	return t, nil
}

// ID returns the tracked window.
func (t *Tracker) ID() types.Identity { return t.id }

// Handle processes one native notification. A notification arriving while
// another is being processed is queued behind it.
func (t *Tracker) Handle(n types.Notification) {
	if t.closed {
		return
	}
	if t.busy {
		t.pending = append(t.pending, n)
		return
	}
	t.busy = true
	defer func() { t.busy = false }()

	t.handle1(n)
	for len(t.pending) > 0 && !t.closed {
		next := t.pending[0]
		t.pending = t.pending[1:]
		t.handle1(next)
	}
	t.pending = nil
}

func (t *Tracker) handle1(n types.Notification) {
	switch n := n.(type) {
	case types.BeginUserBoundsChange:
		t.userBoundsChangeActive = true
		t.armTimeout()
	case types.BoundsChanged:
		if t.userBoundsChangeActive || t.animating || t.followingLeader() {
			t.HandleBoundsChange(true, false)
			if t.userBoundsChangeActive {
				t.armTimeout()
			}
			return
		}
		t.HandleBoundsChange(false, true)
	case types.EndUserBoundsChange:
		t.userBoundsChangeActive = false
		t.stopTimeout()
		t.HandleBoundsChange(false, true)
	case types.SynthAnimateBegin:
		t.animating = true
	case types.SynthAnimateEnd:
		// reconcile while still animating so the final event keeps its reason
		if n.Bounds {
			t.HandleBoundsChange(false, true)
		}
		t.animating = false
	case types.VisibilityChanged:
		if n.Visible {
			t.flush()
		} else {
			t.deferred = true
		}
	case types.Minimize, types.Maximize:
		t.deferred = true
	case types.Restore, types.Unmaximize:
		t.flush()
	default:
		logging.Warn().Str("window", t.id.Name).Str("notification", n.Name()).Msg("unhandled notification")
	}
}

// HandleBoundsChange reconciles the window's live bounds with the cached
// baseline. A provisional call reports an intermediate frame; a final call
// closes the change and, with force, reports it even when this last step
// moved nothing.
func (t *Tracker) HandleBoundsChange(provisional, force bool) {
	cur, err := t.deps.Host.Bounds(t.handle)
	if err != nil {
		logging.Warn().Str("window", t.id.Name).Uint32("handle", uint32(t.handle)).Err(err).Msg("reading bounds failed")
		return
	}
	st, err := t.deps.Host.State(t.handle)
	if err != nil {
		logging.Warn().Str("window", t.id.Name).Uint32("handle", uint32(t.handle)).Err(err).Msg("reading state failed")
		return
	}

	// Entering or leaving minimized moves the window natively without a
	// real change.
	stateMin := st.Minimized || t.cachedState.Minimized
	d := cur.Delta(t.cachedBounds)
	posChanged := !stateMin && (d.X != 0 || d.Y != 0)
	sizeChanged := !stateMin && (d.Width != 0 || d.Height != 0)
	changed := posChanged || sizeChanged
	t.positionChanged = t.positionChanged || posChanged
	t.sizeChanged = t.sizeChanged || sizeChanged

	echo := t.groupTarget != nil && cur.Equal(*t.groupTarget)

	var leader transaction.Leader
	hasLeader := false
	if t.group != "" {
		leader, hasLeader = t.deps.Leaders.GetLeader(t.group)
		if !hasLeader && changed && !echo {
			t.deps.Leaders.SetLeader(t.group, t.id.Name, t.id.UUID, t.leaderType())
			leader, hasLeader = t.deps.Leaders.GetLeader(t.group)
		}
	}
	isLeader := hasLeader && leader.UUID == t.id.UUID

	if isLeader && changed {
		t.propagate(t.cachedBounds, cur, types.ClassifyChange(posChanged, sizeChanged))
	}

	reason := types.ReasonSelf
	switch {
	case echo || (hasLeader && !isLeader):
		reason = types.ReasonGroup
		if hasLeader && leader.Type == types.LeaderAnimation {
			reason = types.ReasonGroupAnimation
		}
	case t.animating:
		reason = types.ReasonAnimation
	}

	ev := t.event(reason, cur)
	latched := t.positionChanged || t.sizeChanged
	if provisional && changed {
		ev.Kind = types.BoundsChanging
		t.dispatch(ev)
		if reason == types.ReasonGroup || reason == types.ReasonGroupAnimation {
			t.groupReason = reason
		}
	}
	if !provisional && (changed || (force && latched)) {
		ev.Kind = types.BoundsChangedEvent
		t.dispatch(ev)
	}

	t.cachedBounds = cur
	t.cachedState = st

	if provisional {
		return
	}
	t.positionChanged = false
	t.sizeChanged = false
	t.groupTarget = nil
	t.groupReason = ""
	if force && isLeader {
		t.endTransaction()
	}
}

// followingLeader reports whether another window leads the group, in which
// case this window's changes belong to that transaction.
func (t *Tracker) followingLeader() bool {
	if t.group == "" {
		return false
	}
	l, ok := t.deps.Leaders.GetLeader(t.group)
	return ok && l.UUID != t.id.UUID
}

func (t *Tracker) event(reason types.Reason, cur geometry.Rect) types.BoundsEvent {
	return types.BoundsEvent{
		Window:     t.id,
		ChangeType: types.ClassifyChange(t.positionChanged, t.sizeChanged),
		Reason:     reason,
		Top:        cur.Y,
		Left:       cur.X,
		Width:      cur.Width,
		Height:     cur.Height,
		Deferred:   t.deferred,
	}
}

func (t *Tracker) leaderType() types.LeaderType {
	switch {
	case t.userBoundsChangeActive:
		return types.LeaderUser
	case t.animating:
		return types.LeaderAnimation
	default:
		return types.LeaderAPI
	}
}

// endTransaction releases leadership behind the peers' queued echoes so they
// are still classified as group moves.
func (t *Tracker) endTransaction() {
	group, uuid := t.group, t.id.UUID
	t.deps.Post(func() {
		if t.deps.Leaders.ReleaseLeader(group, uuid) {
			t.deps.Leaders.NotifyTransactionEnd(group)
		}
	})
}

func (t *Tracker) dispatch(ev types.BoundsEvent) {
	if t.deferred {
		t.deferredEvents = append(t.deferredEvents, ev)
		return
	}
	t.deps.Emit(ev)
}

// flush leaves the deferred state and replays the queue, collapsing each run
// of equal reasons into one changing/changed pair.
func (t *Tracker) flush() {
	t.deferred = false
	queue := t.deferredEvents
	t.deferredEvents = nil

	for i := 0; i < len(queue); {
		j := i
		ct := queue[i].ChangeType
		for j+1 < len(queue) && queue[j+1].Reason == queue[i].Reason {
			j++
			ct = ct.Union(queue[j].ChangeType)
		}
		last := queue[j]
		last.ChangeType = ct
		last.Deferred = true

		last.Kind = types.BoundsChanging
		t.deps.Emit(last)
		last.Kind = types.BoundsChangedEvent
		t.deps.Emit(last)
		i = j + 1
	}
}

// expectGroupMove records where a leader batch is sending this window.
func (t *Tracker) expectGroupMove(r geometry.Rect) {
	t.groupTarget = &r
}
