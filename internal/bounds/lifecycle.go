package bounds

import (
	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/types"
)

// SetGroup moves the tracker to group ("" for none). Leaving a group the
// window leads ends that group's transaction.
func (t *Tracker) SetGroup(group string) {
	if group == t.group {
		return
	}
	t.leaveGroup()
	t.group = group
	if group == "" {
		return
	}
	t.unwatch = t.deps.Leaders.Watch(group, t.onTransactionEnd)
}

func (t *Tracker) leaveGroup() {
	if t.group == "" {
		return
	}
	if t.unwatch != nil {
		t.unwatch()
		t.unwatch = nil
	}
	if t.deps.Leaders.ReleaseLeader(t.group, t.id.UUID) {
		logging.Debug().Str("window", t.id.Name).Str("group", t.group).Msg("leader left group")
		t.deps.Leaders.NotifyTransactionEnd(t.group)
	}
	t.group = ""
	t.groupTarget = nil
	t.groupReason = ""
}

// Group returns the tracker's current group.
func (t *Tracker) Group() string { return t.group }

// onTransactionEnd closes the change the finished transaction imposed on an
// idle window with one final event. The bounds are read back from the host,
// covering echoes it never delivered.
func (t *Tracker) onTransactionEnd(group string) {
	if t.closed || group != t.group || t.userBoundsChangeActive || t.animating {
		return
	}
	cur, err := t.deps.Host.Bounds(t.handle)
	if err != nil {
		return
	}
	st, err := t.deps.Host.State(t.handle)
	if err != nil {
		return
	}
	if !cur.Equal(t.cachedBounds) {
		logging.Debug().Str("window", t.id.Name).Str("from", t.cachedBounds.String()).Str("to", cur.String()).Msg("resynced after transaction end")
		if !st.Minimized && !t.cachedState.Minimized {
			d := cur.Delta(t.cachedBounds)
			t.positionChanged = t.positionChanged || d.X != 0 || d.Y != 0
			t.sizeChanged = t.sizeChanged || d.Width != 0 || d.Height != 0
		}
	}
	if t.positionChanged || t.sizeChanged {
		reason := t.groupReason
		if reason == "" {
			reason = types.ReasonGroup
		}
		ev := t.event(reason, cur)
		ev.Kind = types.BoundsChangedEvent
		t.dispatch(ev)
	}
	t.cachedBounds = cur
	t.cachedState = st
	t.groupTarget = nil
	t.groupReason = ""
	t.positionChanged = false
	t.sizeChanged = false
}

// Close unhooks the tracker. A held leadership is released.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.stopTimeout()
	t.leaveGroup()
	t.closed = true
	t.pending = nil
	t.deferredEvents = nil
}

func (t *Tracker) armTimeout() {
	if t.deps.UserBoundsTimeout <= 0 || t.deps.Scheduler == nil {
		return
	}
	t.stopTimeout()
	t.timeoutGen++
	gen := t.timeoutGen
	t.cancelTimeout = t.deps.Scheduler.After(t.deps.UserBoundsTimeout, func() {
		t.deps.Post(func() { t.userBoundsTimedOut(gen) })
	})
}

func (t *Tracker) stopTimeout() {
	if t.cancelTimeout != nil {
		t.cancelTimeout()
		t.cancelTimeout = nil
	}
	t.timeoutGen++
}

// userBoundsTimedOut ends a user change whose end notification was lost.
func (t *Tracker) userBoundsTimedOut(gen int) {
	if t.closed || gen != t.timeoutGen || !t.userBoundsChangeActive {
		return
	}
	logging.Warn().
		Str("window", t.id.Name).
		Dur("timeout", t.deps.UserBoundsTimeout).
		Msg("end of user bounds change never arrived, finishing it")
	t.cancelTimeout = nil
	t.userBoundsChangeActive = false
	t.HandleBoundsChange(false, true)
}

// Snapshot is a read-only view of a tracker's state.
type Snapshot struct {
	CachedBounds           geometry.Rect
	PositionChanged        bool
	SizeChanged            bool
	UserBoundsChangeActive bool
	Animating              bool
	Deferred               bool
	DeferredEvents         int
	Group                  string
}

// Snapshot returns a copy of the tracker's state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		CachedBounds:           t.cachedBounds,
		PositionChanged:        t.positionChanged,
		SizeChanged:            t.sizeChanged,
		UserBoundsChangeActive: t.userBoundsChangeActive,
		Animating:              t.animating,
		Deferred:               t.deferred,
		DeferredEvents:         len(t.deferredEvents),
		Group:                  t.group,
	}
}
