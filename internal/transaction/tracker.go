// Package transaction arbitrates which window drives a group move.
//
// A group has at most one leader at a time. Leadership is first come, first
// served and only the leader itself may give it up. Watchers of a group are
// told when its transaction ends.
package transaction

import (
	"sync"

	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/types"
)

// Leader is the window currently authoritative for a group.
type Leader struct {
	Name string
	UUID string
	Type types.LeaderType
}

type watcher struct {
	id int
	fn func(group string)
}

// Tracker is the group leader table.
type Tracker struct {
	mu       sync.Mutex
	leaders  map[string]Leader
	watchers map[string][]watcher
	nextID   int
}

// NewTracker returns an empty leader table.
func NewTracker() *Tracker {
	return &Tracker{
		leaders:  make(map[string]Leader),
		watchers: make(map[string][]watcher),
	}
}

// GetLeader returns the group's leader, if any.
func (t *Tracker) GetLeader(group string) (Leader, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.leaders[group]
	return l, ok
}

// IsLeader reports whether uuid currently leads group.
func (t *Tracker) IsLeader(group, uuid string) bool {
	l, ok := t.GetLeader(group)
	return ok && l.UUID == uuid
}

// SetLeader records a leader for group. It fails, returning false, when the
// group already has one.
func (t *Tracker) SetLeader(group, name, uuid string, typ types.LeaderType) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.leaders[group]; ok {
		return false
	}
	t.leaders[group] = Leader{Name: name, UUID: uuid, Type: typ}
	logging.Debug().
		Str("group", group).
		Str("leader", name).
		Str("type", string(typ)).
		Msg("group leader set")
	return true
}

// ClearLeader drops the group's leader unconditionally.
func (t *Tracker) ClearLeader(group string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.leaders, group)
}

// ReleaseLeader clears the leader only if uuid holds it. Non-leaders cannot
// clear or reassign leadership.
func (t *Tracker) ReleaseLeader(group, uuid string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.leaders[group]
	if !ok || l.UUID != uuid {
		return false
	}
	delete(t.leaders, group)
	logging.Debug().Str("group", group).Str("leader", l.Name).Msg("group leader released")
	return true
}

// Watch registers fn to run on every transaction end of group. The returned
// func unregisters it.
func (t *Tracker) Watch(group string, fn func(group string)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.watchers[group] = append(t.watchers[group], watcher{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		list := t.watchers[group]
		for i, w := range list {
			if w.id == id {
				t.watchers[group] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(t.watchers[group]) == 0 {
			delete(t.watchers, group)
		}
	}
}

// NotifyTransactionEnd runs every watcher of group. Watchers are called
// outside the lock so they may call back into the Tracker.
func (t *Tracker) NotifyTransactionEnd(group string) {
	t.mu.Lock()
	list := make([]watcher, len(t.watchers[group]))
	copy(list, t.watchers[group])
	t.mu.Unlock()

	for _, w := range list {
		t.dispatch(group, w)
	}
}

func (t *Tracker) dispatch(group string, w watcher) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Str("group", group).Interface("panic", r).Msg("transaction end watcher panicked")
		}
	}()
	w.fn(group)
}

// Groups returns the groups that currently have a leader.
func (t *Tracker) Groups() map[string]Leader {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]Leader, len(t.leaders))
	for g, l := range t.leaders {
		out[g] = l
	}
	return out
}
