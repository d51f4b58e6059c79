package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yourusername/gridsync/internal/types"
)

var (
	// ErrUnknownGroup is returned for group ids with no members.
	ErrUnknownGroup = errors.New("unknown group")
	// ErrUnknownWindow is returned for identities never added.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrDuplicateWindow is returned when an identity or handle is added twice.
	ErrDuplicateWindow = errors.New("window already registered")
)

// Registry owns window and group membership. It is the group membership
// provider the bounds trackers query for peers.
type Registry struct {
	mu       sync.RWMutex
	windows  map[string]*WindowState // uuid -> state
	handles  map[types.Handle]string // handle -> uuid
	groups   map[string]*GroupState
	sequence []string // uuids in registration order
}

// WindowState tracks one registered window
type WindowState struct {
	ID      types.Identity
	Handle  types.Handle
	GroupID string // empty when ungrouped
}

// GroupState tracks one group
type GroupState struct {
	GroupID string
	Members []string // ordered uuids
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		windows: make(map[string]*WindowState),
		handles: make(map[types.Handle]string),
		groups:  make(map[string]*GroupState),
	}
}

// AddWindow registers a window under its native handle
func (r *Registry) AddWindow(id types.Identity, h types.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[id.UUID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateWindow, id)
	}
	if other, ok := r.handles[h]; ok {
		return fmt.Errorf("%w: handle %d held by %s", ErrDuplicateWindow, h, r.windows[other].ID)
	}
	r.windows[id.UUID] = &WindowState{ID: id, Handle: h}
	r.handles[h] = id.UUID
	r.sequence = append(r.sequence, id.UUID)
	return nil
}

// RemoveWindow drops a window and its group membership. Returns the group it
// was in, if any.
func (r *Registry) RemoveWindow(uuid string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.windows[uuid]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownWindow, uuid)
	}
	group := ws.GroupID
	r.leaveLocked(ws)
	delete(r.windows, uuid)
	delete(r.handles, ws.Handle)
	for i, u := range r.sequence {
		if u == uuid {
			r.sequence = append(r.sequence[:i], r.sequence[i+1:]...)
			break
		}
	}
	return group, nil
}

// JoinGroup adds a window to a group, creating it if needed. A window in
// another group is moved.
func (r *Registry) JoinGroup(uuid, groupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.windows[uuid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWindow, uuid)
	}
	if ws.GroupID == groupID {
		return nil
	}
	r.leaveLocked(ws)

	g, ok := r.groups[groupID]
	if !ok {
		g = &GroupState{GroupID: groupID}
		r.groups[groupID] = g
	}
	g.Members = append(g.Members, uuid)
	ws.GroupID = groupID
	return nil
}

// LeaveGroup removes a window from its group. Returns the group left.
func (r *Registry) LeaveGroup(uuid string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.windows[uuid]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownWindow, uuid)
	}
	group := ws.GroupID
	r.leaveLocked(ws)
	return group, nil
}

// leaveLocked drops empty groups. Caller holds the lock.
func (r *Registry) leaveLocked(ws *WindowState) {
	if ws.GroupID == "" {
		return
	}
	if g, ok := r.groups[ws.GroupID]; ok {
		for i, u := range g.Members {
			if u == ws.ID.UUID {
				g.Members = append(g.Members[:i], g.Members[i+1:]...)
				break
			}
		}
		if len(g.Members) == 0 {
			delete(r.groups, ws.GroupID)
		}
	}
	ws.GroupID = ""
}

// Members returns the group's windows in join order with live handles.
func (r *Registry) Members(groupID string) ([]types.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	out := make([]types.Member, 0, len(g.Members))
	for _, u := range g.Members {
		ws := r.windows[u]
		out = append(out, types.Member{ID: ws.ID, Handle: ws.Handle})
	}
	return out, nil
}

// GroupOf returns the window's group, or "" when ungrouped or unknown.
func (r *Registry) GroupOf(uuid string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ws, ok := r.windows[uuid]; ok {
		return ws.GroupID
	}
	return ""
}

// Window returns a copy of the window's state without creating it
func (r *Registry) Window(uuid string) (WindowState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, ok := r.windows[uuid]
	if !ok {
		return WindowState{}, false
	}
	return *ws, true
}

// ByHandle resolves a native handle to its identity
func (r *Registry) ByHandle(h types.Handle) (types.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.handles[h]
	if !ok {
		return types.Identity{}, false
	}
	return r.windows[u].ID, true
}

// ByName resolves the first window registered with name
func (r *Registry) ByName(name string) (types.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.sequence {
		if ws := r.windows[u]; ws.ID.Name == name {
			return ws.ID, true
		}
	}
	return types.Identity{}, false
}

// Windows returns all windows in registration order
func (r *Registry) Windows() []WindowState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]WindowState, 0, len(r.sequence))
	for _, u := range r.sequence {
		out = append(out, *r.windows[u])
	}
	return out
}

// Groups returns the ids of all non-empty groups
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.groups))
	seen := make(map[string]bool)
	for _, u := range r.sequence {
		g := r.windows[u].GroupID
		if g != "" && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}
