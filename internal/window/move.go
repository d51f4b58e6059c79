package window

import (
	"fmt"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/host"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/types"
)

// PeerMove is where a group member ended up after a move.
type PeerMove struct {
	Window types.Identity
	From   geometry.Rect
	To     geometry.Rect
}

// MoveResult contains the outcome of a window move
type MoveResult struct {
	Window types.Identity
	From   geometry.Rect
	To     geometry.Rect
	Group  string     // empty when the window is ungrouped
	Peers  []PeerMove // group members that moved with it
}

// SetBounds positions a window in one API move. A grouped window with no
// current leader leads its group for the move and drags its peers along.
func (m *Manager) SetBounds(id types.Identity, r geometry.Rect) (*MoveResult, error) {
	var res *MoveResult
	err := m.do(func() error {
		var err error
		res, err = m.setBounds(id, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	// the move's echoes have been processed once Do returns; read final peers
	m.serial.Do(func() { m.fillPeers(res) })
	return res, nil
}

// Nudge moves a window px pixels toward side.
func (m *Manager) Nudge(id types.Identity, side geometry.Side, px int) (*MoveResult, error) {
	ws, ok := m.registry.Window(id.UUID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWindow, id)
	}
	cur, err := m.host.Bounds(ws.Handle)
	if err != nil {
		return nil, fmt.Errorf("reading bounds: %w", err)
	}

	var next geometry.Rect
	switch side {
	case geometry.Top:
		next = cur.Translate(0, -px)
	case geometry.Bottom:
		next = cur.Translate(0, px)
	case geometry.Left:
		next = cur.Translate(-px, 0)
	case geometry.Right:
		next = cur.Translate(px, 0)
	default:
		return nil, fmt.Errorf("invalid side %v", side)
	}
	return m.SetBounds(id, next)
}

// Snap moves a window toward side until it touches the nearest window in
// that direction. Members of its own group are not snap targets, they move
// with it.
func (m *Manager) Snap(id types.Identity, side geometry.Side) (*MoveResult, error) {
	self, ok := m.registry.Window(id.UUID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWindow, id)
	}
	cur, err := m.host.Bounds(self.Handle)
	if err != nil {
		return nil, fmt.Errorf("reading bounds: %w", err)
	}

	rects := []geometry.Rect{cur}
	names := []string{id.Name}
	for _, ws := range m.registry.Windows() {
		if ws.ID.UUID == id.UUID || (self.GroupID != "" && ws.GroupID == self.GroupID) {
			continue
		}
		b, err := m.host.Bounds(ws.Handle)
		if err != nil {
			continue
		}
		rects = append(rects, b)
		names = append(names, ws.ID.Name)
	}

	i, ok := geometry.Neighbour(rects, 0, side)
	if !ok {
		return nil, fmt.Errorf("no window %s of %s", side, id.Name)
	}
	logging.Debug().Str("window", id.Name).Str("side", side.String()).Str("target", names[i]).Msg("snapping window")
	return m.SetBounds(id, cur.SnapTo(side, rects[i]))
}

func (m *Manager) setBounds(id types.Identity, r geometry.Rect) (*MoveResult, error) {
	tr, err := m.tracker(id)
	if err != nil {
		return nil, err
	}
	ws, _ := m.registry.Window(id.UUID)

	from, err := m.host.Bounds(ws.Handle)
	if err != nil {
		return nil, fmt.Errorf("reading bounds: %w", err)
	}
	res := &MoveResult{Window: id, From: from, To: r, Group: ws.GroupID}
	if ws.GroupID != "" {
		members, err := m.registry.Members(ws.GroupID)
		if err == nil {
			for _, mem := range members {
				if mem.ID.UUID == id.UUID {
					continue
				}
				b, err := m.host.Bounds(mem.Handle)
				if err != nil {
					continue
				}
				res.Peers = append(res.Peers, PeerMove{Window: mem.ID, From: b})
			}
		}
	}

	logging.Info().
		Str("window", id.Name).
		Uint32("handle", uint32(ws.Handle)).
		Str("from", from.String()).
		Str("to", r.String()).
		Msg("moving window")

	if err := m.host.ApplyBatch([]host.Placement{{Handle: ws.Handle, Bounds: r}}); err != nil {
		return nil, fmt.Errorf("positioning %s: %w", id, err)
	}
	if !m.notifying {
		tr.Handle(types.BoundsChanged{})
	}
	return res, nil
}

func (m *Manager) fillPeers(res *MoveResult) {
	moved := res.Peers[:0]
	for _, p := range res.Peers {
		ws, ok := m.registry.Window(p.Window.UUID)
		if !ok {
			continue
		}
		b, err := m.host.Bounds(ws.Handle)
		if err != nil {
			logging.Warn().Str("window", p.Window.Name).Err(err).Msg("reading peer bounds failed")
			continue
		}
		if b.Equal(p.From) {
			continue
		}
		p.To = b
		moved = append(moved, p)
	}
	res.Peers = moved
}
