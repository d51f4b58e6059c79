package bounds

import (
	"errors"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/host"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/types"
)

type peer struct {
	member types.Member
	bounds geometry.Rect
	state  host.NativeState
}

// propagate moves the rest of the group after the leader went from before
// to after. A pure translation shifts every peer by the delta. Any change of
// size, including a drag of the left or top edge that also moves the origin,
// only drags the peers sharing an edge that moved. Everything goes out in one
// batch. ct is reported, it does not pick the rule.
func (t *Tracker) propagate(before, after geometry.Rect, ct types.ChangeType) {
	members, err := t.deps.Groups.Members(t.group)
	if err != nil {
		logging.Warn().Str("group", t.group).Err(err).Msg("listing group members failed")
		return
	}

	peers := make([]peer, 0, len(members))
	for _, m := range members {
		if m.ID.UUID == t.id.UUID {
			continue
		}
		b, err := t.deps.Host.Bounds(m.Handle)
		if err != nil {
			logging.Debug().Str("window", m.ID.Name).Err(err).Msg("skipping peer, bounds unavailable")
			continue
		}
		st, err := t.deps.Host.State(m.Handle)
		if err != nil {
			logging.Debug().Str("window", m.ID.Name).Err(err).Msg("skipping peer, state unavailable")
			continue
		}
		peers = append(peers, peer{member: m, bounds: b, state: st})
	}
	if len(peers) == 0 {
		return
	}

	d := after.Delta(before)
	translate := d.Width == 0 && d.Height == 0
	if !translate {
		t.logMovingEdges(before, after, peers)
	}

	placements := make([]host.Placement, 0, len(peers))
	for _, p := range peers {
		var next geometry.Rect
		if translate {
			next = p.bounds.Translate(d.X, d.Y)
		} else {
			next = p.bounds.Move(before, after, t.deps.Tolerance)
		}
		if next.Equal(p.bounds) {
			continue
		}
		if p.state.Maximized {
			if err := t.deps.Host.Unmaximize(p.member.Handle); err != nil {
				logging.Warn().Str("window", p.member.ID.Name).Err(err).Msg("unmaximize failed, skipping peer")
				continue
			}
		}

		flags := host.NoZOrder | host.NoActivate
		if next.Width == p.bounds.Width && next.Height == p.bounds.Height {
			flags |= host.NoSize
		}
		placements = append(placements, host.Placement{Handle: p.member.Handle, Bounds: next, Flags: flags})
		if pt := t.deps.Peer(p.member.ID.UUID); pt != nil {
			pt.expectGroupMove(next)
		}
	}
	if len(placements) == 0 {
		return
	}

	logging.Debug().
		Str("group", t.group).
		Str("leader", t.id.Name).
		Str("changeType", ct.String()).
		Int("peers", len(placements)).
		Msg("propagating group move")

	if err := t.deps.Host.ApplyBatch(placements); err != nil {
		var be *host.BatchError
		if errors.As(err, &be) {
			for h, ferr := range be.Failed {
				logging.Warn().Str("group", t.group).Uint32("handle", uint32(h)).Err(ferr).Msg("peer skipped in batch")
			}
			return
		}
		logging.Warn().Str("group", t.group).Err(err).Msg("group batch failed")
	}
}

// logMovingEdges records, per moved leader edge, whether it is on the
// outside of the group and how many peers share it. Placement does not
// depend on it; Move already leaves peers without a shared moving edge alone.
func (t *Tracker) logMovingEdges(before, after geometry.Rect, peers []peer) {
	rects := make([]geometry.Rect, 0, len(peers)+1)
	rects = append(rects, before)
	for _, p := range peers {
		rects = append(rects, p.bounds)
	}
	box := geometry.BoundingBox(rects)

	for _, side := range geometry.ListOrder {
		if before.Edge(side) == after.Edge(side) {
			continue
		}
		sharing := 0
		for _, p := range peers {
			for _, pair := range p.bounds.SharedBoundsList(before, t.deps.Tolerance) {
				if pair.Theirs == side {
					sharing++
				}
			}
		}
		logging.Debug().
			Str("group", t.group).
			Str("edge", side.String()).
			Str("kind", geometry.ClassifyEdge(box, before, side, t.deps.Tolerance).String()).
			Int("sharing", sharing).
			Msg("leader edge moved")
	}
}
