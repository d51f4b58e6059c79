package geometry

// SharedBounds records, for each side of A, which side of B it lines up with.
type SharedBounds struct {
	Top    Side
	Right  Side
	Bottom Side
	Left   Side
	// HasSharedBounds is true when any side matched.
	HasSharedBounds bool
}

// Get returns the match recorded for side s of A.
func (sb SharedBounds) Get(s Side) Side {
	switch s {
	case Top:
		return sb.Top
	case Right:
		return sb.Right
	case Bottom:
		return sb.Bottom
	case Left:
		return sb.Left
	default:
		return NoSide
	}
}

// SidePair is one shared edge: Mine on the receiver, Theirs on the other rect.
type SidePair struct {
	Mine   Side
	Theirs Side
}

// SharedBound tests side s of r against o. The matching side of o is tried
// before the opposite one.
func (r Rect) SharedBound(s Side, o Rect, tolerance int) Side {
	mine := r.Edge(s)
	if within(mine, o.Edge(s), tolerance) {
		return s
	}
	opp := s.Opposite()
	if within(mine, o.Edge(opp), tolerance) {
		return opp
	}
	return NoSide
}

// SharedBounds tests every side of r against o. When r does not collide with
// o grown by the tolerance nothing is shared.
func (r Rect) SharedBounds(o Rect, tolerance int) SharedBounds {
	var sb SharedBounds
	if !r.CollidesWith(o.Grow(tolerance)) {
		return sb
	}
	sb.Top = r.SharedBound(Top, o, tolerance)
	sb.Right = r.SharedBound(Right, o, tolerance)
	sb.Bottom = r.SharedBound(Bottom, o, tolerance)
	sb.Left = r.SharedBound(Left, o, tolerance)
	sb.HasSharedBounds = sb.Top != NoSide || sb.Right != NoSide ||
		sb.Bottom != NoSide || sb.Left != NoSide
	return sb
}

// SharedBoundsList is SharedBounds flattened into pairs ordered top, right, left, bottom.
func (r Rect) SharedBoundsList(o Rect, tolerance int) []SidePair {
	sb := r.SharedBounds(o, tolerance)
	if !sb.HasSharedBounds {
		return nil
	}
	var pairs []SidePair
	for _, s := range ListOrder {
		if theirs := sb.Get(s); theirs != NoSide {
			pairs = append(pairs, SidePair{Mine: s, Theirs: theirs})
		}
	}
	return pairs
}

// EdgeKind tells whether an edge lies on the outside of a group.
type EdgeKind int

const (
	InnerEdge EdgeKind = iota
	OuterEdge
)

func (k EdgeKind) String() string {
	if k == OuterEdge {
		return "outer"
	}
	return "inner"
}

// ClassifyEdge reports whether side s of r lies on the matching side of the
// group bounding box.
func ClassifyEdge(box, r Rect, s Side, tolerance int) EdgeKind {
	if within(r.Edge(s), box.Edge(s), tolerance) {
		return OuterEdge
	}
	return InnerEdge
}

func within(a, b, tolerance int) bool {
	d := addClamp(a, -b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
