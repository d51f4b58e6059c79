package geometry

import "fmt"

// DefaultTolerance is the pixel distance within which two edges count as shared.
const DefaultTolerance = 5

// Limits bounds the width and height a Rect may take.
type Limits struct {
	MinWidth  int `yaml:"minWidth" json:"minWidth"`
	MinHeight int `yaml:"minHeight" json:"minHeight"`
	MaxWidth  int `yaml:"maxWidth" json:"maxWidth"`
	MaxHeight int `yaml:"maxHeight" json:"maxHeight"`
}

// DefaultLimits allows any non-negative size up to MaxCoord.
func DefaultLimits() Limits {
	return Limits{MaxWidth: MaxCoord, MaxHeight: MaxCoord}
}

// A zero maximum means unbounded so that literal Rects behave like New.
func (l Limits) clampWidth(w int) int {
	hi := l.MaxWidth
	if hi <= 0 {
		hi = MaxCoord
	}
	return clamp(w, max(l.MinWidth, 0), hi)
}

func (l Limits) clampHeight(h int) int {
	hi := l.MaxHeight
	if hi <= 0 {
		hi = MaxCoord
	}
	return clamp(h, max(l.MinHeight, 0), hi)
}

// Rect is a window rectangle in window-manager coordinates.
// Width and Height always lie inside Limits.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
	Limits Limits
}

// New builds a Rect with DefaultLimits.
func New(x, y, width, height int) Rect {
	return NewWithLimits(x, y, width, height, DefaultLimits())
}

// NewWithLimits builds a Rect, clamping the size into l.
func NewWithLimits(x, y, width, height int, l Limits) Rect {
	return Rect{
		X:      clampCoord(x),
		Y:      clampCoord(y),
		Width:  l.clampWidth(width),
		Height: l.clampHeight(height),
		Limits: l,
	}
}

// FromFloats builds a Rect from possibly fractional values. Any value that is
// not finite or outside the safe range fails construction.
func FromFloats(x, y, width, height float64) (Rect, error) {
	vals := [4]float64{x, y, width, height}
	var out [4]int
	for i, v := range vals {
		n, err := SafeInt(v)
		if err != nil {
			return Rect{}, fmt.Errorf("rect component %d: %w", i, err)
		}
		out[i] = n
	}
	return New(out[0], out[1], out[2], out[3]), nil
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return addClamp(r.X, r.Width) }
func (r Rect) Bottom() int { return addClamp(r.Y, r.Height) }

// Equal compares position and size, ignoring limits.
func (r Rect) Equal(o Rect) bool {
	return r.X == o.X && r.Y == o.Y && r.Width == o.Width && r.Height == o.Height
}

// Edge returns the coordinate of the given side.
func (r Rect) Edge(s Side) int {
	switch s {
	case Top:
		return r.Top()
	case Right:
		return r.Right()
	case Bottom:
		return r.Bottom()
	case Left:
		return r.Left()
	default:
		return 0
	}
}

// CollidesWith reports whether the rectangles overlap. Touching edges do not collide.
func (r Rect) CollidesWith(o Rect) bool {
	return r.Left() < o.Right() && r.Right() > o.Left() &&
		r.Top() < o.Bottom() && r.Bottom() > o.Top()
}

// Grow returns r expanded by n pixels on every side.
func (r Rect) Grow(n int) Rect {
	out := r
	out.X = addClamp(r.X, -n)
	out.Y = addClamp(r.Y, -n)
	out.Width = addClamp(r.Width, 2*n)
	out.Height = addClamp(r.Height, 2*n)
	return out
}

// Translate returns r shifted by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	out := r
	out.X = addClamp(r.X, dx)
	out.Y = addClamp(r.Y, dy)
	return out
}

// Delta is the component-wise difference between two rectangles.
type Delta struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsZero reports whether nothing changed.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Delta returns r minus prev, i.e. how r moved since prev.
func (r Rect) Delta(prev Rect) Delta {
	return Delta{
		X:      addClamp(r.X, -prev.X),
		Y:      addClamp(r.Y, -prev.Y),
		Width:  addClamp(r.Width, -prev.Width),
		Height: addClamp(r.Height, -prev.Height),
	}
}

// AlignSide moves side s of r onto ref's refSide, keeping the opposite edge
// of r fixed. Mutates r.
func (r *Rect) AlignSide(s Side, ref Rect, refSide Side) {
	target := ref.Edge(refSide)
	switch s {
	case Top:
		bottom := r.Bottom()
		r.Y = target
		r.Height = r.Limits.clampHeight(addClamp(bottom, -target))
	case Bottom:
		r.Height = r.Limits.clampHeight(addClamp(target, -r.Y))
	case Left:
		right := r.Right()
		r.X = target
		r.Width = r.Limits.clampWidth(addClamp(right, -target))
	case Right:
		r.Width = r.Limits.clampWidth(addClamp(target, -r.X))
	}
}

// Aligned is the non-mutating form of AlignSide.
func (r Rect) Aligned(s Side, ref Rect, refSide Side) Rect {
	out := r
	out.AlignSide(s, ref, refSide)
	return out
}

// Move computes where r goes when a neighbouring leader changes from
// leaderBefore to leaderAfter by resizing. Only edges of r that were shared
// with leaderBefore, and whose leader edge actually moved, are realigned;
// everything else stays put.
func (r Rect) Move(leaderBefore, leaderAfter Rect, tolerance int) Rect {
	out := r
	for _, pair := range r.SharedBoundsList(leaderBefore, tolerance) {
		if !edgeMoved(leaderBefore, leaderAfter, pair.Theirs) {
			continue
		}
		out.AlignSide(pair.Mine, leaderAfter, pair.Theirs)
	}
	return out
}

func edgeMoved(before, after Rect, s Side) bool {
	return before.Edge(s) != after.Edge(s)
}

// BoundingBox returns the smallest rectangle containing all of rects.
func BoundingBox(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{Limits: DefaultLimits()}
	}
	left, top := rects[0].Left(), rects[0].Top()
	right, bottom := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		left = min(left, r.Left())
		top = min(top, r.Top())
		right = max(right, r.Right())
		bottom = max(bottom, r.Bottom())
	}
	return New(left, top, right-left, bottom-top)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
