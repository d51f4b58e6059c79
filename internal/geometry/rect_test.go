package geometry

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNew_ClampsSize(t *testing.T) {
	r := NewWithLimits(0, 0, 10, 5000, Limits{MinWidth: 50, MinHeight: 50, MaxWidth: 800, MaxHeight: 600})
	if r.Width != 50 {
		t.Errorf("Width = %d, want 50", r.Width)
	}
	if r.Height != 600 {
		t.Errorf("Height = %d, want 600", r.Height)
	}

	neg := New(0, 0, -20, -1)
	if neg.Width != 0 || neg.Height != 0 {
		t.Errorf("negative size = %dx%d, want 0x0", neg.Width, neg.Height)
	}
}

func TestRect_EdgesSaturate(t *testing.T) {
	r := New(MaxCoord-10, 0, 100, 100)
	if r.Right() != MaxCoord {
		t.Errorf("Right() = %d, want %d", r.Right(), MaxCoord)
	}
	moved := r.Translate(MaxCoord, 0)
	if moved.X != MaxCoord {
		t.Errorf("Translate X = %d, want %d", moved.X, MaxCoord)
	}
}

func TestFromFloats(t *testing.T) {
	r, err := FromFloats(10.9, -3.2, 100.5, 50)
	if err != nil {
		t.Fatalf("FromFloats: %v", err)
	}
	want := New(10, -4, 100, 50)
	if !r.Equal(want) {
		t.Errorf("FromFloats = %v, want %v", r, want)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e12} {
		if _, err := FromFloats(bad, 0, 10, 10); !errors.Is(err, ErrUnsafeValue) {
			t.Errorf("FromFloats(%v) error = %v, want ErrUnsafeValue", bad, err)
		}
	}
}

func TestSafeIntOr(t *testing.T) {
	if got := SafeIntOr(math.NaN(), 7); got != 7 {
		t.Errorf("SafeIntOr(NaN, 7) = %d, want 7", got)
	}
	if got := SafeIntOr(41.99, 7); got != 41 {
		t.Errorf("SafeIntOr(41.99, 7) = %d, want 41", got)
	}
}

func TestCollidesWith(t *testing.T) {
	a := New(0, 0, 100, 100)
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", New(50, 50, 100, 100), true},
		{"touching right edge", New(100, 0, 100, 100), false},
		{"touching bottom edge", New(0, 100, 100, 100), false},
		{"contained", New(10, 10, 10, 10), true},
		{"far away", New(500, 500, 10, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.CollidesWith(tt.other); got != tt.want {
				t.Errorf("CollidesWith(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestSharedBoundsList(t *testing.T) {
	a := New(0, 0, 100, 100)

	got := a.SharedBoundsList(New(10, 0, 80, 90), DefaultTolerance)
	want := []SidePair{{Top, Top}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SharedBoundsList = %v, want %v", got, want)
	}

	got = a.SharedBoundsList(New(0, 0, 90, 90), DefaultTolerance)
	want = []SidePair{{Top, Top}, {Left, Left}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SharedBoundsList = %v, want %v", got, want)
	}
}

func TestSharedBounds_Tolerance(t *testing.T) {
	a := New(0, 0, 100, 100)
	tests := []struct {
		offset int
		want   bool
	}{
		{100, true},
		{104, true},
		{106, false},
	}
	for _, tt := range tests {
		b := New(0, tt.offset, 100, 100)
		sb := a.SharedBounds(b, DefaultTolerance)
		if sb.HasSharedBounds != tt.want {
			t.Errorf("offset %d: HasSharedBounds = %v, want %v", tt.offset, sb.HasSharedBounds, tt.want)
		}
		if tt.want && sb.Bottom != Top {
			t.Errorf("offset %d: Bottom = %v, want top", tt.offset, sb.Bottom)
		}
		if !tt.want && sb.Left != NoSide {
			t.Errorf("offset %d: Left = %v, want none after gross reject", tt.offset, sb.Left)
		}
	}
}

func TestSharedBound_MatchingSideFirst(t *testing.T) {
	// A zero-height rect has top == bottom, so both candidates match.
	a := New(0, 50, 100, 0)
	b := New(0, 50, 100, 0)
	if got := a.SharedBound(Top, b, 0); got != Top {
		t.Errorf("SharedBound(top) = %v, want top", got)
	}
}

func TestSharedBounds_Property(t *testing.T) {
	rects := []Rect{
		New(0, 0, 100, 100), New(100, 0, 50, 50), New(103, 103, 10, 10),
		New(-50, 40, 50, 20), New(300, 300, 5, 5), New(0, 96, 100, 4),
	}
	for _, a := range rects {
		for _, b := range rects {
			sb := a.SharedBounds(b, DefaultTolerance)
			anySide := false
			for _, s := range ListOrder {
				if within(a.Edge(s), b.Edge(s), DefaultTolerance) || within(a.Edge(s), b.Edge(s.Opposite()), DefaultTolerance) {
					anySide = true
				}
			}
			want := anySide && a.CollidesWith(b.Grow(DefaultTolerance))
			if sb.HasSharedBounds != want {
				t.Errorf("%v vs %v: HasSharedBounds = %v, want %v", a, b, sb.HasSharedBounds, want)
			}
		}
	}
}

func TestDelta(t *testing.T) {
	before := New(10, 10, 100, 100)
	after := New(15, 5, 120, 100)
	got := after.Delta(before)
	want := Delta{X: 5, Y: -5, Width: 20}
	if got != want {
		t.Errorf("Delta = %+v, want %+v", got, want)
	}
	if !before.Delta(before).IsZero() {
		t.Error("Delta of identical rects should be zero")
	}
}

func TestAlignSide(t *testing.T) {
	ref := New(0, 0, 120, 100)
	tests := []struct {
		name    string
		start   Rect
		mine    Side
		theirs  Side
		want    Rect
	}{
		{"left follows right", New(100, 0, 100, 100), Left, Right, New(120, 0, 80, 100)},
		{"right follows right", New(0, 100, 100, 50), Right, Right, New(0, 100, 120, 50)},
		{"top follows bottom", New(0, 90, 100, 60), Top, Bottom, New(0, 100, 100, 50)},
		{"bottom follows top", New(0, -50, 100, 40), Bottom, Top, New(0, -50, 100, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.start
			r.AlignSide(tt.mine, ref, tt.theirs)
			if !r.Equal(tt.want) {
				t.Errorf("AlignSide = %v, want %v", r, tt.want)
			}
			if pure := tt.start.Aligned(tt.mine, ref, tt.theirs); !pure.Equal(tt.want) {
				t.Errorf("Aligned = %v, want %v", pure, tt.want)
			}
		})
	}
}

func TestMove_ResizeOnlyAffectsMovedEdge(t *testing.T) {
	before := New(0, 0, 100, 100)
	after := New(0, 0, 120, 100) // right edge dragged out

	right := New(100, 0, 100, 100)
	if got := right.Move(before, after, DefaultTolerance); !got.Equal(New(120, 0, 80, 100)) {
		t.Errorf("right neighbour = %v, want (120,0 80x100)", got)
	}

	left := New(-100, 0, 100, 100)
	if got := left.Move(before, after, DefaultTolerance); !got.Equal(left) {
		t.Errorf("left neighbour moved to %v, want unchanged", got)
	}

	below := New(0, 100, 100, 80)
	if got := below.Move(before, after, DefaultTolerance); !got.Equal(New(0, 100, 120, 80)) {
		t.Errorf("stacked neighbour = %v, want (0,100 120x80)", got)
	}
}

func TestBoundingBox(t *testing.T) {
	box := BoundingBox([]Rect{New(0, 0, 100, 100), New(100, 0, 50, 200), New(-20, 10, 10, 10)})
	if !box.Equal(New(-20, 0, 170, 200)) {
		t.Errorf("BoundingBox = %v, want (-20,0 170x200)", box)
	}
	if got := ClassifyEdge(box, New(100, 0, 50, 200), Right, DefaultTolerance); got != OuterEdge {
		t.Errorf("ClassifyEdge(right) = %v, want outer", got)
	}
	if got := ClassifyEdge(box, New(0, 0, 100, 100), Right, DefaultTolerance); got != InnerEdge {
		t.Errorf("ClassifyEdge(inner right) = %v, want inner", got)
	}
}

func TestParseSide(t *testing.T) {
	for _, s := range ListOrder {
		got, ok := ParseSide(s.String())
		if !ok || got != s {
			t.Errorf("ParseSide(%q) = %v, %v", s.String(), got, ok)
		}
		if s.Opposite().Opposite() != s {
			t.Errorf("Opposite twice of %v != itself", s)
		}
	}
	if _, ok := ParseSide("middle"); ok {
		t.Error("ParseSide(middle) should fail")
	}
}
