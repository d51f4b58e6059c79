package geometry

import "testing"

func TestNeighbour(t *testing.T) {
	//  [0]  [1]
	//  [2]
	//            [3]
	rects := []Rect{
		New(0, 0, 100, 100),
		New(200, 0, 100, 100),
		New(0, 200, 100, 100),
		New(400, 400, 100, 100),
	}

	tests := []struct {
		name   string
		from   int
		side   Side
		want   int
		wantOK bool
	}{
		{"right of 0", 0, Right, 1, true},
		{"below 0 prefers aligned", 0, Bottom, 2, true},
		{"left of 1", 1, Left, 0, true},
		{"nothing above 0", 0, Top, -1, false},
		{"bad index", 9, Right, -1, false},
		{"no side", 0, NoSide, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Neighbour(rects, tt.from, tt.side)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Neighbour(%d, %v) = %d, %v, want %d, %v", tt.from, tt.side, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSnapTo(t *testing.T) {
	n := New(100, 100, 100, 100)
	tests := []struct {
		side Side
		r    Rect
		want Rect
	}{
		{Left, New(300, 120, 50, 50), New(200, 120, 50, 50)},
		{Right, New(0, 120, 50, 50), New(50, 120, 50, 50)},
		{Top, New(120, 300, 50, 50), New(120, 200, 50, 50)},
		{Bottom, New(120, 0, 50, 50), New(120, 50, 50, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			if got := tt.r.SnapTo(tt.side, n); !got.Equal(tt.want) {
				t.Errorf("SnapTo(%v) = %v, want %v", tt.side, got, tt.want)
			}
		})
	}
}
