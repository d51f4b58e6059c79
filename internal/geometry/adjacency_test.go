package geometry

import (
	"reflect"
	"testing"
)

func TestAdjacencyList(t *testing.T) {
	rects := []Rect{
		New(0, 0, 100, 100),
		New(100, 0, 100, 100),
		New(200, 0, 100, 100),
		New(1000, 1000, 10, 10),
	}
	got := AdjacencyList(rects, DefaultTolerance)
	want := [][]int{{1}, {0, 2}, {1}, {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AdjacencyList = %v, want %v", got, want)
	}

	if c := Connected(got, 0); !reflect.DeepEqual(c, []int{0, 1, 2}) {
		t.Errorf("Connected(0) = %v, want [0 1 2]", c)
	}
	if c := Connected(got, 3); !reflect.DeepEqual(c, []int{3}) {
		t.Errorf("Connected(3) = %v, want [3]", c)
	}
	if c := Connected(got, 9); c != nil {
		t.Errorf("Connected(9) = %v, want nil", c)
	}
}

func TestAdjacencyList_Empty(t *testing.T) {
	if got := AdjacencyList(nil, DefaultTolerance); len(got) != 0 {
		t.Errorf("AdjacencyList(nil) = %v, want empty", got)
	}
}
