package tween

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestZeroDurationReturnsEndValue(t *testing.T) {
	for _, name := range Names() {
		f, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		for _, elapsed := range []float64{0, 1, 250, -3} {
			if got := f(elapsed, 10, 90, 0); got != 100 {
				t.Errorf("%s(t=%v, d=0) = %v, want 100", name, elapsed, got)
			}
		}
	}
}

func TestEndpoints(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f, _ := Lookup(name)
			if got := f(0, 10, 90, 400); !approx(got, 10) {
				t.Errorf("f(0) = %v, want 10", got)
			}
			if got := f(400, 10, 90, 400); !approx(got, 100) {
				t.Errorf("f(d) = %v, want 100", got)
			}
		})
	}
}

func TestLinearMidpoint(t *testing.T) {
	f, _ := Lookup("linear")
	if got := f(50, 0, 200, 100); got != 100 {
		t.Errorf("linear midpoint = %v, want 100", got)
	}
}

func TestQuadShapes(t *testing.T) {
	in, _ := Lookup("easeInQuad")
	out, _ := Lookup("easeOutQuad")
	if got := in(50, 0, 100, 100); got != 25 {
		t.Errorf("easeInQuad midpoint = %v, want 25", got)
	}
	if got := out(50, 0, 100, 100); got != 75 {
		t.Errorf("easeOutQuad midpoint = %v, want 75", got)
	}
}

func TestBackOvershoots(t *testing.T) {
	f, _ := Lookup("easeInBack")
	if got := f(20, 0, 100, 100); got >= 0 {
		t.Errorf("easeInBack early value = %v, want negative overshoot", got)
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup(""); err != nil {
		t.Errorf("Lookup(\"\") should resolve to the default: %v", err)
	}
	if _, err := Lookup("wobble"); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("Lookup(wobble) error = %v, want ErrUnknownEasing", err)
	}
	if len(Names()) != 16 {
		t.Errorf("len(Names()) = %d, want 16", len(Names()))
	}
}
