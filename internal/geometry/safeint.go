package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Coordinates are kept inside the int32 range used by native window APIs.
const (
	MaxCoord = math.MaxInt32
	MinCoord = math.MinInt32
)

// ErrUnsafeValue is returned when a value cannot be represented as a coordinate.
var ErrUnsafeValue = errors.New("value is not a safe integer")

// SafeInt floors v into the coordinate range. NaN, infinities and values
// outside [MinCoord, MaxCoord] are rejected.
func SafeInt(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrUnsafeValue, v)
	}
	f := math.Floor(v)
	if f > MaxCoord || f < MinCoord {
		return 0, fmt.Errorf("%w: %v", ErrUnsafeValue, v)
	}
	return int(f), nil
}

// SafeIntOr is SafeInt with a fallback used in place of unusable values.
func SafeIntOr(v float64, fallback int) int {
	n, err := SafeInt(v)
	if err != nil {
		return fallback
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampCoord(v int) int {
	return clamp(v, MinCoord, MaxCoord)
}

// addClamp adds in int64 and saturates at the coordinate range instead of wrapping.
func addClamp(a, b int) int {
	sum := int64(a) + int64(b)
	if sum > MaxCoord {
		return MaxCoord
	}
	if sum < MinCoord {
		return MinCoord
	}
	return int(sum)
}
