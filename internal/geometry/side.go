package geometry

// Side names one edge of a rectangle.
type Side int

const (
	NoSide Side = iota
	Top
	Right
	Bottom
	Left
)

// ListOrder is the fixed order used by SharedBoundsList.
var ListOrder = [4]Side{Top, Right, Left, Bottom}

// String returns the string representation of a Side
func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// ParseSide converts a string to Side
func ParseSide(s string) (Side, bool) {
	switch s {
	case "top":
		return Top, true
	case "right":
		return Right, true
	case "bottom":
		return Bottom, true
	case "left":
		return Left, true
	default:
		return NoSide, false
	}
}

// Opposite returns the side facing s.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return NoSide
	}
}
