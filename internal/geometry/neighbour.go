package geometry

import "math"

// Neighbour finds the rect closest to rects[from] in the direction of side s,
// comparing centers. Distance along the direction counts once and the
// perpendicular offset twice, so rects in line with the direction win.
func Neighbour(rects []Rect, from int, s Side) (int, bool) {
	if from < 0 || from >= len(rects) {
		return -1, false
	}
	cx, cy := center(rects[from])

	best := -1
	bestDistance := math.MaxFloat64
	for i, r := range rects {
		if i == from {
			continue
		}
		tx, ty := center(r)
		if !inDirection(cx, cy, tx, ty, s) {
			continue
		}
		if d := weightedDistance(cx, cy, tx, ty, s); d < bestDistance {
			bestDistance = d
			best = i
		}
	}
	return best, best >= 0
}

// SnapTo returns r translated so that its side s touches the facing edge of
// neighbour. Size is kept.
func (r Rect) SnapTo(s Side, neighbour Rect) Rect {
	switch s {
	case Left:
		return r.Translate(neighbour.Right()-r.Left(), 0)
	case Right:
		return r.Translate(neighbour.Left()-r.Right(), 0)
	case Top:
		return r.Translate(0, neighbour.Bottom()-r.Top())
	case Bottom:
		return r.Translate(0, neighbour.Top()-r.Bottom())
	default:
		return r
	}
}

func center(r Rect) (float64, float64) {
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}

func inDirection(sx, sy, tx, ty float64, s Side) bool {
	switch s {
	case Left:
		return tx < sx
	case Right:
		return tx > sx
	case Top:
		return ty < sy
	case Bottom:
		return ty > sy
	default:
		return false
	}
}

func weightedDistance(sx, sy, tx, ty float64, s Side) float64 {
	dx := math.Abs(tx - sx)
	dy := math.Abs(ty - sy)
	if s == Left || s == Right {
		return dx + dy*2
	}
	return dy + dx*2
}
