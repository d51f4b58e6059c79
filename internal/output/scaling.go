package output

import (
	"github.com/yourusername/gridsync/internal/geometry"
)

// minSpan keeps a lone small window from filling the whole terminal.
const (
	minSpanX = 800
	minSpanY = 600
)

// ScalingContext handles coordinate transformation from pixel space to terminal character space
type ScalingContext struct {
	// Area shown, in pixels
	Area geometry.Rect

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	// Scale factors
	ScaleX float64
	ScaleY float64
}

// NewScalingContextFromScreen maps screen onto the terminal.
func NewScalingContextFromScreen(screen geometry.Rect, termWidth, termHeight int) *ScalingContext {
	return newScaling(screen, termWidth, termHeight)
}

// NewScalingContext fits the bounding box of rects, padded by 5%, onto the
// terminal.
func NewScalingContext(rects []geometry.Rect, termWidth, termHeight int) *ScalingContext {
	if len(rects) == 0 {
		return newScaling(geometry.New(0, 0, 1920, 1080), termWidth, termHeight)
	}

	box := geometry.BoundingBox(rects)
	box = box.Grow(max(box.Width, box.Height) / 20)

	if box.Width < minSpanX {
		box.X -= (minSpanX - box.Width) / 2
		box.Width = minSpanX
	}
	if box.Height < minSpanY {
		box.Y -= (minSpanY - box.Height) / 2
		box.Height = minSpanY
	}
	return newScaling(box, termWidth, termHeight)
}

func newScaling(area geometry.Rect, termWidth, termHeight int) *ScalingContext {
	// Reserve space for borders (2 characters on each side)
	availWidth := max(termWidth-4, 10)
	availHeight := max(termHeight-4, 5)

	w := max(area.Width, 1)
	h := max(area.Height, 1)
	return &ScalingContext{
		Area:       area,
		TermWidth:  termWidth,
		TermHeight: termHeight,
		ScaleX:     float64(availWidth) / float64(w),
		ScaleY:     float64(availHeight) / float64(h),
	}
}

// PixelToTerminal converts pixel coordinates to terminal coordinates
func (sc *ScalingContext) PixelToTerminal(x, y int) (int, int) {
	termX := int(float64(x-sc.Area.X) * sc.ScaleX)
	termY := int(float64(y-sc.Area.Y) * sc.ScaleY)
	// Add offset for border (2 characters)
	return termX + 2, termY + 2
}

// ScaleSize converts pixel dimensions to terminal character dimensions
func (sc *ScalingContext) ScaleSize(w, h int) (int, int) {
	// Minimum size of 3x2 for visibility
	return max(int(float64(w)*sc.ScaleX), 3), max(int(float64(h)*sc.ScaleY), 2)
}

// Project maps a window rectangle to a clamped terminal box.
func (sc *ScalingContext) Project(r geometry.Rect) (x, y, w, h int) {
	x, y = sc.PixelToTerminal(r.X, r.Y)
	w, h = sc.ScaleSize(r.Width, r.Height)
	return sc.ClampToCanvas(x, y, w, h)
}

// ClampToCanvas ensures coordinates are within canvas bounds
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	if x+w >= sc.TermWidth {
		w = sc.TermWidth - x - 1
	}
	if y+h >= sc.TermHeight {
		h = sc.TermHeight - y - 1
	}

	return x, y, max(w, 3), max(h, 2)
}
