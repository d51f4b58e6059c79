package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yourusername/gridsync/internal/geometry"
)

func TestCanvasDrawBox(t *testing.T) {
	c := NewCanvas(6, 4, false)
	c.DrawBox(0, 0, 6, 4)
	c.DrawLabel(0, 1, 6, "abcdefgh")

	want := "+----+\n|abcd|\n|    |\n+----+"
	if got := c.String(); got != want {
		t.Errorf("canvas =\n%s\nwant\n%s", got, want)
	}
	if got := c.GetCell(10, 10); got != ' ' {
		t.Errorf("GetCell out of range = %q, want space", got)
	}
}

func TestCanvasShade(t *testing.T) {
	c := NewCanvas(4, 3, false)
	c.DrawBox(0, 0, 4, 3)
	c.Shade(0, 0, 4, 3)
	if got := c.Lines()[1]; got != "|..|" {
		t.Errorf("shaded row = %q, want %q", got, "|..|")
	}
}

func TestScalingProject(t *testing.T) {
	sc := NewScalingContextFromScreen(geometry.New(0, 0, 1000, 500), 104, 54)

	x, y, w, h := sc.Project(geometry.New(500, 250, 500, 250))
	if x != 52 || y != 27 {
		t.Errorf("origin = %d,%d, want 52,27", x, y)
	}
	if w != 50 || h != 25 {
		t.Errorf("size = %dx%d, want 50x25", w, h)
	}

	// tiny windows stay visible
	_, _, w, h = sc.Project(geometry.New(0, 0, 1, 1))
	if w != 3 || h != 2 {
		t.Errorf("tiny size = %dx%d, want 3x2", w, h)
	}
}

func TestScalingFitsWindows(t *testing.T) {
	rects := []geometry.Rect{geometry.New(100, 100, 50, 50)}
	sc := NewScalingContext(rects, 80, 24)
	if sc.Area.Width < minSpanX || sc.Area.Height < minSpanY {
		t.Errorf("area = %v, want at least %dx%d", sc.Area, minSpanX, minSpanY)
	}
	if !sc.Area.CollidesWith(rects[0]) {
		t.Errorf("area %v does not contain window", sc.Area)
	}
}

func views() []WindowView {
	return []WindowView{
		{Name: "left", Group: "pair", Bounds: geometry.New(0, 0, 400, 300), Opacity: 1, Leader: true},
		{Name: "right", Group: "pair", Bounds: geometry.New(400, 0, 400, 300), Opacity: 1},
		{Name: "far", Bounds: geometry.New(1200, 700, 100, 100), Opacity: 0.5, Hidden: true},
	}
}

func TestVisualizeLabels(t *testing.T) {
	out := Visualize(views(), VisualizationOptions{MaxWidth: 100, MaxHeight: 40, ShowSizes: true})
	for _, want := range []string{"*left", "right", "400x300"} {
		if !strings.Contains(out, want) {
			t.Errorf("visualization missing %q:\n%s", want, out)
		}
	}
	if got := Visualize(nil, DefaultVisualizationOptions()); got != "(no windows)\n" {
		t.Errorf("empty visualization = %q", got)
	}
}

func TestPrintWindowsTable(t *testing.T) {
	var buf bytes.Buffer
	PrintWindowsTable(&buf, views())
	out := buf.String()
	for _, want := range []string{"left", "pair *", "400x300", "0.50", "yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintAdjacencyTable(t *testing.T) {
	var buf bytes.Buffer
	PrintAdjacencyTable(&buf, views(), geometry.DefaultTolerance)
	out := buf.String()
	if !strings.Contains(out, "right/left") {
		t.Errorf("adjacency missing left's right edge against right's left edge:\n%s", out)
	}
	if !strings.Contains(out, "left right") {
		t.Errorf("adjacency missing cluster:\n%s", out)
	}
}

func TestPrintEasingsTable(t *testing.T) {
	var buf bytes.Buffer
	PrintEasingsTable(&buf)
	out := buf.String()
	for _, want := range []string{"linear", "easeOutBounce", "0.500"} {
		if !strings.Contains(out, want) {
			t.Errorf("easings table missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
