package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/gridsync/internal/geometry"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowSizes  bool
	MaxWidth   int
	MaxHeight  int
	// Screen fixes the area shown; nil fits the windows.
	Screen *geometry.Rect
}

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowSizes:  true,
		MaxWidth:   width,
		MaxHeight:  max(height-4, 10),
	}
}

// Visualize renders windows as boxes on a canvas scaled to the terminal.
// Groups are drawn in name order so grouped windows overlap ungrouped ones.
func Visualize(windows []WindowView, opts VisualizationOptions) string {
	if len(windows) == 0 {
		return "(no windows)\n"
	}

	sorted := make([]WindowView, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Group < sorted[j].Group
	})

	var sc *ScalingContext
	if opts.Screen != nil {
		sc = NewScalingContextFromScreen(*opts.Screen, opts.MaxWidth, opts.MaxHeight)
	} else {
		rects := make([]geometry.Rect, len(sorted))
		for i, w := range sorted {
			rects[i] = w.Bounds
		}
		sc = NewScalingContext(rects, opts.MaxWidth, opts.MaxHeight)
	}
	canvas := NewCanvas(opts.MaxWidth, opts.MaxHeight, opts.UseUnicode)
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	for _, win := range sorted {
		x, y, w, h := sc.Project(win.Bounds)
		canvas.DrawBox(x, y, w, h)
		if win.Hidden {
			canvas.Shade(x, y, w, h)
		}
		canvas.DrawLabel(x, y+1, w, createWindowLabel(win, false))
		if opts.ShowSizes && h >= 4 {
			canvas.DrawLabel(x, y+2, w, fmt.Sprintf("%dx%d", win.Bounds.Width, win.Bounds.Height))
		}
	}

	return canvas.String() + "\n"
}

// createWindowLabel creates a label for a window
func createWindowLabel(win WindowView, showGroup bool) string {
	label := win.Name
	if win.Leader {
		label = "*" + label
	}
	if showGroup && win.Group != "" {
		label += " [" + win.Group + "]"
	}
	return label
}

// groupPalette colors the legend entries.
var groupPalette = []color.Attribute{
	color.FgGreen, color.FgYellow, color.FgMagenta, color.FgBlue, color.FgRed,
}

// PrintLegend lists each group and its members in a distinct color.
func PrintLegend(w io.Writer, windows []WindowView) {
	groups := make(map[string][]string)
	for _, win := range windows {
		g := win.Group
		if g == "" {
			g = "(ungrouped)"
		}
		groups[g] = append(groups[g], createWindowLabel(win, false))
	}
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	for i, g := range names {
		c := color.New(groupPalette[i%len(groupPalette)])
		c.Fprintf(w, "%s: ", g)
		fmt.Fprintln(w, strings.Join(groups[g], ", "))
	}
}

// PrintVisualization prints a colored visualization followed by the legend
func PrintVisualization(w io.Writer, windows []WindowView, opts VisualizationOptions) {
	result := Visualize(windows, opts)

	// Apply color if enabled
	if color.NoColor {
		fmt.Fprint(w, result)
	} else {
		cyan := color.New(color.FgCyan)
		cyan.Fprint(w, result)
	}
	PrintLegend(w, windows)
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}
