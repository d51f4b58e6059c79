package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/scenario"
	"github.com/yourusername/gridsync/internal/tween"
)

// WindowView is what the tables and the visualization show of a window.
type WindowView struct {
	Name    string
	Group   string
	Bounds  geometry.Rect
	Opacity float64
	Hidden  bool
	Leader  bool
}

// ViewsFromReport converts a report's final window list.
func ViewsFromReport(r *scenario.Report) []WindowView {
	views := make([]WindowView, 0, len(r.Windows))
	for _, w := range r.Windows {
		views = append(views, WindowView{
			Name:    w.Name,
			Group:   w.Group,
			Bounds:  w.Bounds.Geometry(),
			Opacity: w.Opacity,
			Hidden:  w.Hidden,
		})
	}
	return views
}

// PrintWindowsTable prints windows in a table format
func PrintWindowsTable(w io.Writer, windows []WindowView) {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Group", "Position", "Size", "Opacity", "Hidden")

	sorted := make([]WindowView, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Group != sorted[j].Group {
			return sorted[i].Group < sorted[j].Group
		}
		return sorted[i].Name < sorted[j].Name
	})

	for _, win := range sorted {
		hidden := ""
		if win.Hidden {
			hidden = "yes"
		}
		group := win.Group
		if group == "" {
			group = "-"
		} else if win.Leader {
			group += " *"
		}

		table.Append(
			truncate(win.Name, 25),
			group,
			fmt.Sprintf("%d,%d", win.Bounds.X, win.Bounds.Y),
			fmt.Sprintf("%dx%d", win.Bounds.Width, win.Bounds.Height),
			fmt.Sprintf("%.2f", win.Opacity),
			hidden,
		)
	}

	table.Render()
}

// PrintEventsTable prints recorded bounds events in order
func PrintEventsTable(w io.Writer, events []scenario.Event) {
	table := tablewriter.NewWriter(w)
	table.Header("Step", "Time", "Window", "Kind", "Change", "Reason", "Bounds", "Deferred")

	for _, ev := range events {
		deferred := ""
		if ev.Deferred {
			deferred = "yes"
		}
		table.Append(
			fmt.Sprintf("%d", ev.Step),
			fmt.Sprintf("%dms", ev.AtMs),
			truncate(ev.Window, 20),
			ev.Kind,
			ev.ChangeType,
			ev.Reason,
			ev.Bounds.Geometry().String(),
			deferred,
		)
	}

	table.Render()
}

// easingSamples are the progress points shown per easing.
var easingSamples = []float64{0.25, 0.5, 0.75}

// PrintEasingsTable lists every easing with sampled progress values
func PrintEasingsTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	header := []any{"Name"}
	for _, s := range easingSamples {
		header = append(header, fmt.Sprintf("t=%.2f", s))
	}
	table.Header(header...)

	for _, name := range tween.Names() {
		fn, _ := tween.Lookup(name)
		row := []any{name}
		for _, s := range easingSamples {
			row = append(row, fmt.Sprintf("%.3f", fn(s, 0, 1, 1)))
		}
		table.Append(row...)
	}

	table.Render()
}

// PrintAdjacencyTable prints which windows share edges within tolerance
func PrintAdjacencyTable(w io.Writer, windows []WindowView, tolerance int) {
	table := tablewriter.NewWriter(w)
	table.Header("Window", "Neighbour", "Shared Edges", "Cluster")

	rects := make([]geometry.Rect, len(windows))
	for i, win := range windows {
		rects[i] = win.Bounds
	}
	adj := geometry.AdjacencyList(rects, tolerance)

	for i, win := range windows {
		cluster := clusterNames(windows, geometry.Connected(adj, i))
		if len(adj[i]) == 0 {
			table.Append(win.Name, "-", "-", cluster)
			continue
		}
		for _, j := range adj[i] {
			pairs := rects[i].SharedBoundsList(rects[j], tolerance)
			edges := make([]string, len(pairs))
			for k, p := range pairs {
				edges[k] = p.Mine.String() + "/" + p.Theirs.String()
			}
			table.Append(win.Name, windows[j].Name, strings.Join(edges, ", "), cluster)
		}
	}

	table.Render()
}

func clusterNames(windows []WindowView, idx []int) string {
	names := make([]string, len(idx))
	for i, n := range idx {
		names[i] = windows[n].Name
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// Helper functions

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
