package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/gridsync/internal/animation"
	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/host"
	"github.com/yourusername/gridsync/internal/output"
	"github.com/yourusername/gridsync/internal/types"
	"github.com/yourusername/gridsync/internal/window"
)

var (
	x11Left     int
	x11Top      int
	x11Width    int
	x11Height   int
	x11Opacity  float64
	x11Relative bool
	x11Duration time.Duration
	x11Easing   string
	x11Group    string
)

// x11Cmd groups live X11 commands
var x11Cmd = &cobra.Command{
	Use:   "x11",
	Short: "Drive X11 windows through the engine",
	Long: `Moves or animates real X11 windows. The first window listed leads; the
others are grouped with it and follow. Window ids may be decimal or 0x-prefixed
hex. With no ids the active window is used.`,
}

// x11MoveCmd moves a window and its group once
var x11MoveCmd = &cobra.Command{
	Use:   "move [window-id...]",
	Short: "Move the first window, dragging the rest of the group",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openX11(args)
		if err != nil {
			return err
		}
		defer s.close()

		cur, err := s.host.Bounds(s.handles[0])
		if err != nil {
			return err
		}
		target := geometry.New(x11Left, x11Top, cur.Width, cur.Height)
		if x11Width > 0 {
			target.Width = x11Width
		}
		if x11Height > 0 {
			target.Height = x11Height
		}

		res, err := s.mgr.SetBounds(s.ids[0], target)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(res)
		}

		successColor.Printf("✓ Moved %s %s -> %s\n", res.Window.Name, res.From, res.To)
		views := make([]output.WindowView, 0, len(res.Peers))
		for _, p := range res.Peers {
			views = append(views, output.WindowView{Name: p.Window.Name, Group: res.Group, Bounds: p.To, Opacity: 1})
		}
		if len(views) > 0 {
			output.PrintWindowsTable(os.Stdout, views)
		}
		return nil
	},
}

// x11AnimateCmd animates a window and its group
var x11AnimateCmd = &cobra.Command{
	Use:   "animate [window-id...]",
	Short: "Animate the first window, dragging the rest of the group",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := x11Duration
		if d <= 0 {
			d = 300 * time.Millisecond
		}

		var meta animation.Meta
		flags := cmd.Flags()
		if flags.Changed("x") || flags.Changed("y") {
			meta.Position = &animation.Position{Left: x11Left, Top: x11Top, Relative: x11Relative, Duration: d}
		}
		if flags.Changed("width") || flags.Changed("height") {
			meta.Size = &animation.Size{Width: x11Width, Height: x11Height, Relative: x11Relative, Duration: d}
		}
		if flags.Changed("opacity") {
			meta.Opacity = &animation.Opacity{Opacity: x11Opacity, Relative: x11Relative, Duration: d}
		}
		if meta.Position == nil && meta.Size == nil && meta.Opacity == nil {
			return errors.New("nothing to animate: pass --x/--y, --width/--height or --opacity")
		}

		s, err := openX11(args)
		if err != nil {
			return err
		}
		defer s.close()

		// a relative target keeps the missing axis; an absolute one needs it filled in
		if !x11Relative {
			cur, err := s.host.Bounds(s.handles[0])
			if err != nil {
				return err
			}
			if meta.Position != nil {
				if !flags.Changed("x") {
					meta.Position.Left = cur.X
				}
				if !flags.Changed("y") {
					meta.Position.Top = cur.Y
				}
			}
			if meta.Size != nil {
				if !flags.Changed("width") {
					meta.Size.Width = cur.Width
				}
				if !flags.Changed("height") {
					meta.Size.Height = cur.Height
				}
			}
		}

		type outcome struct {
			res animation.Result
			err error
		}
		done := make(chan outcome, 1)
		err = s.mgr.Animate(s.ids[0], meta, x11Easing,
			func(r animation.Result) { done <- outcome{res: r} },
			func(err error) { done <- outcome{err: err} },
		)
		if err != nil {
			return err
		}

		select {
		case o := <-done:
			if o.err != nil {
				return o.err
			}
			if jsonOutput {
				return printJSON(o.res)
			}
			successColor.Printf("✓ Animated %s to %s (opacity %.2f)\n", s.ids[0].Name, o.res.Bounds, o.res.Opacity)
		case <-time.After(d + 5*time.Second):
			return fmt.Errorf("animation did not finish within %v", d+5*time.Second)
		}
		return nil
	},
}

type x11Session struct {
	host    *host.X11Host
	mgr     *window.Manager
	handles []types.Handle
	ids     []types.Identity
}

func (s *x11Session) close() {
	s.mgr.Close()
	s.host.Close()
}

func parseHandles(args []string) ([]types.Handle, error) {
	out := make([]types.Handle, 0, len(args))
	for _, a := range args {
		n, err := strconv.ParseUint(a, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid window id %q: %w", a, err)
		}
		out = append(out, types.Handle(n))
	}
	return out, nil
}

func openX11(args []string) (*x11Session, error) {
	handles, err := parseHandles(args)
	if err != nil {
		return nil, err
	}

	xh, err := host.NewX11Host()
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		active, err := xh.ActiveWindow()
		if err != nil {
			xh.Close()
			return nil, fmt.Errorf("no window ids given and no active window: %w", err)
		}
		handles = []types.Handle{active}
	}

	s := &x11Session{
		host:    xh,
		mgr:     window.NewManager(xh, cfg.ManagerOptions()),
		handles: handles,
	}
	if debugMode {
		s.mgr.OnBoundsEvent(func(ev types.BoundsEvent) {
			infoColor.Fprintln(os.Stderr, ev.String())
		})
	}

	for _, h := range handles {
		id := types.NewIdentity(fmt.Sprintf("0x%x", uint32(h)))
		if err := s.mgr.OpenWindow(id, h); err != nil {
			s.close()
			return nil, err
		}
		if len(handles) > 1 {
			if err := s.mgr.JoinGroup(id, x11Group); err != nil {
				s.close()
				return nil, err
			}
		}
		s.ids = append(s.ids, id)
	}
	return s, nil
}
