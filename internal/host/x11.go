//go:build linux

package host

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/types"
)

const (
	stateMaxHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaxVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateHidden  = "_NET_WM_STATE_HIDDEN"

	// _NET_WM_STATE action
	stateRemove = 0
)

// X11Host drives real windows through EWMH. Batches are applied while the
// server is grabbed so peers move in one visible step.
type X11Host struct {
	xu *xgbutil.XUtil
}

var _ Host = (*X11Host)(nil)

// NewX11Host connects to $DISPLAY.
func NewX11Host() (*X11Host, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11Host{xu: xu}, nil
}

// Close disconnects from the X server.
func (x *X11Host) Close() {
	x.xu.Conn().Close()
}

// ActiveWindow returns the focused window's handle.
func (x *X11Host) ActiveWindow() (types.Handle, error) {
	w, err := ewmh.ActiveWindowGet(x.xu)
	if err != nil {
		return 0, err
	}
	return types.Handle(w), nil
}

// Bounds returns the frame geometry including decorations.
func (x *X11Host) Bounds(h types.Handle) (geometry.Rect, error) {
	geom, err := xwindow.New(x.xu, xproto.Window(h)).DecorGeometry()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("%w: %d: %v", ErrUnknownWindow, h, err)
	}
	return geometry.New(geom.X(), geom.Y(), geom.Width(), geom.Height()), nil
}

func (x *X11Host) State(h types.Handle) (NativeState, error) {
	states, err := ewmh.WmStateGet(x.xu, xproto.Window(h))
	if err != nil {
		return NativeState{}, fmt.Errorf("%w: %d: %v", ErrUnknownWindow, h, err)
	}
	var st NativeState
	for _, s := range states {
		switch s {
		case stateMaxHorz, stateMaxVert:
			st.Maximized = true
		case stateHidden:
			st.Minimized = true
		}
	}
	return st, nil
}

// ApplyBatch grabs the server, moves every window and ungrabs.
func (x *X11Host) ApplyBatch(placements []Placement) error {
	conn := x.xu.Conn()
	if err := xproto.GrabServerChecked(conn).Check(); err != nil {
		logging.Warn().Err(err).Msg("grab server failed, applying batch ungrabbed")
	} else {
		defer xproto.UngrabServerChecked(conn).Check()
	}

	failed := make(map[types.Handle]error)
	applied := 0
	for _, p := range placements {
		if err := x.place(p); err != nil {
			failed[p.Handle] = err
			continue
		}
		applied++
	}
	if len(failed) > 0 {
		return &BatchError{Failed: failed, Applied: applied}
	}
	return nil
}

func (x *X11Host) place(p Placement) error {
	cur, err := x.Bounds(p.Handle)
	if err != nil {
		return err
	}
	next := resolve(cur, p)
	win := xproto.Window(p.Handle)
	if err := ewmh.MoveresizeWindow(x.xu, win, next.X, next.Y, next.Width, next.Height); err != nil {
		logging.Debug().Uint32("handle", uint32(p.Handle)).Err(err).Msg("moveresize request failed, configuring window directly")
		xwindow.New(x.xu, win).MoveResize(next.X, next.Y, next.Width, next.Height)
	}
	if !p.Flags.Has(NoZOrder) {
		xwindow.New(x.xu, win).Stack(xproto.StackModeAbove)
	}
	if !p.Flags.Has(NoActivate) {
		if err := ewmh.ActiveWindowReq(x.xu, win); err != nil {
			logging.Debug().Uint32("handle", uint32(p.Handle)).Err(err).Msg("activate request failed")
		}
	}
	return nil
}

// Unmaximize removes both maximized states.
func (x *X11Host) Unmaximize(h types.Handle) error {
	win := xproto.Window(h)
	for _, s := range []string{stateMaxHorz, stateMaxVert} {
		if err := ewmh.WmStateReq(x.xu, win, stateRemove, s); err != nil {
			return err
		}
	}
	return nil
}

// Opacity reads _NET_WM_WINDOW_OPACITY; windows without it are opaque.
func (x *X11Host) Opacity(h types.Handle) (float64, error) {
	op, err := ewmh.WmWindowOpacityGet(x.xu, xproto.Window(h))
	if err != nil {
		return 1, nil
	}
	return op, nil
}

func (x *X11Host) SetOpacity(h types.Handle, opacity float64) error {
	return ewmh.WmWindowOpacitySet(x.xu, xproto.Window(h), opacity)
}
