//go:build !linux

package host

import (
	"errors"

	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/types"
)

// ErrNoX11 is returned on platforms without an X11 backend.
var ErrNoX11 = errors.New("x11 backend is only available on linux")

// X11Host is unavailable on this platform.
type X11Host struct{}

func NewX11Host() (*X11Host, error) { return nil, ErrNoX11 }

func (x *X11Host) Close() {}

func (x *X11Host) ActiveWindow() (types.Handle, error) { return 0, ErrNoX11 }

func (x *X11Host) Bounds(types.Handle) (geometry.Rect, error) { return geometry.Rect{}, ErrNoX11 }
func (x *X11Host) State(types.Handle) (NativeState, error)    { return NativeState{}, ErrNoX11 }
func (x *X11Host) ApplyBatch([]Placement) error               { return ErrNoX11 }
func (x *X11Host) Unmaximize(types.Handle) error              { return ErrNoX11 }
func (x *X11Host) Opacity(types.Handle) (float64, error)      { return 0, ErrNoX11 }
func (x *X11Host) SetOpacity(types.Handle, float64) error     { return ErrNoX11 }
