package types

// Notification is one discrete event delivered by the native host for a
// window. The concrete types below are the complete set.
type Notification interface {
	Name() string
	notification()
}

type (
	// BeginUserBoundsChange starts an interactive drag or resize.
	BeginUserBoundsChange struct{}
	// EndUserBoundsChange finishes an interactive drag or resize.
	EndUserBoundsChange struct{}
	// BoundsChanged reports that native bounds moved.
	BoundsChanged struct{}
	// SynthAnimateBegin is raised when the pump starts animating a window.
	SynthAnimateBegin struct{}
	// SynthAnimateEnd is raised when a window's transition queue drains.
	SynthAnimateEnd struct {
		Opacity bool
		Bounds  bool
	}
	// VisibilityChanged reports the window being shown or hidden.
	VisibilityChanged struct {
		Visible bool
	}
	Minimize   struct{}
	Maximize   struct{}
	Restore    struct{}
	Unmaximize struct{}
)

func (BeginUserBoundsChange) Name() string { return "begin-user-bounds-change" }
func (EndUserBoundsChange) Name() string   { return "end-user-bounds-change" }
func (BoundsChanged) Name() string         { return "bounds-changed" }
func (SynthAnimateBegin) Name() string     { return "synth-animate-begin" }
func (SynthAnimateEnd) Name() string       { return "synth-animate-end" }
func (VisibilityChanged) Name() string     { return "visibility-changed" }
func (Minimize) Name() string              { return "minimize" }
func (Maximize) Name() string              { return "maximize" }
func (Restore) Name() string               { return "restore" }
func (Unmaximize) Name() string            { return "unmaximize" }

func (BeginUserBoundsChange) notification() {}
func (EndUserBoundsChange) notification()   {}
func (BoundsChanged) notification()         {}
func (SynthAnimateBegin) notification()     {}
func (SynthAnimateEnd) notification()       {}
func (VisibilityChanged) notification()     {}
func (Minimize) notification()              {}
func (Maximize) notification()              {}
func (Restore) notification()               {}
func (Unmaximize) notification()            {}

// ParseNotification converts a notification name to its variant. Payload
// fields default to their zero values except VisibilityChanged, which has
// "show" and "hide" aliases.
func ParseNotification(s string) (Notification, bool) {
	switch s {
	case "begin-user-bounds-change":
		return BeginUserBoundsChange{}, true
	case "end-user-bounds-change":
		return EndUserBoundsChange{}, true
	case "bounds-changed":
		return BoundsChanged{}, true
	case "synth-animate-begin":
		return SynthAnimateBegin{}, true
	case "synth-animate-end":
		return SynthAnimateEnd{Bounds: true}, true
	case "show":
		return VisibilityChanged{Visible: true}, true
	case "hide", "visibility-changed":
		return VisibilityChanged{Visible: false}, true
	case "minimize":
		return Minimize{}, true
	case "maximize":
		return Maximize{}, true
	case "restore":
		return Restore{}, true
	case "unmaximize":
		return Unmaximize{}, true
	default:
		return nil, false
	}
}
