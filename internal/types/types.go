package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Identity names a window. UUID is unique, Name is for humans.
type Identity struct {
	UUID string `yaml:"uuid" json:"uuid"`
	Name string `yaml:"name" json:"name"`
}

// NewIdentity mints an Identity with a fresh UUID.
func NewIdentity(name string) Identity {
	return Identity{UUID: uuid.NewString(), Name: name}
}

func (id Identity) String() string {
	if id.Name == "" {
		return id.UUID
	}
	return id.Name
}

// Handle is the native window handle understood by the host.
type Handle uint32

// Member is one window of a group as returned by the membership provider.
type Member struct {
	ID     Identity
	Handle Handle
}

// ChangeType classifies which axes of a rectangle changed.
type ChangeType int

const (
	ChangePosition ChangeType = iota // 0
	ChangeSize                       // 1
	ChangeBoth                       // 2
)

// String returns the string representation of a ChangeType
func (c ChangeType) String() string {
	switch c {
	case ChangePosition:
		return "position"
	case ChangeSize:
		return "size"
	case ChangeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ClassifyChange maps the per-axis flags onto a ChangeType. No change at all
// reports ChangePosition.
func ClassifyChange(position, size bool) ChangeType {
	switch {
	case position && size:
		return ChangeBoth
	case size:
		return ChangeSize
	default:
		return ChangePosition
	}
}

// Union merges two change types.
func (c ChangeType) Union(o ChangeType) ChangeType {
	return ClassifyChange(c.HasPosition() || o.HasPosition(), c.HasSize() || o.HasSize())
}

// HasPosition reports whether the position changed. A bare ChangePosition
// counts as a position change.
func (c ChangeType) HasPosition() bool { return c == ChangePosition || c == ChangeBoth }

// HasSize reports whether the size changed.
func (c ChangeType) HasSize() bool { return c == ChangeSize || c == ChangeBoth }

// Reason says who drove a bounds change.
type Reason string

const (
	ReasonSelf           Reason = "self"
	ReasonGroup          Reason = "group"
	ReasonAnimation      Reason = "animation"
	ReasonGroupAnimation Reason = "group-animation"
)

// LeaderType says what kind of change established group leadership.
type LeaderType string

const (
	LeaderUser      LeaderType = "user"
	LeaderAnimation LeaderType = "animation"
	LeaderAPI       LeaderType = "api"
)

// ParseLeaderType converts a string to LeaderType
func ParseLeaderType(s string) (LeaderType, bool) {
	switch LeaderType(s) {
	case LeaderUser, LeaderAnimation, LeaderAPI:
		return LeaderType(s), true
	default:
		return "", false
	}
}

// EventKind distinguishes provisional from final bounds events.
type EventKind string

const (
	BoundsChanging     EventKind = "bounds-changing"
	BoundsChangedEvent EventKind = "bounds-changed"
)

// BoundsEvent is what a window emits after reconciling a bounds change.
type BoundsEvent struct {
	Window     Identity   `json:"window"`
	Kind       EventKind  `json:"kind"`
	ChangeType ChangeType `json:"changeType"`
	Reason     Reason     `json:"reason"`
	Top        int        `json:"top"`
	Left       int        `json:"left"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Deferred   bool       `json:"deferred"`
}

func (e BoundsEvent) String() string {
	return fmt.Sprintf("%s %s type=%s reason=%s (%d,%d %dx%d) deferred=%t",
		e.Window, e.Kind, e.ChangeType, e.Reason, e.Left, e.Top, e.Width, e.Height, e.Deferred)
}
