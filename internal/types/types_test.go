package types

import "testing"

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		position, size bool
		want           ChangeType
	}{
		{false, false, ChangePosition},
		{true, false, ChangePosition},
		{false, true, ChangeSize},
		{true, true, ChangeBoth},
	}
	for _, tt := range tests {
		if got := ClassifyChange(tt.position, tt.size); got != tt.want {
			t.Errorf("ClassifyChange(%v, %v) = %v, want %v", tt.position, tt.size, got, tt.want)
		}
	}
}

func TestChangeTypeUnion(t *testing.T) {
	tests := []struct {
		a, b, want ChangeType
	}{
		{ChangePosition, ChangePosition, ChangePosition},
		{ChangeSize, ChangeSize, ChangeSize},
		{ChangePosition, ChangeSize, ChangeBoth},
		{ChangeSize, ChangeBoth, ChangeBoth},
	}
	for _, tt := range tests {
		if got := tt.a.Union(tt.b); got != tt.want {
			t.Errorf("%v.Union(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestChangeTypeNumericValues(t *testing.T) {
	if ChangePosition != 0 || ChangeSize != 1 || ChangeBoth != 2 {
		t.Errorf("change types = %d,%d,%d, want 0,1,2", ChangePosition, ChangeSize, ChangeBoth)
	}
}

func TestParseNotification(t *testing.T) {
	tests := []struct {
		input string
		want  Notification
		ok    bool
	}{
		{"bounds-changed", BoundsChanged{}, true},
		{"minimize", Minimize{}, true},
		{"show", VisibilityChanged{Visible: true}, true},
		{"hide", VisibilityChanged{}, true},
		{"synth-animate-end", SynthAnimateEnd{Bounds: true}, true},
		{"explode", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNotification(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseNotification(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseLeaderType(t *testing.T) {
	if lt, ok := ParseLeaderType("api"); !ok || lt != LeaderAPI {
		t.Errorf("ParseLeaderType(api) = %v, %v", lt, ok)
	}
	if _, ok := ParseLeaderType("robot"); ok {
		t.Error("ParseLeaderType(robot) should fail")
	}
}

func TestNewIdentity(t *testing.T) {
	a := NewIdentity("editor")
	b := NewIdentity("editor")
	if a.UUID == "" || a.UUID == b.UUID {
		t.Errorf("identities should get distinct uuids: %q %q", a.UUID, b.UUID)
	}
	if a.String() != "editor" {
		t.Errorf("String() = %q, want editor", a.String())
	}
}
