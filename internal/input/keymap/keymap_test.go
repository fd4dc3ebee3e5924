package keymap

import (
	"reflect"
	"testing"

	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
)

func newDefaultRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.Register(Default()); err != nil {
		t.Fatalf("Register(Default()) error = %v", err)
	}
	return r
}

func TestDefaultKeymapValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLookup(t *testing.T) {
	r := newDefaultRegistry(t)

	tests := []struct {
		name string
		ev   key.Event
		want string
	}{
		{"line", key.NewRuneEvent('l', key.ModNone), ActionToolLine},
		{"escape cancels", key.NewSpecialEvent(key.KeyEscape, key.ModNone), ActionCancel},
		{"ctrl z undo", key.NewRuneEvent('z', key.ModCtrl), ActionUndo},
		{"ctrl shift z redo", key.NewRuneEvent('z', key.ModCtrl|key.ModShift), ActionRedo},
		{"shift u redo", key.NewRuneEvent('U', key.ModShift), ActionRedo},
		{"delete", key.NewSpecialEvent(key.KeyDelete, key.ModNone), ActionDelete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := r.Lookup(tt.ev)
			if !ok {
				t.Fatalf("Lookup(%v) found nothing", tt.ev)
			}
			if b.Action != tt.want {
				t.Errorf("Lookup(%v).Action = %q, want %q", tt.ev, b.Action, tt.want)
			}
		})
	}

	if _, ok := r.Lookup(key.NewRuneEvent('q', key.ModNone)); ok {
		t.Error("Lookup(q) should find nothing")
	}
}

func TestUserKeymapOverrides(t *testing.T) {
	r := newDefaultRegistry(t)

	user := FromMap("user", map[string]string{
		"l":      ActionToolArc,
		"Ctrl+z": ActionNone,
		"F5":     ActionSnapToggleGrid,
	}).WithPriority(10).WithSource("config")
	if err := r.Register(user); err != nil {
		t.Fatal(err)
	}

	if b, _ := r.Lookup(key.NewRuneEvent('l', key.ModNone)); b.Action != ActionToolArc {
		t.Errorf("l = %q, want %q", b.Action, ActionToolArc)
	}
	if _, ok := r.Lookup(key.NewRuneEvent('z', key.ModCtrl)); ok {
		t.Error("Ctrl+z should be unbound")
	}
	if b, _ := r.Lookup(key.NewSpecialEvent(key.KeyF5, key.ModNone)); b.Action != ActionSnapToggleGrid {
		t.Errorf("F5 = %q", b.Action)
	}

	r.Unregister("user")
	if b, _ := r.Lookup(key.NewRuneEvent('l', key.ModNone)); b.Action != ActionToolLine {
		t.Errorf("after Unregister l = %q, want %q", b.Action, ActionToolLine)
	}
}

func TestSamePriorityLaterWins(t *testing.T) {
	r := NewRegistry()
	r.Register(NewKeymap("a").Add("k", "first"))
	r.Register(NewKeymap("b").Add("k", "second"))

	if b, _ := r.Lookup(key.NewRuneEvent('k', key.ModNone)); b.Action != "second" {
		t.Errorf("Action = %q, want second", b.Action)
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewKeymap("bad").Add("Hyper+k", "x")); err == nil {
		t.Error("invalid key spec should fail")
	}
	if err := r.Register(NewKeymap("bad").Add("k", "")); err == nil {
		t.Error("empty action should fail")
	}
	if err := r.Register(nil); err == nil {
		t.Error("nil keymap should fail")
	}
}

func TestKeysFor(t *testing.T) {
	r := newDefaultRegistry(t)
	got := r.KeysFor(ActionUndo)
	want := []string{"<C-z>", "u"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeysFor(undo) = %v, want %v", got, want)
	}
}
