package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"l", Event{Key: KeyRune, Rune: 'l'}},
		{"L", Event{Key: KeyRune, Rune: 'L', Modifiers: ModShift}},
		{"Escape", Event{Key: KeyEscape}},
		{"<Esc>", Event{Key: KeyEscape}},
		{"Delete", Event{Key: KeyDelete}},
		{"F2", Event{Key: KeyF2}},
		{"Space", Event{Key: KeyRune, Rune: ' '}},
		{"Ctrl+Z", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl | ModShift}},
		{"Ctrl+z", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl}},
		{"<C-y>", Event{Key: KeyRune, Rune: 'y', Modifiers: ModCtrl}},
		{"<C-S-z>", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl | ModShift}},
		{"+", Event{Key: KeyRune, Rune: '+'}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+x", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"banana", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestSpecIsCanonical(t *testing.T) {
	tests := []struct {
		specs []string
		want  string
	}{
		{[]string{"l"}, "l"},
		{[]string{"L", "Shift+L"}, "L"},
		{[]string{"Escape", "esc", "<Esc>"}, "<Esc>"},
		{[]string{"Ctrl+Z", "<C-S-z>", "Ctrl+Shift+z"}, "<C-S-z>"},
		{[]string{"Delete", "<Del>"}, "<Del>"},
		{[]string{"space"}, "<Space>"},
	}
	for _, tt := range tests {
		first, err := NormalizeSpec(tt.specs[0])
		if err != nil {
			t.Fatalf("NormalizeSpec(%q) error = %v", tt.specs[0], err)
		}
		if first != tt.want {
			t.Errorf("NormalizeSpec(%q) = %q, want %q", tt.specs[0], first, tt.want)
		}
		for _, s := range tt.specs[1:] {
			got, err := NormalizeSpec(s)
			if err != nil {
				t.Fatalf("NormalizeSpec(%q) error = %v", s, err)
			}
			if got != first {
				t.Errorf("NormalizeSpec(%q) = %q, want %q", s, got, first)
			}
		}
	}
}

func TestTerminalEventMatchesSpec(t *testing.T) {
	ev := NewRuneEvent('z', ModCtrl)
	if !ev.Matches("Ctrl+z") || !ev.Matches("<C-z>") {
		t.Errorf("%v should match Ctrl+z", ev)
	}
	if ev.Matches("Ctrl+Shift+Z") {
		t.Errorf("%v should not match Ctrl+Shift+Z", ev)
	}

	shifted := NewRuneEvent('L', ModNone)
	if !shifted.Matches("L") {
		t.Errorf("%v should match L", shifted)
	}
	if !NewSpecialEvent(KeyDelete, ModNone).Matches("Delete") {
		t.Error("Del should match Delete")
	}
}

func TestModifierString(t *testing.T) {
	if got := (ModCtrl | ModShift).String(); got != "Ctrl+Shift" {
		t.Errorf("String() = %q", got)
	}
	if got := (ModCtrl | ModShift).Without(ModShift); got != ModCtrl {
		t.Errorf("Without() = %v", got)
	}
	if ModifierFromName("CMD") != ModMeta {
		t.Error("CMD should map to Meta")
	}
}

func TestKeyString(t *testing.T) {
	if KeyF12.String() != "F12" || KeyDelete.String() != "Del" {
		t.Errorf("got %q, %q", KeyF12.String(), KeyDelete.String())
	}
	if KeyFromName("f7") != KeyF7 || KeyFromName("f13") != KeyNone {
		t.Error("KeyFromName function keys")
	}
}
