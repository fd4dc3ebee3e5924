package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if Ctrl, Alt or Meta is pressed.
// Shift alone does not count for characters since it changes the
// character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) || e.Modifiers.Has(ModMeta)
	}
	return e.Modifiers != ModNone
}

// Spec returns the canonical key specification.
// Examples: "l", "L", "<Esc>", "<Del>", "<C-z>", "<C-S-z>"
func (e Event) Spec() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "M")
	}
	if e.Modifiers.Has(ModShift) || (e.IsRune() && unicode.IsUpper(e.Rune)) {
		parts = append(parts, "S")
	}

	name := e.Key.String()
	if e.IsRune() {
		name = string(unicode.ToLower(e.Rune))
		if e.Rune == ' ' {
			name = "Space"
		}
	}
	parts = append(parts, name)

	return "<" + strings.Join(parts, "-") + ">"
}

// String returns the canonical specification.
func (e Event) String() string {
	return e.Spec()
}

// Matches reports whether e is the key named by spec.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Spec() == parsed.Spec()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}", e.Key, e.Rune, e.Modifiers)
}
