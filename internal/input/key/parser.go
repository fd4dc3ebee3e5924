package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "l", "L", "1", "@"
//   - Special keys: "Enter", "Escape", "Delete", "Space", "F2"
//   - With modifiers: "Ctrl+Z", "Ctrl+Shift+Z"
//   - Bracketed: "<C-z>", "<C-S-z>", "<Esc>", "<Del>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseWithModifiers(strings.Split(spec[1:len(spec)-1], "-"))
	}

	// "+" alone is a character, "Ctrl++" is not supported
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseWithModifiers(strings.Split(spec, "+"))
	}

	return parseKey(spec, ModNone)
}

// parseWithModifiers treats every part but the last as a modifier name.
func parseWithModifiers(parts []string) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(strings.TrimSpace(parts[len(parts)-1]), mods)
}

func parseKey(name string, mods Modifier) (Event, error) {
	if name == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(name) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	}

	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}

	r := runes[0]
	if unicode.IsUpper(r) {
		mods = mods.With(ModShift)
	}
	if mods.Has(ModCtrl) || mods.Has(ModAlt) || mods.Has(ModMeta) {
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.Spec(), nil
}
