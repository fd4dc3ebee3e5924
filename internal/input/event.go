package input

import (
	"fmt"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/geom"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/key"
)

// Kind is the type of an input event.
type Kind uint8

const (
	// KindClick is a primary-button press at Pos.
	KindClick Kind = iota
	// KindMove is a pointer move to Pos.
	KindMove
	// KindKey is a key press.
	KindKey
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindClick:
		return "click"
	case KindMove:
		return "move"
	case KindKey:
		return "key"
	default:
		return "unknown"
	}
}

// Source indicates the origin of an event.
type Source uint8

const (
	// SourceTerminal is interactive input from the terminal front end.
	SourceTerminal Source = iota
	// SourceScript is input generated by a Lua macro.
	SourceScript
	// SourceReplay is input read from a replay file.
	SourceReplay
	// SourceAPI is input from direct calls, e.g. tests.
	SourceAPI
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceTerminal:
		return "terminal"
	case SourceScript:
		return "script"
	case SourceReplay:
		return "replay"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Event is one unit of user input.
type Event struct {
	Kind Kind

	// Pos is the pointer position in scene units for clicks and moves.
	Pos geom.Vector2

	// Key is the pressed key for KindKey.
	Key key.Event

	// Modifiers held during a click or move.
	Modifiers key.Modifier

	Source Source
}

// Click returns a click event at p.
func Click(p geom.Vector2, mods key.Modifier) Event {
	return Event{Kind: KindClick, Pos: p, Modifiers: mods, Source: SourceAPI}
}

// Move returns a pointer move event to p.
func Move(p geom.Vector2) Event {
	return Event{Kind: KindMove, Pos: p, Source: SourceAPI}
}

// Key returns a key press event.
func Key(k key.Event) Event {
	return Event{Kind: KindKey, Key: k, Modifiers: k.Modifiers, Source: SourceAPI}
}

// KeySpec parses spec and returns the key press event for it.
func KeySpec(spec string) (Event, error) {
	k, err := key.Parse(spec)
	if err != nil {
		return Event{}, err
	}
	return Key(k), nil
}

// From returns a copy of e with its source set.
func (e Event) From(s Source) Event {
	e.Source = s
	return e
}

// String describes the event for logs.
func (e Event) String() string {
	switch e.Kind {
	case KindClick, KindMove:
		return fmt.Sprintf("%s (%.4g, %.4g)", e.Kind, e.Pos.X, e.Pos.Y)
	case KindKey:
		return fmt.Sprintf("key %s", e.Key.Spec())
	default:
		return e.Kind.String()
	}
}
