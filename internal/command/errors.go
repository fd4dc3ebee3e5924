package command

import "errors"

var (
	// ErrUnknownTool is returned for a tool name or value with no contract.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrEmptySelection is returned when a manipulation tool starts with
	// nothing selected.
	ErrEmptySelection = errors.New("nothing selected")

	// ErrDegenerateInput is returned when captured points cannot define
	// the operation, e.g. a scale reference on top of its base point.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrTargetRemoved is returned when an entity a command was started on
	// is no longer in the scene.
	ErrTargetRemoved = errors.New("target entity removed")

	// ErrNotActive is returned when a point is fed while idle.
	ErrNotActive = errors.New("no active command")
)
