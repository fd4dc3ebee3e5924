package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrModuleUnavailable is returned by require for modules outside the
	// sandbox whitelist.
	ErrModuleUnavailable = errors.New("module not available")
)

// ScriptError reports a failure while loading or running a script.
type ScriptError struct {
	// Script is the file name, or "<string>" for inline code.
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
