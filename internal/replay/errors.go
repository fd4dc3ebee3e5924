package replay

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrInvalidStep is returned for a step that names no action, more
	// than one, or an unknown key.
	ErrInvalidStep = errors.New("invalid step")

	// ErrExpectationFailed is returned when a step's status differs from
	// its expect field.
	ErrExpectationFailed = errors.New("unexpected status")
)

// ParseError reports a replay file that could not be decoded.
type ParseError struct {
	// Path is the file, or "<input>" for in-memory data.
	Path string
	// Line is the 1-based line of the problem, 0 when unknown.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StepError ties a failure to the step that caused it.
type StepError struct {
	// Index is the 0-based position in the script.
	Index int
	// Line is where the step starts in the file, 0 when unknown.
	Line int
	Err  error
}

func (e *StepError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("step %d (line %d): %v", e.Index+1, e.Line, e.Err)
	}
	return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

var yamlLine = regexp.MustCompile(`^yaml: line (\d+):`)

func newParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Err: err}
	var se *StepError
	switch {
	case errors.As(err, &se):
		pe.Line = se.Line
	default:
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			pe.Line, _ = strconv.Atoi(m[1])
		}
	}
	return pe
}
