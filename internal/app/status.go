package app

import (
	"github.com/Hakkology/MuginCAD-sub001/internal/command"
)

// promptLocked describes what the active command waits for, e.g.
// "Line: pick end point".
func (c *Controller) promptLocked() string {
	cmd, ok := c.machine.Pending()
	if !ok {
		return "Ready"
	}
	return c.title.String(cmd.Tool.String()) + ": " + cmd.Prompt()
}

func (c *Controller) selectionStatus() string {
	switch n := len(c.selection); n {
	case 0:
		return "Nothing selected"
	case 1:
		return "1 entity selected"
	default:
		return c.printer.Sprintf("%d entities selected", n)
	}
}

// errorStatus turns a command or controller error into status text.
func (c *Controller) errorStatus(t command.Tool, err error) string {
	name := c.title.String(t.String())
	switch {
	case isAny(err, command.ErrEmptySelection, ErrNothingSelected):
		if t == command.ToolNone {
			return "Nothing selected"
		}
		return name + ": select entities first"
	case isAny(err, command.ErrDegenerateInput):
		return name + " rejected: " + err.Error()
	default:
		return name + ": " + err.Error()
	}
}
