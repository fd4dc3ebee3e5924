package app

import (
	"errors"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/history"
)

// Macro runs fn as one undo unit labelled "Macro <name>". fn drives the
// controller through its public methods; everything it commits undoes
// together, and an undo issued by fn itself cannot reach past the start of
// the macro.
//
// If fn fails, whatever it committed is undone, the failed macro is left
// on the redo stack and the error comes back as an *OperationError.
func (c *Controller) Macro(name string, fn func() error) error {
	label := "Macro " + name

	c.mu.Lock()
	scope := c.history.GroupScope(label)
	c.mu.Unlock()

	err := fn()

	c.mu.Lock()
	defer c.mu.Unlock()

	recorded := scope.End()
	if err == nil {
		if recorded {
			c.logger.WithField("entities", c.model.Len()).Info("committed %s", label)
		}
		return nil
	}

	opErr := NewOperationError("macro", name, err)
	if !recorded {
		return opErr
	}
	c.resetForHistoryLocked()
	if _, undoErr := c.history.Undo(c.model); undoErr != nil {
		c.logger.Error("rolling back %s: %v", label, undoErr)
		opErr.Err = errors.Join(err, undoErr)
		return opErr.WithContext("rollback failed")
	}
	c.status = label + " rolled back"
	c.logger.WithField("entities", c.model.Len()).Warn("%s rolled back: %v", label, err)
	return opErr.WithContext("rolled back")
}

// History returns the descriptions of the committed undo and redo entries,
// oldest first.
func (c *Controller) History() (undo, redo []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return descriptions(c.history.UndoInfo()), descriptions(c.history.RedoInfo())
}

func descriptions(infos []history.OperationInfo) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Description
	}
	return out
}
