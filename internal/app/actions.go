package app

import (
	"fmt"

	"github.com/Hakkology/MuginCAD-sub001/internal/command"
	"github.com/Hakkology/MuginCAD-sub001/internal/engine/history"
	"github.com/Hakkology/MuginCAD-sub001/internal/input/keymap"
	"github.com/Hakkology/MuginCAD-sub001/internal/snap"
)

// toolActions maps keymap actions to the tool they start.
var toolActions = map[string]command.Tool{
	keymap.ActionToolLine:      command.ToolLine,
	keymap.ActionToolCircle:    command.ToolCircle,
	keymap.ActionToolRectangle: command.ToolRectangle,
	keymap.ActionToolArc:       command.ToolArc,
	keymap.ActionToolText:      command.ToolText,
	keymap.ActionToolMove:      command.ToolMove,
	keymap.ActionToolRotate:    command.ToolRotate,
	keymap.ActionToolScale:     command.ToolScale,
	keymap.ActionToolCopy:      command.ToolCopy,
	keymap.ActionToolCut:       command.ToolCut,
}

// dispatchLocked runs action and returns the status it produces.
// Failures the user can act on come back as status text; err is only set
// for an action name nothing handles.
func (c *Controller) dispatchLocked(action string) (string, error) {
	if t, ok := toolActions[action]; ok {
		return c.startToolLocked(t), nil
	}

	switch action {
	case keymap.ActionCancel:
		return c.cancelLocked(), nil
	case keymap.ActionUndo:
		return c.undoLocked(), nil
	case keymap.ActionRedo:
		return c.redoLocked(), nil
	case keymap.ActionDelete:
		return c.deleteLocked(), nil
	case keymap.ActionSelectionAll:
		for i := 0; i < c.model.Len(); i++ {
			c.selection[i] = struct{}{}
		}
		return c.selectionStatus(), nil
	case keymap.ActionSelectionClear:
		c.clearSelectionLocked()
		return "Selection cleared", nil
	case keymap.ActionArcToggleDirection:
		if c.machine.ToggleArcDirection() {
			return "Arc direction: clockwise", nil
		}
		return "Arc direction: counter-clockwise", nil
	case keymap.ActionSnapToggleGrid:
		if c.snap.Toggle(snap.KindGrid) {
			return "Grid snap on", nil
		}
		return "Grid snap off", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// StartTool starts tool t on the current selection and returns the status.
func (c *Controller) StartTool(t command.Tool) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = c.startToolLocked(t)
	return c.status
}

func (c *Controller) startToolLocked(t command.Tool) string {
	opts := command.Options{
		Filled:   c.draw.Filled,
		FontSize: c.draw.FontSize,
		Text:     c.draw.Text,
	}
	err := c.machine.Start(t, c.selected(), opts)
	c.syncReferenceLocked()
	if err != nil {
		c.logger.WithField("tool", t).Info("not started: %v", err)
		return c.errorStatus(t, err)
	}
	c.logger.WithField("tool", t).Debug("started")
	return c.promptLocked()
}

func (c *Controller) cancelLocked() string {
	if c.machine.Cancel() {
		c.syncReferenceLocked()
		return "Cancelled"
	}
	if len(c.selection) > 0 {
		c.clearSelectionLocked()
		return "Selection cleared"
	}
	return "Ready"
}

// undoLocked and redoLocked discard any command in progress and the
// selection, whose indices may no longer name the same entities.
func (c *Controller) undoLocked() string {
	info, ok := c.history.PeekUndo()
	if !ok {
		return "Nothing to undo"
	}
	c.resetForHistoryLocked()

	if _, err := c.history.Undo(c.model); err != nil {
		c.logger.Error("undo %s: %v", info.Description, err)
		return NewOperationError("undo", info.Description, err).Error()
	}
	c.logger.WithField("entities", c.model.Len()).Info("undo %s", info.Description)
	return "Undo: " + info.Description
}

func (c *Controller) redoLocked() string {
	info, ok := c.history.PeekRedo()
	if !ok {
		return "Nothing to redo"
	}
	c.resetForHistoryLocked()

	if _, err := c.history.Redo(c.model); err != nil {
		c.logger.Error("redo %s: %v", info.Description, err)
		return NewOperationError("redo", info.Description, err).Error()
	}
	c.logger.WithField("entities", c.model.Len()).Info("redo %s", info.Description)
	return "Redo: " + info.Description
}

func (c *Controller) resetForHistoryLocked() {
	c.machine.Cancel()
	c.syncReferenceLocked()
	c.clearSelectionLocked()
	c.hover = -1
}

// deleteLocked removes the selection. A command in progress is cancelled
// first since its captured targets are indices into the scene.
func (c *Controller) deleteLocked() string {
	sel := c.selected()
	if len(sel) == 0 {
		return c.errorStatus(command.ToolNone, ErrNothingSelected)
	}
	if c.machine.Cancel() {
		c.syncReferenceLocked()
	}

	cmd := history.NewRemoveCommand(sel)
	if err := c.history.Execute(cmd, c.model); err != nil {
		c.logger.Error("delete: %v", err)
		return NewOperationError("delete", c.printer.Sprintf("%d entities", len(sel)), err).Error()
	}
	c.clearSelectionLocked()
	c.hover = -1
	c.logger.WithField("entities", c.model.Len()).Info("committed %s", cmd.Description())
	return cmd.Description()
}
