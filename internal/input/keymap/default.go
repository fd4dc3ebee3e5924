package keymap

// Action names dispatched by the controller.
const (
	ActionToolLine      = "tool.line"
	ActionToolCircle    = "tool.circle"
	ActionToolRectangle = "tool.rectangle"
	ActionToolArc       = "tool.arc"
	ActionToolText      = "tool.text"
	ActionToolMove      = "tool.move"
	ActionToolRotate    = "tool.rotate"
	ActionToolScale     = "tool.scale"
	ActionToolCopy      = "tool.copy"
	ActionToolCut       = "tool.cut"

	ActionCancel = "command.cancel"

	ActionUndo   = "edit.undo"
	ActionRedo   = "edit.redo"
	ActionDelete = "edit.delete"

	ActionSelectionClear = "selection.clear"
	ActionSelectionAll   = "selection.all"

	ActionArcToggleDirection = "arc.toggleDirection"
	ActionSnapToggleGrid     = "snap.toggleGrid"
)

// Default returns the built-in bindings.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			// Drawing
			{Keys: "l", Action: ActionToolLine, Description: "Draw line", Category: "Draw"},
			{Keys: "c", Action: ActionToolCircle, Description: "Draw circle", Category: "Draw"},
			{Keys: "r", Action: ActionToolRectangle, Description: "Draw rectangle", Category: "Draw"},
			{Keys: "a", Action: ActionToolArc, Description: "Draw arc", Category: "Draw"},
			{Keys: "t", Action: ActionToolText, Description: "Place text", Category: "Draw"},
			{Keys: "d", Action: ActionArcToggleDirection, Description: "Toggle arc direction", Category: "Draw"},

			// Modify
			{Keys: "m", Action: ActionToolMove, Description: "Move selection", Category: "Modify"},
			{Keys: "o", Action: ActionToolRotate, Description: "Rotate selection", Category: "Modify"},
			{Keys: "s", Action: ActionToolScale, Description: "Scale selection", Category: "Modify"},
			{Keys: "y", Action: ActionToolCopy, Description: "Copy selection", Category: "Modify"},
			{Keys: "x", Action: ActionToolCut, Description: "Cut selection", Category: "Modify"},
			{Keys: "Delete", Action: ActionDelete, Description: "Delete selection", Category: "Modify"},
			{Keys: "Backspace", Action: ActionDelete, Description: "Delete selection", Category: "Modify"},

			// Edit
			{Keys: "Ctrl+z", Action: ActionUndo, Description: "Undo", Category: "Edit"},
			{Keys: "u", Action: ActionUndo, Description: "Undo", Category: "Edit"},
			{Keys: "Ctrl+y", Action: ActionRedo, Description: "Redo", Category: "Edit"},
			{Keys: "Ctrl+Shift+z", Action: ActionRedo, Description: "Redo", Category: "Edit"},
			{Keys: "U", Action: ActionRedo, Description: "Redo", Category: "Edit"},

			// Selection
			{Keys: "Ctrl+a", Action: ActionSelectionAll, Description: "Select all", Category: "Selection"},
			{Keys: "Escape", Action: ActionCancel, Description: "Cancel command", Category: "Selection"},
			{Keys: "Ctrl+d", Action: ActionSelectionClear, Description: "Clear selection", Category: "Selection"},

			// Snap
			{Keys: "g", Action: ActionSnapToggleGrid, Description: "Toggle grid snap", Category: "Snap"},
		},
	}
}
