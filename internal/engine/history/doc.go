// Package history provides undo/redo functionality for the drawing model.
//
// The history system uses the Command pattern to encapsulate scene
// mutations, enabling them to be executed, undone, and redone. Key concepts:
//
// # Transforms
//
// A Transform describes one geometric manipulation (translate, rotate or
// scale). Commands never invert a transform; they restore snapshots.
//
// # Commands
//
// Commands implement the Command interface with Execute and Undo methods.
// Built-in commands include:
//   - AddCommand: Insert one entity
//   - RemoveCommand: Remove a set of entities
//   - TransformCommand: Apply a Transform to a set of entities
//   - CompoundCommand: Group multiple commands as one undo unit
//
// Every command captures the entities it touches when it first executes,
// never the whole scene, and restores exactly those on undo. Captured data is
// keyed by index as it was at execution time; undo runs in strict reverse
// order, so those indices are valid again when the inverse is applied.
//
// # History Stack
//
// The History type manages undo/redo stacks and command grouping:
//
//	history := NewHistory(1000) // Max 1000 undo entries
//
//	// Execute commands
//	history.Execute(cmd, model)
//
//	// Undo/redo; both are no-ops on an empty stack
//	history.Undo(model)
//	history.Redo(model)
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	scope := history.GroupScope("Macro house.lua")
//	// ... multiple mutations ...
//	scope.End()
//
// Inside an open group, Undo and Redo only walk the group's own commands.
package history
