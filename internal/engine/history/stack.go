package history

import (
	"sync"
	"time"

	"github.com/Hakkology/MuginCAD-sub001/internal/engine/scene"
)

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 1000

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// History manages undo/redo state for a model.
//
// While a group is open, commands collect in the group's own stacks and
// Undo/Redo act on those alone, so an undo inside a group never reaches
// work committed before the group began.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Open group
	grouping  bool
	groupName string
	groupUndo []*undoEntry
	groupRedo []*undoEntry

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Execute runs a command and adds it to the undo stack.
// A command that fails is not recorded.
func (h *History) Execute(cmd Command, m *scene.Model) error {
	if err := cmd.Execute(m); err != nil {
		return err
	}

	h.Push(cmd)
	return nil
}

// Push adds an already executed command to the undo stack, or to the open
// group. Clears the matching redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := &undoEntry{command: cmd, timestamp: time.Now()}
	if h.grouping {
		h.groupUndo = append(h.groupUndo, entry)
		h.groupRedo = nil
		return
	}
	h.pushLocked(entry)
}

// pushLocked adds an entry to the main undo stack without acquiring the lock.
func (h *History) pushLocked(entry *undoEntry) {
	h.undoStack = append(h.undoStack, entry)

	// New actions invalidate redo
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// stacksLocked returns the stacks Undo and Redo act on.
func (h *History) stacksLocked() (undo, redo *[]*undoEntry) {
	if h.grouping {
		return &h.groupUndo, &h.groupRedo
	}
	return &h.undoStack, &h.redoStack
}

// Undo undoes the last command and reports whether there was one.
// An empty undo stack is a no-op, not an error.
func (h *History) Undo(m *scene.Model) (bool, error) {
	return h.step(m, false)
}

// Redo redoes the last undone command and reports whether there was one.
// An empty redo stack is a no-op, not an error.
func (h *History) Redo(m *scene.Model) (bool, error) {
	return h.step(m, true)
}

// step moves the newest entry from one stack to the other, running it in
// the matching direction. A failed entry stays where it was.
func (h *History) step(m *scene.Model, redo bool) (bool, error) {
	h.mu.Lock()
	from, to := h.stacksLocked()
	if redo {
		from, to = to, from
	}
	if len(*from) == 0 {
		h.mu.Unlock()
		return false, nil
	}
	entry := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	h.mu.Unlock()

	var err error
	if redo {
		err = entry.command.Execute(m)
	} else {
		err = entry.command.Undo(m)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		*from = append(*from, entry)
		return false, err
	}
	*to = append(*to, entry)
	return true, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	undo, _ := h.stacksLocked()
	return len(*undo) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, redo := h.stacksLocked()
	return len(*redo) > 0
}

// UndoCount returns the number of committed undo entries. An open group
// counts once it ends.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of committed redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupUndo = nil
	h.groupRedo = nil
}

// UndoInfo returns info about the committed undo entries, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infoOf(h.undoStack)
}

// RedoInfo returns info about the committed redo entries, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infoOf(h.redoStack)
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	undo, _ := h.stacksLocked()
	return peek(*undo)
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, redo := h.stacksLocked()
	return peek(*redo)
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = n

	if len(h.undoStack) > n {
		excess := len(h.undoStack) - n
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

func infoOf(stack []*undoEntry) []OperationInfo {
	result := make([]OperationInfo, len(stack))
	for i, entry := range stack {
		result[i] = OperationInfo{
			Description: entry.command.Description(),
			Timestamp:   entry.timestamp,
		}
	}
	return result
}

func peek(stack []*undoEntry) (OperationInfo, bool) {
	if len(stack) == 0 {
		return OperationInfo{}, false
	}
	entry := stack[len(stack)-1]
	return OperationInfo{
		Description: entry.command.Description(),
		Timestamp:   entry.timestamp,
	}, true
}
