package history

import (
	"errors"
	"sync"

	"github.com/Krazal/WebEdit/internal/engine/buffer"
	"github.com/Krazal/WebEdit/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []Command
	redoStack []Command

	depth     int
	groupName string
	groupCmds []Command

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records an applied command. Clears the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil
	if h.depth > 0 {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxEntries {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxEntries:]
	}
}

// Undo undoes the last command.
func (h *History) Undo(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := cmd.Undo(buf, sels); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, cmd)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, cmd)
	h.mu.Unlock()
	return nil
}

// Redo redoes the last undone command.
func (h *History) Redo(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := cmd.Execute(buf, sels); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, cmd)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, cmd)
	h.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// BeginGroup opens a group, or nests into the one already open.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		h.groupName = name
		h.groupCmds = nil
	}
	h.depth++
}

// EndGroup closes one nesting level. When the outermost group closes,
// the recorded commands become a single CompoundCommand.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}

	cmds := h.groupCmds
	h.groupCmds = nil
	if len(cmds) == 0 {
		return
	}
	h.pushLocked(&CompoundCommand{Name: h.groupName, Commands: cmds})
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

// Clear removes all undo/redo history and open groups.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.depth = 0
	h.groupCmds = nil
}
