package history

import (
	"fmt"

	"github.com/Krazal/WebEdit/internal/engine/buffer"
	"github.com/Krazal/WebEdit/internal/engine/cursor"
)

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Command represents an edit that can be redone and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer, sels *cursor.SelectionSet) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer, sels *cursor.SelectionSet) error

	// Description returns a human-readable description of the command.
	Description() string
}

// EditCommand records a replacement that has already been applied.
type EditCommand struct {
	OldRange Range
	NewRange Range
	OldText  string
	NewText  string

	SelectionsBefore []Selection
	MainBefore       int
	SelectionsAfter  []Selection
	MainAfter        int
}

// Execute re-applies the edit (used for redo).
func (c *EditCommand) Execute(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	if _, err := buf.Replace(c.OldRange.Start, c.OldRange.End, c.NewText); err != nil {
		return fmt.Errorf("redo %s: %w", c.Description(), err)
	}
	sels.SetAll(c.SelectionsAfter, c.MainAfter)
	return nil
}

// Undo reverses the edit.
func (c *EditCommand) Undo(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	if _, err := buf.Replace(c.NewRange.Start, c.NewRange.End, c.OldText); err != nil {
		return fmt.Errorf("undo %s: %w", c.Description(), err)
	}
	sels.SetAll(c.SelectionsBefore, c.MainBefore)
	return nil
}

// Description returns a human-readable description.
func (c *EditCommand) Description() string {
	if c.OldRange.IsEmpty() {
		return "Insert"
	}
	if c.NewText == "" {
		return "Delete"
	}
	return "Replace"
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf, sels); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(buf, sels)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(buf, sels); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}
