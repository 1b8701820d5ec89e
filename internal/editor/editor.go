// Package editor defines the host collaborators the expansion engine
// consumes: the text buffer, transient notifications, the suggestion list
// presenter, the workspace that opens files, and the clipboard.
//
// The engine never renders anything. Every user-visible effect is a call
// on one of these interfaces, made synchronously on the host's command
// thread.
package editor

import (
	"github.com/Krazal/WebEdit/internal/engine/buffer"
	"github.com/Krazal/WebEdit/internal/suggest"
)

// ByteOffset is a byte position in document coordinate space.
type ByteOffset = buffer.ByteOffset

// Range is a (start, end) pair of byte offsets.
type Range = buffer.Range

// TextBuffer abstracts the host document the engine edits.
// All offsets are byte offsets in the document encoding.
type TextBuffer interface {
	// Selection state
	Selections() []Range
	MainSelection() int
	SetSelections(ranges []Range, main int)
	Selection() Range
	SetSelection(anchor, caret ByteOffset)
	SelectedText() string
	ReplaceSelection(text string)
	Caret() ByteOffset
	SetCaret(pos ByteOffset)

	// Read operations
	Len() ByteOffset
	TextRange(start, end ByteOffset) string
	LineFromOffset(pos ByteOffset) int
	LineStart(line int) ByteOffset
	LineEnd(line int) ByteOffset

	// Encoding
	ByteCount(s string) int
	EOL() string

	// Undo transaction
	BeginUndoAction()
	EndUndoAction()
	CanRedo() bool

	// Host primitives
	Paste() error
	Tab()
	CurrentWord() string
	FilePath() string
}

// Notifier shows transient feedback to the user.
type Notifier interface {
	// Hint shows an inline message anchored at pos (a call tip).
	Hint(pos ByteOffset, text string)

	// Notice shows an informational message.
	Notice(text string)

	// Confirm asks a yes/no question.
	Confirm(text string) bool
}

// Presenter shows a suggestion list and returns immediately. The user's
// choice arrives later as a separate notification.
type Presenter interface {
	ShowSuggestions(list suggest.List)
}

// Workspace opens files in the host editor.
type Workspace interface {
	// OpenFile opens path for editing and returns its buffer.
	OpenFile(path string) (TextBuffer, error)
}

// Clipboard reads the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
}
