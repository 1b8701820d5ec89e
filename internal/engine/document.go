package engine

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/engine/buffer"
	"github.com/Krazal/WebEdit/internal/engine/cursor"
	"github.com/Krazal/WebEdit/internal/engine/history"
)

// Ensure Document satisfies the host buffer contract.
var _ editor.TextBuffer = (*Document)(nil)

// Document is an in-memory editor buffer with selections and undo.
type Document struct {
	buf     *buffer.Buffer
	sels    *cursor.SelectionSet
	history *history.History

	clipboard editor.Clipboard
	path      string
	tabWidth  int
	useTabs   bool
	readOnly  bool

	// Creation-time state consumed by New.
	initContent    string
	initBytes      []byte
	bufOpts        []buffer.Option
	maxUndoEntries int
}

// New creates a document with the given options.
func New(opts ...Option) *Document {
	d := &Document{
		tabWidth:       DefaultTabWidth,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.initBytes != nil {
		d.buf = buffer.NewBufferFromBytes(d.initBytes, d.bufOpts...)
	} else {
		d.buf = buffer.NewBufferFromString(d.initContent, d.bufOpts...)
	}
	d.sels = cursor.NewSelectionSetAt(0)
	d.history = history.NewHistory(d.maxUndoEntries)

	d.initContent = ""
	d.initBytes = nil
	d.bufOpts = nil
	return d
}

// Text returns the full document content.
func (d *Document) Text() string {
	return d.buf.Text()
}

// Bytes returns the encoded document content.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Buffer returns the underlying buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// FilePath returns the path the document was loaded from, or "".
func (d *Document) FilePath() string {
	return d.path
}

// SetFilePath sets the document path.
func (d *Document) SetFilePath(path string) {
	d.path = path
}

// IsReadOnly reports whether the document rejects writes.
func (d *Document) IsReadOnly() bool {
	return d.readOnly
}

// Len returns the document length in bytes.
func (d *Document) Len() buffer.ByteOffset {
	return d.buf.Len()
}

// TextRange returns the decoded text between two byte offsets.
func (d *Document) TextRange(start, end buffer.ByteOffset) string {
	return d.buf.TextRange(start, end)
}

// LineFromOffset returns the 0-indexed line containing pos.
func (d *Document) LineFromOffset(pos buffer.ByteOffset) int {
	return d.buf.LineFromOffset(pos)
}

// LineStart returns the byte offset where line begins.
func (d *Document) LineStart(line int) buffer.ByteOffset {
	return d.buf.LineStartOffset(line)
}

// LineEnd returns the byte offset where line ends, before its line break.
func (d *Document) LineEnd(line int) buffer.ByteOffset {
	return d.buf.LineEndOffset(line)
}

// ByteCount returns the encoded length of s.
func (d *Document) ByteCount(s string) int {
	return d.buf.ByteCount(s)
}

// EOL returns the document's end-of-line sequence.
func (d *Document) EOL() string {
	return d.buf.LineEnding().Sequence()
}

// Selections returns all selection ranges in host order.
func (d *Document) Selections() []buffer.Range {
	all := d.sels.All()
	ranges := make([]buffer.Range, len(all))
	for i, sel := range all {
		ranges[i] = sel.Range()
	}
	return ranges
}

// MainSelection returns the index of the main selection.
func (d *Document) MainSelection() int {
	return d.sels.MainIndex()
}

// SetSelections replaces the selection set. Each range is selected with
// its caret at the range end.
func (d *Document) SetSelections(ranges []buffer.Range, main int) {
	sels := make([]cursor.Selection, len(ranges))
	for i, r := range ranges {
		sels[i] = cursor.NewSelection(r.Start, r.End)
	}
	d.sels.SetAll(sels, main)
	d.sels.Clamp(d.buf.Len())
}

// Selection returns the main selection range.
func (d *Document) Selection() buffer.Range {
	return d.sels.Main().Range()
}

// SetSelection makes a single selection from anchor to caret.
func (d *Document) SetSelection(anchor, caret buffer.ByteOffset) {
	d.sels.Set(cursor.NewSelection(anchor, caret).Clamp(d.buf.Len()))
}

// SelectedText returns the text of the main selection.
func (d *Document) SelectedText() string {
	r := d.Selection()
	return d.buf.TextRange(r.Start, r.End)
}

// Caret returns the caret (head) of the main selection.
func (d *Document) Caret() buffer.ByteOffset {
	return d.sels.Main().Head
}

// SetCaret collapses the selection to a single caret at pos.
func (d *Document) SetCaret(pos buffer.ByteOffset) {
	d.sels.Set(cursor.NewCursorSelection(pos).Clamp(d.buf.Len()))
}

// ReplaceSelection replaces the main selection with text and leaves a
// single caret after the inserted text.
func (d *Document) ReplaceSelection(text string) {
	r := d.Selection()
	d.replace(r.Start, r.End, text)
}

// replace applies one recorded edit.
func (d *Document) replace(start, end buffer.ByteOffset, text string) {
	if d.readOnly {
		return
	}
	oldText := d.buf.TextRange(start, end)
	before := d.sels.All()
	mainBefore := d.sels.MainIndex()

	newEnd, err := d.buf.Replace(start, end, text)
	if err != nil {
		return
	}
	d.sels.Set(cursor.NewCursorSelection(newEnd))

	d.history.Push(&history.EditCommand{
		OldRange:         buffer.NewRange(start, end),
		NewRange:         buffer.NewRange(start, newEnd),
		OldText:          oldText,
		NewText:          text,
		SelectionsBefore: before,
		MainBefore:       mainBefore,
		SelectionsAfter:  d.sels.All(),
		MainAfter:        0,
	})
}

// BeginUndoAction opens an undo group. Groups nest.
func (d *Document) BeginUndoAction() {
	d.history.BeginGroup("action")
}

// EndUndoAction closes the innermost undo group.
func (d *Document) EndUndoAction() {
	d.history.EndGroup()
}

// CanUndo reports whether there is an edit to undo.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo reports whether there is an undone edit to redo.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// Undo reverts the last edit or group.
func (d *Document) Undo() error {
	return d.history.Undo(d.buf, d.sels)
}

// Redo re-applies the last undone edit or group.
func (d *Document) Redo() error {
	return d.history.Redo(d.buf, d.sels)
}

// Paste replaces the selection with the clipboard text.
func (d *Document) Paste() error {
	if d.clipboard == nil {
		return ErrNoClipboard
	}
	if d.readOnly {
		return ErrReadOnly
	}
	text, err := d.clipboard.ReadAll()
	if err != nil {
		return err
	}
	d.ReplaceSelection(text)
	return nil
}

// Tab performs the editor's tab key action on the main selection.
// A selection within one line is replaced by indentation up to the next
// tab stop. A selection spanning lines indents every line it touches.
func (d *Document) Tab() {
	r := d.Selection()
	startLine := d.buf.LineFromOffset(r.Start)
	endLine := d.buf.LineFromOffset(r.End)
	if startLine == endLine {
		column := d.visualColumn(startLine, r.Start)
		d.replace(r.Start, r.End, d.indentFrom(column))
		return
	}

	// Do not indent the last line when the selection ends at its start.
	if r.End == d.buf.LineStartOffset(endLine) {
		endLine--
	}
	unit := d.indentFrom(0)
	defer d.history.GroupScope("indent").End()
	for line := endLine; line >= startLine; line-- {
		start := d.buf.LineStartOffset(line)
		d.replace(start, start, unit)
	}
	first := d.buf.LineStartOffset(startLine)
	last := d.buf.LineEndOffset(endLine)
	d.sels.Set(cursor.NewSelection(first, last))
}

// visualColumn returns the display column of pos on line, expanding tabs.
func (d *Document) visualColumn(line int, pos buffer.ByteOffset) int {
	column := 0
	for _, r := range d.buf.TextRange(d.buf.LineStartOffset(line), pos) {
		if r == '\t' {
			column += d.tabWidth - column%d.tabWidth
			continue
		}
		column++
	}
	return column
}

// indentFrom returns the indentation that advances column to the next tab stop.
func (d *Document) indentFrom(column int) string {
	if d.useTabs {
		return "\t"
	}
	return strings.Repeat(" ", d.tabWidth-column%d.tabWidth)
}

// CurrentWord returns the word touching the caret, or "" when the caret
// is not on a word. Words follow Unicode word boundaries.
func (d *Document) CurrentWord() string {
	caret := d.Caret()
	line := d.buf.LineFromOffset(caret)
	lineStart := d.buf.LineStartOffset(line)
	text := d.buf.TextRange(lineStart, d.buf.LineEndOffset(line))
	caretChar := d.buf.CharCount(lineStart, caret)

	var before string
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		start := pos
		pos += len([]rune(word))
		if !isWordSegment(word) {
			if start >= caretChar {
				break
			}
			continue
		}
		if start <= caretChar && caretChar < pos {
			return word
		}
		if pos == caretChar {
			before = word
		}
		if start > caretChar {
			break
		}
	}
	return before
}

// isWordSegment reports whether a word-boundary segment is a word
// rather than whitespace or punctuation.
func isWordSegment(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}
