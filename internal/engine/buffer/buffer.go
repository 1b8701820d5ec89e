package buffer

import (
	"errors"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds document text in the document encoding.
// Unlike an editor's input layer it never normalizes line endings:
// whatever bytes are written are kept, so mixed line breaks and the
// expansion placeholder survive intact.
type Buffer struct {
	mu         sync.RWMutex
	data       []byte
	lineStarts []ByteOffset
	revisionID RevisionID
	lineEnding LineEnding
	codec      codec
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.reindex()
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.data = b.codec.encode(s)
	b.reindex()
	return b
}

// NewBufferFromBytes creates a buffer over raw document bytes that are
// already in the configured encoding.
func NewBufferFromBytes(data []byte, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.data = append([]byte(nil), data...)
	b.reindex()
	return b
}

// reindex rebuilds the line start table. LF, CRLF and a bare CR each end a line.
func (b *Buffer) reindex() {
	starts := b.lineStarts[:0]
	starts = append(starts, 0)
	for i := 0; i < len(b.data); i++ {
		switch b.data[i] {
		case '\r':
			if i+1 < len(b.data) && b.data[i+1] == '\n' {
				i++
			}
			starts = append(starts, ByteOffset(i+1))
		case '\n':
			starts = append(starts, ByteOffset(i+1))
		}
	}
	b.lineStarts = starts
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.codec.decode(b.data)
}

// Bytes returns a copy of the raw document bytes.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]byte(nil), b.data...)
}

// TextRange returns text in the given byte range.
// The range is clamped to the buffer bounds.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := NewRange(start, end).Clamp(ByteOffset(len(b.data)))
	return b.codec.decode(b.data[r.Start:r.End])
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.data))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineStartOffset returns the byte offset of the start of a line.
// Lines past the end map to the buffer length.
func (b *Buffer) LineStartOffset(line int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return ByteOffset(len(b.data))
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the byte offset of the end of a line (before the line break).
func (b *Buffer) LineEndOffset(line int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		line = 0
	}
	if line >= len(b.lineStarts)-1 {
		return ByteOffset(len(b.data))
	}
	end := b.lineStarts[line+1]
	if end > 0 && b.data[end-1] == '\n' {
		end--
		if end > b.lineStarts[line] && b.data[end-1] == '\r' {
			end--
		}
	} else if end > 0 && b.data[end-1] == '\r' {
		end--
	}
	return end
}

// LineText returns the text of a specific line (without the line break).
func (b *Buffer) LineText(line int) string {
	return b.TextRange(b.LineStartOffset(line), b.LineEndOffset(line))
}

// LineFromOffset returns the 0-indexed line containing offset.
func (b *Buffer) LineFromOffset(offset ByteOffset) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	lo, hi := 0, len(b.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	line := b.LineFromOffset(offset)
	return Point{Line: line, Column: offset - b.LineStartOffset(line)}
}

// Encoding Conversion

// ByteCount returns the number of document bytes needed to encode s.
func (b *Buffer) ByteCount(s string) int {
	return b.codec.byteCount(s)
}

// CharCount returns the number of characters in the byte range.
func (b *Buffer) CharCount(start, end ByteOffset) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := NewRange(start, end).Clamp(ByteOffset(len(b.data)))
	return b.codec.charCount(b.data[r.Start:r.End])
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	return b.Replace(offset, offset, text)
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.Replace(start, end, "")
	return err
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.data)) {
		return 0, ErrRangeInvalid
	}

	encoded := b.codec.encode(text)
	data := make([]byte, 0, len(b.data)-int(end-start)+len(encoded))
	data = append(data, b.data[:start]...)
	data = append(data, encoded...)
	data = append(data, b.data[end:]...)
	b.data = data
	b.revisionID = NewRevisionID()
	b.reindex()

	return start + ByteOffset(len(encoded)), nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the buffer's line ending style.
// This does not convert existing line endings.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}
