package engine

import (
	"golang.org/x/text/encoding"

	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/engine/buffer"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
)

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial content of the document.
func WithContent(content string) Option {
	return func(d *Document) {
		d.initContent = content
	}
}

// WithBytes sets the initial content from raw bytes in the document encoding.
func WithBytes(data []byte) Option {
	return func(d *Document) {
		d.initBytes = data
	}
}

// WithPath sets the file path the document was loaded from.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// WithLineEnding sets the document's end-of-line style.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(d *Document) {
		d.bufOpts = append(d.bufOpts, buffer.WithLineEnding(ending))
	}
}

// WithEncoding sets the document encoding. Nil means UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(d *Document) {
		d.bufOpts = append(d.bufOpts, buffer.WithEncoding(enc))
	}
}

// WithTabWidth sets the tab width used by Tab.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		if width > 0 {
			d.tabWidth = width
		}
	}
}

// WithUseTabs makes Tab insert a tab character instead of spaces.
func WithUseTabs(useTabs bool) Option {
	return func(d *Document) {
		d.useTabs = useTabs
	}
}

// WithClipboard sets the clipboard used by Paste.
func WithClipboard(cb editor.Clipboard) Option {
	return func(d *Document) {
		d.clipboard = cb
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only document.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}
