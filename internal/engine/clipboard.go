package engine

import "github.com/atotto/clipboard"

// SystemClipboard reads the operating system clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// StaticClipboard is a clipboard holding a fixed string.
type StaticClipboard string

// ReadAll returns the held text.
func (c StaticClipboard) ReadAll() (string, error) {
	return string(c), nil
}
