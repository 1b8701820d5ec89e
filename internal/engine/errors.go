package engine

import "errors"

// Errors returned by document operations.
var (
	// ErrNoClipboard indicates Paste was called on a document without a clipboard.
	ErrNoClipboard = errors.New("no clipboard available")

	// ErrReadOnly indicates a write was attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")
)
