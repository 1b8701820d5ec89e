package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingBuffer indicates the command needs a document but none is active.
	ErrMissingBuffer = errors.New("execution context: buffer is required")
)
