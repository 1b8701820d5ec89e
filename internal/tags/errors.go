package tags

import (
	"errors"
	"fmt"
)

// Resolution errors.
var (
	// ErrNoTagHere indicates there is no usable query at the caret.
	ErrNoTagHere = errors.New("tags: no tag here")

	// ErrTagTooLong indicates the query exceeds the maximum key length.
	ErrTagTooLong = errors.New("tags: tag too long")

	// ErrTagNotFound indicates the query is not a known tag. It routes to
	// the suggestion flow and is never shown as a failure.
	ErrTagNotFound = errors.New("tags: tag not found")

	// ErrUnknownCommand indicates a [Commands] entry does not exist.
	ErrUnknownCommand = errors.New("tags: unknown command")

	// ErrMultiSelection indicates recommendation was asked for with more
	// than one selection active.
	ErrMultiSelection = errors.New("tags: recommendation needs a single selection")
)

// Hint texts shown at the caret.
const (
	HintEmptyLine          = "Empty line"
	HintNoTagFound         = "No tag found"
	HintNoTagHere          = "No tag here"
	HintRecommendMultiMode = "Tag recommendation is not supported in multi-selection mode"
)

// HintTagTooLong is shown for a query longer than the key limit.
var HintTagTooLong = fmt.Sprintf("Maximum tag length is %d characters", MaxTagLen)

// RejectError is a query that failed validation. Hint is the text shown
// to the user.
type RejectError struct {
	Kind error
	Hint string
}

func (e *RejectError) Error() string {
	return e.Hint
}

func (e *RejectError) Unwrap() error {
	return e.Kind
}

// ExpansionError is an unexpected failure while expanding a tag.
type ExpansionError struct {
	Tag string
	Err error
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("tags: expanding %q: %v", e.Tag, e.Err)
}

func (e *ExpansionError) Unwrap() error {
	return e.Err
}
