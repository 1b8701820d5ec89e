// Package cursor provides selection management for the document.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The caret position (where typing would occur)
//
// When Anchor == Head, the selection represents just a caret with no
// selected text.
//
// Multi-Selection Support:
//
// SelectionSet holds every active selection in the order the host created
// them, plus the index of the main (primary) selection. Unlike an editor's
// cursor set it never merges or reorders on its own: callers that need the
// ascending Selection Set ask for Sorted explicitly.
//
// Selection is an immutable value type. SelectionSet is not thread-safe.
package cursor
