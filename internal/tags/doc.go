// Package tags resolves the tag at the caret or in the selection and
// replaces it with its expansion from the [Tags] section.
//
// A Resolver reloads the store before every lookup, so edits to the tags
// file apply on the next attempt. A miss in single-selection mode shows a
// suggestion list instead of editing the buffer. A miss in
// multi-selection mode is skipped silently.
//
// Each [Commands] entry is a wrap template: every pipe is replaced by the
// selected text and the original text is reselected afterwards.
package tags
