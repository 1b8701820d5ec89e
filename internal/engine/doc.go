// Package engine provides Document, the in-memory text buffer a host
// hands to the expansion engine.
//
// Document combines the encoded buffer, the selection set and the undo
// history into one value that satisfies editor.TextBuffer:
//
//	doc := engine.New(
//	    engine.WithContent("<div>"),
//	    engine.WithLineEnding(buffer.LineEndingCRLF),
//	    engine.WithClipboard(engine.SystemClipboard{}),
//	)
//	doc.SetSelection(0, 5)
//	doc.ReplaceSelection("<p>|</p>")
//
// Documents are driven from the host's command thread; they are not
// safe for concurrent mutation.
package engine
