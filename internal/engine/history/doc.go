// Package history provides undo/redo for the document.
//
// Every buffer mutation is recorded as an EditCommand that already
// happened; undo replays it backwards. Commands recorded between
// BeginGroup and the matching EndGroup collapse into one CompoundCommand,
// which is what a host calls an undo transaction: the whole tag expansion
// (or a whole multi-selection batch) undoes as a single step.
//
// Groups nest by depth. Only the outermost EndGroup commits, so a
// single-selection expansion that opens its own group can run inside a
// multi-selection batch without splitting the batch:
//
//	defer h.GroupScope("Replace Tag").End()
//	// ... edits ...
package history
