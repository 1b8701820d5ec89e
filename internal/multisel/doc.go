// Package multisel fans a single-selection command out across every
// active selection.
//
// Selections are processed from the rightmost to the leftmost so an edit
// never moves a range that is still waiting. The length change of each
// edit shifts the recorded bounds of the ranges already processed to its
// right. When the batch ends the selection set is rebuilt from those
// bounds, with the leftmost range as the main selection. The whole batch
// is one undo step.
package multisel
