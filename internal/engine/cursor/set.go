package cursor

import "sort"

// SelectionSet holds the active selections and the main selection index.
type SelectionSet struct {
	selections []Selection
	main       int
}

// NewSelectionSet creates a set with a single selection.
func NewSelectionSet(initial Selection) *SelectionSet {
	return &SelectionSet{selections: []Selection{initial}}
}

// NewSelectionSetAt creates a set with a single caret at the given offset.
func NewSelectionSetAt(offset ByteOffset) *SelectionSet {
	return NewSelectionSet(NewCursorSelection(offset))
}

// Main returns the main selection.
func (s *SelectionSet) Main() Selection {
	return s.selections[s.main]
}

// MainIndex returns the index of the main selection.
func (s *SelectionSet) MainIndex() int {
	return s.main
}

// All returns a copy of all selections in host order.
func (s *SelectionSet) All() []Selection {
	out := make([]Selection, len(s.selections))
	copy(out, s.selections)
	return out
}

// Count returns the number of selections.
func (s *SelectionSet) Count() int {
	return len(s.selections)
}

// IsMulti returns true if there are multiple selections.
func (s *SelectionSet) IsMulti() bool {
	return len(s.selections) > 1
}

// Set replaces all selections with a single selection.
func (s *SelectionSet) Set(sel Selection) {
	s.selections = []Selection{sel}
	s.main = 0
}

// SetMain replaces the main selection, keeping the others.
func (s *SelectionSet) SetMain(sel Selection) {
	s.selections[s.main] = sel
}

// SetAll replaces all selections. An out of range main index selects 0.
// An empty slice leaves a caret at offset 0.
func (s *SelectionSet) SetAll(sels []Selection, main int) {
	if len(sels) == 0 {
		s.Set(NewCursorSelection(0))
		return
	}
	s.selections = make([]Selection, len(sels))
	copy(s.selections, sels)
	if main < 0 || main >= len(sels) {
		main = 0
	}
	s.main = main
}

// Sorted returns the selections ordered ascending by start offset.
// Selections with equal starts keep their host order.
func (s *SelectionSet) Sorted() []Selection {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start() < out[j].Start()
	})
	return out
}

// Clamp limits every selection to [0, maxOffset].
func (s *SelectionSet) Clamp(maxOffset ByteOffset) {
	for i, sel := range s.selections {
		s.selections[i] = sel.Clamp(maxOffset)
	}
}

// Clone returns a deep copy of the set.
func (s *SelectionSet) Clone() *SelectionSet {
	return &SelectionSet{selections: s.All(), main: s.main}
}
