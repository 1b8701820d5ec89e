package multisel

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/editor"
)

// Command is run once per selection. multi reports whether it runs as
// part of a batch, in which case the batch owns the undo scope.
type Command func(buf editor.TextBuffer, multi bool)

// Coordinator runs commands across multiple selections.
type Coordinator struct {
	logger *zap.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the coordinator logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run invokes cmd directly when at most one selection is active.
// Otherwise it invokes cmd once per selection inside one undo action and
// returns the rebuilt selection bounds in ascending order.
func (c *Coordinator) Run(buf editor.TextBuffer, cmd Command) []editor.Range {
	ranges := buf.Selections()
	if len(ranges) <= 1 {
		cmd(buf, false)
		return buf.Selections()
	}

	sorted := append([]editor.Range(nil), ranges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	// final[i] starts as the original range and is replaced by the
	// command's resulting bounds once range i has been processed.
	final := append([]editor.Range(nil), sorted...)

	buf.BeginUndoAction()
	defer buf.EndUndoAction()
	defer func() {
		buf.SetSelections(final, 0)
	}()

	for i := len(sorted) - 1; i >= 0; i-- {
		buf.SetSelection(sorted[i].Start, sorted[i].End)
		before := buf.Len()
		cmd(buf, true)
		delta := buf.Len() - before

		for j := i + 1; j < len(final); j++ {
			final[j] = shift(final[j], delta)
		}
		final[i] = buf.Selection()
	}

	c.logger.Debug("multi-selection batch", zap.Int("count", len(sorted)))
	return final
}

func shift(r editor.Range, delta editor.ByteOffset) editor.Range {
	return editor.Range{Start: r.Start + delta, End: r.End + delta}
}
