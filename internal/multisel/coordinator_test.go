package multisel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/engine"
	"github.com/Krazal/WebEdit/internal/expand"
	"github.com/Krazal/WebEdit/internal/tags"
)

func replaceWith(text string) Command {
	return func(buf editor.TextBuffer, multi bool) {
		buf.ReplaceSelection(text)
	}
}

func TestRunSingleSelection(t *testing.T) {
	doc := engine.New(engine.WithContent("ab"))
	doc.SetSelection(0, 2)

	var gotMulti []bool
	New().Run(doc, func(buf editor.TextBuffer, multi bool) {
		gotMulti = append(gotMulti, multi)
		buf.ReplaceSelection("xyz")
	})

	assert.Equal(t, []bool{false}, gotMulti)
	assert.Equal(t, "xyz", doc.Text())
}

func TestRunPropagatesDelta(t *testing.T) {
	doc := engine.New(engine.WithContent("aa   bb   "))
	doc.SetSelections([]editor.Range{{Start: 0, End: 2}, {Start: 5, End: 7}}, 0)

	var order []editor.Range
	final := New().Run(doc, func(buf editor.TextBuffer, multi bool) {
		assert.True(t, multi)
		order = append(order, buf.Selection())
		buf.ReplaceSelection("XXXXX")
	})

	// Rightmost first, and the left range is untouched when it runs.
	assert.Equal(t, []editor.Range{{Start: 5, End: 7}, {Start: 0, End: 2}}, order)

	assert.Equal(t, "XXXXX   XXXXX   ", doc.Text())
	assert.Equal(t, []editor.Range{{Start: 5, End: 5}, {Start: 13, End: 13}}, final)
	assert.Equal(t, final, doc.Selections())
	assert.Equal(t, 0, doc.MainSelection())
	for i, r := range final {
		assert.LessOrEqual(t, r.End, doc.Len())
		if i > 0 {
			assert.LessOrEqual(t, final[i-1].End, r.Start)
		}
	}
}

func TestRunSortsSelections(t *testing.T) {
	doc := engine.New(engine.WithContent("a b c"))
	doc.SetSelections([]editor.Range{{Start: 4, End: 5}, {Start: 0, End: 1}, {Start: 2, End: 3}}, 0)

	var order []editor.ByteOffset
	New().Run(doc, func(buf editor.TextBuffer, multi bool) {
		order = append(order, buf.Selection().Start)
		buf.ReplaceSelection("[" + buf.SelectedText() + "]")
	})

	assert.Equal(t, []editor.ByteOffset{4, 2, 0}, order)
	assert.Equal(t, "[a] [b] [c]", doc.Text())
	assert.Equal(t, []editor.Range{{Start: 3, End: 3}, {Start: 7, End: 7}, {Start: 11, End: 11}}, doc.Selections())
}

func TestRunSkippedSelectionKeepsBounds(t *testing.T) {
	doc := engine.New(engine.WithContent("ab cd ef"))
	doc.SetSelections([]editor.Range{{Start: 0, End: 2}, {Start: 3, End: 5}, {Start: 6, End: 8}}, 0)

	New().Run(doc, func(buf editor.TextBuffer, multi bool) {
		if buf.SelectedText() == "cd" {
			return
		}
		buf.ReplaceSelection("XYZW")
	})

	assert.Equal(t, "XYZW cd XYZW", doc.Text())
	assert.Equal(t, []editor.Range{{Start: 4, End: 4}, {Start: 5, End: 7}, {Start: 12, End: 12}}, doc.Selections())
}

func TestRunIsOneUndoStep(t *testing.T) {
	doc := engine.New(engine.WithContent("a b"))
	doc.SetSelections([]editor.Range{{Start: 0, End: 1}, {Start: 2, End: 3}}, 0)

	New().Run(doc, replaceWith("long"))
	require.Equal(t, "long long", doc.Text())

	require.NoError(t, doc.Undo())
	assert.Equal(t, "a b", doc.Text())
	assert.False(t, doc.CanUndo())
}

func TestRunRestoresSelectionsOnPanic(t *testing.T) {
	doc := engine.New(engine.WithContent("aa bb"))
	doc.SetSelections([]editor.Range{{Start: 0, End: 2}, {Start: 3, End: 5}}, 0)

	assert.Panics(t, func() {
		New().Run(doc, func(buf editor.TextBuffer, multi bool) {
			if buf.Selection().Start == 0 {
				panic("boom")
			}
			buf.ReplaceSelection("B")
		})
	})

	assert.Equal(t, "aa B", doc.Text())
	assert.Equal(t, []editor.Range{{Start: 0, End: 2}, {Start: 4, End: 4}}, doc.Selections())
}

func TestRunWithResolver(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("[Tags]\nbr=<br />\np=<p>|</p>\n"), 0o644))
	r := tags.NewResolver(config.NewStore(path), expand.New(expand.WithTagsPath(path)))

	doc := engine.New(engine.WithContent("p br nope p"))
	doc.SetSelections([]editor.Range{{Start: 1, End: 1}, {Start: 4, End: 4}, {Start: 9, End: 9}, {Start: 11, End: 11}}, 0)

	New().Run(doc, func(buf editor.TextBuffer, multi bool) {
		r.Resolve(buf, tags.Mode{Multi: multi})
	})

	assert.Equal(t, "<p></p> <br /> nope <p></p>", doc.Text())
	assert.Equal(t, []editor.Range{
		{Start: 3, End: 3},
		{Start: 14, End: 14},
		{Start: 15, End: 19},
		{Start: 23, End: 23},
	}, doc.Selections())
}
