package tags

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/engine"
	"github.com/Krazal/WebEdit/internal/expand"
	"github.com/Krazal/WebEdit/internal/suggest"
)

const testTags = `[Commands]
Bold=<b>|</b>
Rule=<hr />

[Tags]
br=<br />
hr=<hr />
ul=<ul>\n\t<li>|</li>\n</ul>
clip=[\c|]
`

type hint struct {
	pos  editor.ByteOffset
	text string
}

type recorder struct {
	hints   []hint
	notices []string
	lists   []suggest.List
	confirm bool
}

func (r *recorder) Hint(pos editor.ByteOffset, text string) {
	r.hints = append(r.hints, hint{pos, text})
}

func (r *recorder) Notice(text string) {
	r.notices = append(r.notices, text)
}

func (r *recorder) Confirm(string) bool {
	return r.confirm
}

func (r *recorder) ShowSuggestions(list suggest.List) {
	r.lists = append(r.lists, list)
}

func writeTags(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newResolver(t *testing.T) (*Resolver, *recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	writeTags(t, path, testTags)

	rec := &recorder{}
	r := NewResolver(
		config.NewStore(path),
		expand.New(expand.WithTagsPath(path)),
		WithNotifier(rec),
		WithPresenter(rec),
	)
	return r, rec, path
}

func TestResolveSelection(t *testing.T) {
	r, rec, _ := newResolver(t)
	doc := engine.New(engine.WithContent("x br y"))
	doc.SetSelection(2, 4)

	out := r.Resolve(doc, Mode{})

	assert.Equal(t, StatusExpanded, out.Status)
	assert.Equal(t, "br", out.Tag)
	assert.Equal(t, "x <br /> y", doc.Text())
	assert.Equal(t, editor.ByteOffset(8), doc.Caret())
	assert.Empty(t, rec.hints)
}

func TestResolveWordAtCaretWithIndent(t *testing.T) {
	r, _, _ := newResolver(t)
	doc := engine.New(engine.WithContent("  ul"))
	doc.SetCaret(4)

	out := r.Resolve(doc, Mode{})

	require.Equal(t, StatusExpanded, out.Status)
	assert.Equal(t, "  <ul>\n  \t<li></li>\n  </ul>", doc.Text())
	assert.Equal(t, editor.ByteOffset(len("  <ul>\n  \t<li>")), doc.Caret())
}

func TestResolveLastOccurrenceBeforeCaret(t *testing.T) {
	r, _, _ := newResolver(t)
	doc := engine.New(engine.WithContent("br br"))
	doc.SetCaret(5)

	r.Resolve(doc, Mode{})

	assert.Equal(t, "br <br />", doc.Text())
}

func TestResolveCodePageWordAtCaret(t *testing.T) {
	r, _, _ := newResolver(t)
	doc := engine.New(engine.WithContent("é br"))
	doc.SetCaret(doc.Len())

	out := r.Resolve(doc, Mode{})

	require.Equal(t, StatusExpanded, out.Status)
	assert.Equal(t, "é <br />", doc.Text())
}

func TestResolveRejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   editor.ByteOffset
		end     editor.ByteOffset
		kind    error
		hint    string
	}{
		{"empty line", "a\n\nb", 2, 2, ErrNoTagHere, HintEmptyLine},
		{"caret inside word", "hello", 2, 2, ErrNoTagHere, HintNoTagFound},
		{"caret after space", "br ", 3, 3, ErrNoTagHere, HintNoTagHere},
		{"whitespace selection", "a   b", 1, 4, ErrNoTagHere, HintNoTagHere},
		{"too long", strings.Repeat("x", 33), 0, 33, ErrTagTooLong, HintTagTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec, _ := newResolver(t)
			doc := engine.New(engine.WithContent(tt.content))
			doc.SetSelection(tt.start, tt.end)

			out := r.Resolve(doc, Mode{})

			assert.Equal(t, StatusRejected, out.Status)
			assert.ErrorIs(t, out.Err, tt.kind)
			assert.Equal(t, tt.content, doc.Text())
			require.Len(t, rec.hints, 1)
			assert.Equal(t, tt.hint, rec.hints[0].text)
			assert.False(t, doc.CanUndo())
		})
	}
}

func TestResolveWhitespaceClearsSelection(t *testing.T) {
	r, rec, _ := newResolver(t)
	doc := engine.New(engine.WithContent("a   b"))
	doc.SetSelection(1, 4)

	r.Resolve(doc, Mode{})

	sel := doc.Selection()
	assert.Equal(t, sel.Start, sel.End)
	assert.Equal(t, editor.ByteOffset(4), doc.Caret())
	assert.Equal(t, editor.ByteOffset(4), rec.hints[0].pos)
}

func TestResolveMissShowsSuggestions(t *testing.T) {
	r, rec, _ := newResolver(t)
	doc := engine.New(engine.WithContent("bt"))
	doc.SetCaret(2)

	out := r.Resolve(doc, Mode{})

	assert.Equal(t, StatusSuggested, out.Status)
	assert.Equal(t, "bt", doc.Text())
	require.Len(t, rec.lists, 1)
	assert.Equal(t, []string{"br", suggest.AddText("bt")}, rec.lists[0].Texts())
	assert.Equal(t, 0, rec.lists[0].Selected)
	assert.Equal(t, out.Suggestions, rec.lists[0])
}

func TestResolveMissWithoutCandidates(t *testing.T) {
	r, rec, _ := newResolver(t)
	doc := engine.New(engine.WithContent("zzzzzz"))
	doc.SetSelection(0, 6)

	r.Resolve(doc, Mode{})

	require.Len(t, rec.lists, 1)
	assert.Equal(t, []string{suggest.NotFoundText("zzzzzz")}, rec.lists[0].Texts())
}

func TestResolveRecommendKnownTag(t *testing.T) {
	r, rec, _ := newResolver(t)
	doc := engine.New(engine.WithContent("hr"))
	doc.SetCaret(2)

	out := r.Recommend(doc)

	assert.Equal(t, StatusSuggested, out.Status)
	assert.Equal(t, "hr", doc.Text())
	require.Len(t, rec.lists, 1)
	assert.True(t, rec.lists[0].Exact)
	assert.Contains(t, rec.lists[0].Texts(), suggest.FindText("hr"))
}

func TestRecommendRefusedInMultiSelection(t *testing.T) {
	r, rec, _ := newResolver(t)
	doc := engine.New(engine.WithContent("br br"))
	doc.SetSelections([]editor.Range{{Start: 0, End: 2}, {Start: 3, End: 5}}, 0)

	out := r.Recommend(doc)

	assert.ErrorIs(t, out.Err, ErrMultiSelection)
	require.Len(t, rec.hints, 1)
	assert.Equal(t, HintRecommendMultiMode, rec.hints[0].text)
	assert.Empty(t, rec.lists)
}

func TestResolveMultiModeIsSilent(t *testing.T) {
	r, rec, _ := newResolver(t)

	doc := engine.New(engine.WithContent("nope"))
	doc.SetSelection(0, 4)
	out := r.Resolve(doc, Mode{Multi: true})
	assert.Equal(t, StatusSkipped, out.Status)
	assert.Equal(t, "nope", doc.Text())

	doc = engine.New(engine.WithContent("a   b"))
	doc.SetSelection(1, 4)
	out = r.Resolve(doc, Mode{Multi: true})
	assert.Equal(t, StatusRejected, out.Status)

	assert.Empty(t, rec.hints)
	assert.Empty(t, rec.lists)
}

func TestResolveReloadsBeforeLookup(t *testing.T) {
	r, _, path := newResolver(t)

	doc := engine.New(engine.WithContent("br"))
	doc.SetSelection(0, 2)
	r.Resolve(doc, Mode{})
	assert.Equal(t, "<br />", doc.Text())

	writeTags(t, path, "[Tags]\nbr=<br>\n")
	doc = engine.New(engine.WithContent("br"))
	doc.SetSelection(0, 2)
	r.Resolve(doc, Mode{})
	assert.Equal(t, "<br>", doc.Text())
}

func TestResolveIsOneUndoStep(t *testing.T) {
	r, _, _ := newResolver(t)
	doc := engine.New(engine.WithContent("clip"), engine.WithClipboard(engine.StaticClipboard("C")))
	doc.SetCaret(4)

	out := r.Resolve(doc, Mode{})
	require.Equal(t, StatusExpanded, out.Status)
	assert.Equal(t, "[C]", doc.Text())

	require.NoError(t, doc.Undo())
	assert.Equal(t, "clip", doc.Text())
	assert.False(t, doc.CanUndo())
}

// panicBuffer fails inside Phase B and counts undo scope calls.
type panicBuffer struct {
	*engine.Document
	begins, ends int
}

func (b *panicBuffer) Paste() error {
	panic("clipboard exploded")
}

func (b *panicBuffer) BeginUndoAction() {
	b.begins++
	b.Document.BeginUndoAction()
}

func (b *panicBuffer) EndUndoAction() {
	b.ends++
	b.Document.EndUndoAction()
}

func TestResolveRecoversFromFailure(t *testing.T) {
	r, rec, _ := newResolver(t)
	buf := &panicBuffer{Document: engine.New(engine.WithContent("clip"))}
	buf.SetSelection(0, 4)

	var out Outcome
	require.NotPanics(t, func() {
		out = r.Resolve(buf, Mode{})
	})

	assert.Equal(t, StatusFailed, out.Status)
	var expErr *ExpansionError
	require.ErrorAs(t, out.Err, &expErr)
	assert.Equal(t, "clip", expErr.Tag)
	assert.Equal(t, 1, buf.begins)
	assert.Equal(t, 1, buf.ends)
	require.Len(t, rec.hints, 1)
	assert.Equal(t, "clipboard exploded", rec.hints[0].text)
	assert.Equal(t, editor.ByteOffset(4), rec.hints[0].pos)
}

// wordPanicBuffer fails while the word at the caret is looked up.
type wordPanicBuffer struct {
	*engine.Document
}

func (b *wordPanicBuffer) CurrentWord() string {
	panic("word lookup exploded")
}

func TestResolveRecoversFromQueryFailure(t *testing.T) {
	r, rec, _ := newResolver(t)
	buf := &wordPanicBuffer{Document: engine.New(engine.WithContent("x br"))}
	buf.SetCaret(4)

	var out Outcome
	require.NotPanics(t, func() {
		out = r.Resolve(buf, Mode{})
	})

	assert.Equal(t, StatusFailed, out.Status)
	var expErr *ExpansionError
	require.ErrorAs(t, out.Err, &expErr)
	assert.Equal(t, "", expErr.Tag)
	require.Len(t, rec.hints, 1)
	assert.Equal(t, "word lookup exploded", rec.hints[0].text)
	assert.Equal(t, editor.ByteOffset(4), rec.hints[0].pos)
	assert.Equal(t, "x br", buf.Text())
}

func TestWrap(t *testing.T) {
	doc := engine.New(engine.WithContent("say hello"))
	doc.SetSelection(4, 9)

	Wrap(doc, "<b>|</b>")

	assert.Equal(t, "say <b>hello</b>", doc.Text())
	assert.Equal(t, editor.Range{Start: 7, End: 12}, doc.Selection())
	assert.Equal(t, "hello", doc.SelectedText())
}

func TestWrapEveryPipe(t *testing.T) {
	doc := engine.New(engine.WithContent("x"))
	doc.SetSelection(0, 1)

	Wrap(doc, "<a href=\"|\">|</a>")

	assert.Equal(t, "<a href=\"x\">x</a>", doc.Text())
	assert.Equal(t, "x", doc.SelectedText())
}

func TestWrapWithoutPipe(t *testing.T) {
	doc := engine.New(engine.WithContent("abc"))
	doc.SetSelection(1, 2)

	Wrap(doc, "<hr />")

	assert.Equal(t, "a<hr />c", doc.Text())
	assert.Equal(t, editor.ByteOffset(7), doc.Caret())
}

func TestRunCommand(t *testing.T) {
	r, _, _ := newResolver(t)

	doc := engine.New(engine.WithContent("hi"))
	doc.SetSelection(0, 2)
	cmd, err := r.RunCommand(doc, "Bold")
	require.NoError(t, err)
	assert.Equal(t, 0, cmd.Index)
	assert.Equal(t, "<b>hi</b>", doc.Text())

	doc = engine.New(engine.WithContent("hi"))
	doc.SetSelection(0, 2)
	cmd, err = r.RunCommand(doc, "1")
	require.NoError(t, err)
	assert.Equal(t, "Rule", cmd.Name)
	assert.Equal(t, "<hr />", doc.Text())

	_, err = r.RunCommand(doc, "Missing")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRunCommandGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	writeTags(t, path, testTags)
	errStop := errors.New("stop")
	r := NewResolver(config.NewStore(path), expand.New(expand.WithTagsPath(path)),
		WithCommandGuard(func() error { return errStop }))

	doc := engine.New(engine.WithContent("hi"))
	doc.SetSelection(0, 2)
	_, err := r.RunCommand(doc, "Bold")

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, "hi", doc.Text())
}

func TestLastOccurrence(t *testing.T) {
	assert.Equal(t, 3, lastOccurrence("br br", "br", 5))
	assert.Equal(t, 0, lastOccurrence("br br", "br", 4))
	assert.Equal(t, -1, lastOccurrence("br", "br", 1))
	assert.Equal(t, 6, lastOccurrence("ééébr", "br", 5))
}
