package tags

import (
	"strings"
	"unicode/utf8"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/editor"
)

// MaxTagLen is the longest query, in characters, that can name a tag.
const MaxTagLen = config.MaxKeyLen

// selectQuery returns the query text. With an empty selection it selects
// the current word on the caret line first.
func selectQuery(buf editor.TextBuffer) (string, error) {
	if text := buf.SelectedText(); text != "" {
		return text, nil
	}

	caret := buf.Caret()
	line := buf.LineFromOffset(caret)
	lineStart := buf.LineStart(line)
	lineText := buf.TextRange(lineStart, buf.LineEnd(line))
	if lineText == "" {
		return "", &RejectError{Kind: ErrNoTagHere, Hint: HintEmptyLine}
	}

	word := buf.CurrentWord()
	if word == "" {
		// Validation reports the empty query.
		return "", nil
	}

	caretChar := utf8.RuneCountInString(buf.TextRange(lineStart, caret))
	i := lastOccurrence(lineText, word, caretChar)
	if i < 0 {
		return "", &RejectError{Kind: ErrNoTagHere, Hint: HintNoTagFound}
	}

	start := lineStart + editor.ByteOffset(buf.ByteCount(lineText[:i]))
	buf.SetSelection(start, start+editor.ByteOffset(buf.ByteCount(word)))
	return buf.SelectedText(), nil
}

// lastOccurrence returns the byte index in text of the last occurrence of
// word that ends at or before the character offset limit, or -1.
func lastOccurrence(text, word string, limit int) int {
	found := -1
	wordLen := utf8.RuneCountInString(word)
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], word)
		if i < 0 {
			break
		}
		i += from
		if utf8.RuneCountInString(text[:i])+wordLen > limit {
			break
		}
		found = i
		_, size := utf8.DecodeRuneInString(text[i:])
		from = i + size
	}
	return found
}

// validateQuery checks a query before lookup.
func validateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return &RejectError{Kind: ErrNoTagHere, Hint: HintNoTagHere}
	}
	if utf8.RuneCountInString(query) > MaxTagLen {
		return &RejectError{Kind: ErrTagTooLong, Hint: HintTagTooLong}
	}
	return nil
}

// lineIndent returns the leading whitespace of line, cut off at limit.
func lineIndent(buf editor.TextBuffer, line int, limit editor.ByteOffset) string {
	start := buf.LineStart(line)
	text := buf.TextRange(start, buf.LineEnd(line))
	ws := text[:len(text)-len(strings.TrimLeft(text, " \t"))]

	end := start + editor.ByteOffset(buf.ByteCount(ws))
	if limit < end {
		end = limit
	}
	if end <= start {
		return ""
	}
	return buf.TextRange(start, end)
}
