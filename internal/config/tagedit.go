package config

import (
	"fmt"
	"strings"
)

// TagEdit describes how the add-or-find flow changes an open tags file.
// Offsets are byte indexes into the text passed to PlanTagEdit.
type TagEdit struct {
	// Exists reports whether the tag already has a line in [Tags].
	Exists bool

	// Offset is where Insert goes. For an existing tag it equals Caret.
	Offset int

	// Insert is the text to insert for a new tag. Empty when Exists.
	Insert string

	// Caret is where the caret lands, right after the tag's '='.
	// For a new tag it is measured after the insertion.
	Caret int
}

// PlanTagEdit locates name in the [Tags] section of text. A new entry is
// placed after the last non-comment line of the section, or right after
// the header when the section is empty. A missing section is appended.
func PlanTagEdit(text, eol, name string) (TagEdit, error) {
	if !ValidTagName(name) {
		return TagEdit{}, fmt.Errorf("%w: %q", ErrInvalidTagName, name)
	}
	entry := eol + name + "="

	lines := splitLines(text)
	header := -1
	for i, ln := range lines {
		line := text[ln.start:ln.end]
		if !strings.HasPrefix(line, "[") {
			continue
		}
		if sec, ok := sectionName(line); ok && sec == strings.ToLower(SectionTags) {
			header = i
			break
		}
	}

	if header < 0 {
		insert := "[" + SectionTags + "]" + entry
		if text != "" && !endsWithBreak(text) {
			insert = eol + insert
		}
		return TagEdit{
			Offset: len(text),
			Insert: insert,
			Caret:  len(text) + len(insert),
		}, nil
	}

	anchor := lines[header].end
	for _, ln := range lines[header+1:] {
		line := text[ln.start:ln.end]
		if strings.HasPrefix(line, "[") {
			break
		}
		if m := keyLine.FindStringSubmatch(line); m != nil && m[1] == name {
			caret := ln.start + len(name) + 1
			return TagEdit{Exists: true, Offset: caret, Caret: caret}, nil
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || commentLine.MatchString(trimmed) {
			continue
		}
		anchor = ln.end
	}

	return TagEdit{
		Offset: anchor,
		Insert: entry,
		Caret:  anchor + len(entry),
	}, nil
}

type lineSpan struct {
	start, end int // end excludes the line break
}

// splitLines returns the spans of every line in text. LF, CRLF and a bare
// CR each end a line.
func splitLines(text string) []lineSpan {
	var spans []lineSpan
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			spans = append(spans, lineSpan{start, i})
			start = i + 1
		case '\r':
			spans = append(spans, lineSpan{start, i})
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(spans, lineSpan{start, len(text)})
}

func endsWithBreak(text string) bool {
	return strings.HasSuffix(text, "\n") || strings.HasSuffix(text, "\r")
}
