package buffer

import (
	"strings"

	"golang.org/x/text/encoding"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithLF configures the buffer to use Unix line endings (\n).
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF configures the buffer to use Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithCR configures the buffer to use old Mac line endings (\r).
func WithCR() Option {
	return WithLineEnding(LineEndingCR)
}

// WithEncoding sets the document encoding. A nil encoding means UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(b *Buffer) {
		b.codec = codec{enc: enc}
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n' {
			crlfCount++
			i += 2
		} else if text[i] == '\r' {
			crCount++
			i++
		} else if text[i] == '\n' {
			lfCount++
			i++
		} else {
			i++
		}
	}

	if crlfCount >= lfCount && crlfCount >= crCount && crlfCount > 0 {
		return LineEndingCRLF
	}
	if crCount >= lfCount && crCount >= crlfCount && crCount > 0 {
		return LineEndingCR
	}
	return LineEndingLF
}

// ParseLineEnding parses "lf", "crlf" or "cr" (case-insensitive).
func ParseLineEnding(s string) (LineEnding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lf", "unix":
		return LineEndingLF, true
	case "crlf", "windows":
		return LineEndingCRLF, true
	case "cr", "mac":
		return LineEndingCR, true
	}
	return LineEndingLF, false
}
