package buffer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnsupportedEncoding indicates an encoding the buffer cannot host.
// Only ASCII-compatible encodings are supported, since line breaks and
// escape sequences are located by their single-byte values.
var ErrUnsupportedEncoding = errors.New("unsupported document encoding")

// LookupEncoding resolves an encoding by its WHATWG label
// (e.g. "utf-8", "windows-1252", "iso-8859-1").
// A nil encoding means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}

	switch canonical, _ := htmlindex.Name(enc); canonical {
	case "utf-16be", "utf-16le", "replacement":
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// codec converts between Go strings and document bytes.
type codec struct {
	enc encoding.Encoding
}

func (c codec) isUTF8() bool {
	return c.enc == nil
}

// encode converts s to document bytes. Characters the encoding cannot
// represent are replaced by the encoding's substitute byte.
func (c codec) encode(s string) []byte {
	if c.isUTF8() {
		return []byte(s)
	}
	out, err := encoding.ReplaceUnsupported(c.enc.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// decode converts document bytes to a Go string.
func (c codec) decode(b []byte) string {
	if c.isUTF8() {
		return string(b)
	}
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// byteCount returns the encoded length of s.
func (c codec) byteCount(s string) int {
	if c.isUTF8() {
		return len(s)
	}
	return len(c.encode(s))
}

// charCount returns the number of characters encoded in b.
func (c codec) charCount(b []byte) int {
	return utf8.RuneCountInString(c.decode(b))
}
