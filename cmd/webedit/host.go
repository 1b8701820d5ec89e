package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/engine"
	"github.com/Krazal/WebEdit/internal/suggest"
)

var (
	hintColor     = color.New(color.FgYellow)
	noticeColor   = color.New(color.FgCyan)
	selectedColor = color.New(color.FgGreen, color.Bold)
	specialColor  = color.New(color.FgMagenta)
)

// host is the terminal side of the editor contract. Hints and notices go
// to stderr, suggestion lists to stdout, and opened files are kept in
// memory until saved.
type host struct {
	out  io.Writer
	err  io.Writer
	in   *bufio.Reader
	yes  bool
	opts []engine.Option
	docs map[string]*engine.Document

	// doc is the document the command runs on. Hints are placed in it.
	doc *engine.Document
}

func newHost(out, errOut io.Writer, in io.Reader, yes bool) *host {
	return &host{
		out:  out,
		err:  errOut,
		in:   bufio.NewReader(in),
		yes:  yes,
		docs: make(map[string]*engine.Document),
	}
}

// Hint prints text at pos as FILE:LINE:COLUMN, both counted from one.
func (h *host) Hint(pos editor.ByteOffset, text string) {
	if h.doc == nil {
		hintColor.Fprintf(h.err, "hint @%d: %s\n", pos, text)
		return
	}
	p := h.doc.Buffer().OffsetToPoint(pos)
	hintColor.Fprintf(h.err, "%s:%d:%d: %s\n", h.doc.FilePath(), p.Line+1, p.Column+1, text)
}

func (h *host) Notice(text string) {
	noticeColor.Fprintln(h.err, text)
}

// Confirm asks on the terminal unless --yes was given. Anything but y or
// yes is a no.
func (h *host) Confirm(text string) bool {
	if h.yes {
		return true
	}
	fmt.Fprintf(h.err, "%s [y/N] ", text)
	line, _ := h.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (h *host) ShowSuggestions(list suggest.List) {
	for i, e := range list.Entries {
		mark := "  "
		c := color.New(color.Reset)
		if i == list.Selected {
			mark, c = "> ", selectedColor
		}
		if e.Special {
			c = specialColor
		}
		c.Fprintf(h.out, "%s%s\n", mark, e.Text)
	}
}

// OpenFile loads path for editing. The engine only opens the tags file,
// which is always UTF-8. A second open returns the same document.
func (h *host) OpenFile(path string) (editor.TextBuffer, error) {
	if doc, ok := h.docs[path]; ok {
		return doc, nil
	}
	doc, err := loadDocument(path, append(h.opts, engine.WithEncoding(nil))...)
	if err != nil {
		return nil, err
	}
	h.docs[path] = doc
	return doc, nil
}

// saveOpened writes every file opened through OpenFile and returns their
// paths.
func (h *host) saveOpened() ([]string, error) {
	paths := make([]string, 0, len(h.docs))
	for path := range h.docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := os.WriteFile(path, h.docs[path].Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("saving %s: %w", path, err)
		}
	}
	return paths, nil
}

// loadDocument reads path into a document using the --encoding and
// --eol flags. \c reads the system clipboard.
func loadDocument(path string, opts ...engine.Option) (*engine.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	enc, err := documentEncoding(flagEncoding)
	if err != nil {
		return nil, err
	}
	eol, err := lineEnding(flagEOL, data)
	if err != nil {
		return nil, err
	}
	base := []engine.Option{
		engine.WithBytes(data),
		engine.WithPath(path),
		engine.WithEncoding(enc),
		engine.WithLineEnding(eol),
		engine.WithClipboard(engine.SystemClipboard{}),
	}
	return engine.New(append(base, opts...)...), nil
}
