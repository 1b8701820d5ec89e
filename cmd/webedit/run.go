package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Krazal/WebEdit/internal/app"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/engine"
	"github.com/Krazal/WebEdit/internal/engine/buffer"
)

// session is one command run over one document.
type session struct {
	app  *app.Application
	host *host
	doc  *engine.Document
	path string
	rev  buffer.RevisionID
}

// openSession loads path and selects ranges in it. Suggestion lists go
// to listOut.
func openSession(cmd *cobra.Command, path string, ranges []editor.Range, listOut io.Writer) (*session, error) {
	h := newHost(listOut, cmd.ErrOrStderr(), cmd.InOrStdin(), flagYes)
	a, err := openApp(cmd, h, false)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(path, h.opts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	for _, r := range ranges {
		if r.End > doc.Len() {
			_ = a.Close()
			return nil, fmt.Errorf("selection %d:%d is past the end of %s (%d bytes)", r.Start, r.End, path, doc.Len())
		}
	}
	if len(ranges) > 0 {
		doc.SetSelections(ranges, 0)
	}
	h.doc = doc
	return &session{app: a, host: h, doc: doc, path: path, rev: doc.Buffer().RevisionID()}, nil
}

func (s *session) dispatch(action handler.Action) handler.Result {
	res := s.app.Dispatch(action, s.doc)
	if res.Status == handler.StatusNoOp && res.Message != "" {
		hintColor.Fprintln(s.host.err, res.Message)
	}
	return res
}

// output selects what finish does with the document.
type output int

const (
	outputPrint output = iota // print the document to stdout
	outputWrite               // write the document back to its file
	outputNone                // leave the document alone
)

func outputFor(write bool) output {
	if write {
		return outputWrite
	}
	return outputPrint
}

// finish saves files the engine opened, then emits the document.
func (s *session) finish(out io.Writer, mode output) error {
	defer s.app.Close()

	saved, err := s.host.saveOpened()
	if err != nil {
		return err
	}
	for _, p := range saved {
		if err := s.app.OnFileSaved(p); err != nil {
			return err
		}
		noticeColor.Fprintf(s.host.err, "saved %s\n", p)
	}

	switch mode {
	case outputWrite:
		if s.doc.Buffer().RevisionID() == s.rev {
			noticeColor.Fprintf(s.host.err, "%s unchanged\n", s.path)
			return nil
		}
		return os.WriteFile(s.path, s.doc.Bytes(), 0o644)
	case outputPrint:
		_, err = io.WriteString(out, s.doc.Text())
		return err
	default:
		return nil
	}
}

// close releases the session without output.
func (s *session) close() error {
	return s.app.Close()
}
