package expand

import (
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/editor"
)

// Expander writes expanded templates into a text buffer.
type Expander struct {
	configDir  string
	tagsPath   string
	dateFormat string
	now        func() time.Time
	username   func() string
	logger     *zap.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithConfigDir sets the directory relative \f file names resolve against.
func WithConfigDir(dir string) Option {
	return func(e *Expander) {
		e.configDir = dir
	}
}

// WithTagsPath sets the tags file path. A \f without a section never
// pastes this file.
func WithTagsPath(path string) Option {
	return func(e *Expander) {
		e.tagsPath = path
	}
}

// WithDefaultDateFormat sets the strftime pattern used when a \d format
// is missing or malformed.
func WithDefaultDateFormat(format string) Option {
	return func(e *Expander) {
		if ValidDateFormat(format) {
			e.dateFormat = format
		}
	}
}

// WithClock sets the time source for \d.
func WithClock(now func() time.Time) Option {
	return func(e *Expander) {
		if now != nil {
			e.now = now
		}
	}
}

// WithUsername sets the source for \u.
func WithUsername(fn func() string) Option {
	return func(e *Expander) {
		if fn != nil {
			e.username = fn
		}
	}
}

// WithLogger sets the expander logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Expander) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Expander.
func New(opts ...Option) *Expander {
	e := &Expander{
		dateFormat: config.DefaultDateFormat,
		now:        time.Now,
		username:   currentUsername,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.configDir == "" && e.tagsPath != "" {
		e.configDir = filepath.Dir(e.tagsPath)
	}
	return e
}

// ConfigDir returns the include base directory.
func (e *Expander) ConfigDir() string {
	return e.configDir
}

// Result describes a completed expansion.
type Result struct {
	// Start and End bound the inserted text after all substitutions.
	Start, End editor.ByteOffset

	// Caret is where the caret was left.
	Caret editor.ByteOffset

	// Marked reports whether the template carried an insertion marker.
	Marked bool

	// Indented reports whether any \i was replaced.
	Indented bool
}

// Expand replaces the buffer's main selection with template and runs both
// expansion phases over the inserted text. indent is the leading
// whitespace re-inserted after line breaks.
func (e *Expander) Expand(buf editor.TextBuffer, template, indent string) Result {
	start := buf.Selection().Start
	eol := buf.EOL()

	// Both halves go through Phase A on their own, so the marker is a
	// byte position and never text that a substitution could produce.
	head, tail, marked := SplitAtMarker(template)
	text := Unescape(head, indent, eol)
	mark := editor.ByteOffset(-1)
	if marked {
		mark = start + editor.ByteOffset(buf.ByteCount(text))
		text += Unescape(tail, indent, eol)
	}
	buf.ReplaceSelection(text)

	run := &phaseB{
		e:      e,
		buf:    buf,
		indent: indent,
		eol:    eol,
		start:  start,
		end:    start + editor.ByteOffset(buf.ByteCount(text)),
		mark:   mark,
		tabPos: -1,
	}
	run.process()

	caret := e.placeCaret(buf, run, marked)
	return Result{
		Start:    start,
		End:      run.end,
		Caret:    caret,
		Marked:   marked,
		Indented: run.tabPos >= 0,
	}
}

// placeCaret positions the caret after Phase B and returns it.
func (e *Expander) placeCaret(buf editor.TextBuffer, run *phaseB, marked bool) editor.ByteOffset {
	pos := run.end
	switch {
	case marked:
		pos = min(max(run.mark, run.start), run.end)
	case run.tabPos >= 0:
		pos = run.tabPos
	}
	buf.SetCaret(pos)
	return pos
}

// sequence is one Phase B escape and the buffer operation replacing it.
// apply runs with exactly the sequence text selected.
type sequence struct {
	text  string
	apply func(p *phaseB, rest string)
}

// phaseBOrder is the fixed Phase B processing order. Tab-indent is last
// because it decides the caret when no marker exists.
var phaseBOrder = []sequence{
	{`\f`, (*phaseB).pasteFile},
	{`\c`, (*phaseB).pasteClipboard},
	{`\d`, (*phaseB).insertDate},
	{`\u`, (*phaseB).insertUsername},
	{`\x`, (*phaseB).insertFileName},
	{`\p`, (*phaseB).insertFilePath},
	{`\i`, (*phaseB).tab},
}

// phaseB tracks one scan over the inserted region.
type phaseB struct {
	e      *Expander
	buf    editor.TextBuffer
	indent string
	eol    string

	start, end editor.ByteOffset
	mark       editor.ByteOffset // insertion marker, or -1
	tabPos     editor.ByteOffset // caret after the first \i, or -1
}

func (p *phaseB) process() {
	for _, seq := range phaseBOrder {
		p.scan(seq)
	}
}

// scan replaces every occurrence of seq in the region left to right.
func (p *phaseB) scan(seq sequence) {
	seqLen := editor.ByteOffset(p.buf.ByteCount(seq.text))
	pos := p.start
	for pos < p.end {
		region := p.buf.TextRange(pos, p.end)
		i := strings.Index(region, seq.text)
		if i < 0 {
			return
		}
		at := pos + editor.ByteOffset(p.buf.ByteCount(region[:i]))
		rest := region[i+len(seq.text):]

		before := p.buf.Len()
		p.buf.SetSelection(at, at+seqLen)
		seq.apply(p, rest)
		delta := p.buf.Len() - before
		p.end += delta

		// Resume after the replacement, or after the sequence on a no-op.
		pos = p.buf.Selection().End
		p.moveMark(at, pos-delta, pos, delta)
	}
}

// moveMark keeps the marker on the same text after [at, oldEnd) was
// replaced by [at, newEnd). A marker at the replacement start stays put;
// one inside the replaced argument lands after the new text.
func (p *phaseB) moveMark(at, oldEnd, newEnd, delta editor.ByteOffset) {
	switch {
	case p.mark <= at:
	case p.mark >= oldEnd:
		p.mark += delta
	default:
		p.mark = newEnd
	}
}

// replaceWith extends the selected sequence by extra bytes and replaces it.
func (p *phaseB) replaceWith(extra int, text string) {
	sel := p.buf.Selection()
	if extra > 0 {
		p.buf.SetSelection(sel.Start, sel.End+editor.ByteOffset(extra))
	}
	p.buf.ReplaceSelection(text)
}

func (p *phaseB) pasteFile(rest string) {
	ref, n, ok := parseIncludeArg(rest)
	if !ok {
		return
	}
	text, ok := p.e.includeText(ref, p.indent, p.eol)
	if !ok {
		return
	}
	p.replaceWith(p.buf.ByteCount(rest[:n]), text)
}

func (p *phaseB) pasteClipboard(string) {
	if err := p.buf.Paste(); err != nil {
		p.e.logger.Warn("clipboard paste failed", zap.Error(err))
	}
}

func (p *phaseB) insertDate(rest string) {
	format, n, ok := parseDateArg(rest)
	if !ok {
		format = ""
	}
	text, fallback := FormatDate(format, p.e.dateFormat, p.e.now())
	if fallback && ok {
		p.e.logger.Info("date format fallback", zap.String("format", format))
	}
	p.replaceWith(p.buf.ByteCount(rest[:n]), text)
}

func (p *phaseB) insertUsername(string) {
	p.replaceWith(0, p.e.username())
}

func (p *phaseB) insertFileName(string) {
	name := ""
	if path := p.buf.FilePath(); path != "" {
		name = filepath.Base(path)
	}
	p.replaceWith(0, name)
}

func (p *phaseB) insertFilePath(string) {
	p.replaceWith(0, p.buf.FilePath())
}

func (p *phaseB) tab(string) {
	p.buf.Tab()
	if p.tabPos < 0 {
		p.tabPos = p.buf.Selection().End
	}
}

// currentUsername returns the OS user name without a domain prefix.
func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	name := u.Username
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
