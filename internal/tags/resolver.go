package tags

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/expand"
	"github.com/Krazal/WebEdit/internal/suggest"
)

// Status is the outcome kind of one resolution.
type Status uint8

const (
	// StatusExpanded means the tag was replaced by its expansion.
	StatusExpanded Status = iota
	// StatusSuggested means a suggestion list was shown instead.
	StatusSuggested
	// StatusSkipped means a multi-selection miss was skipped.
	StatusSkipped
	// StatusRejected means the query failed validation.
	StatusRejected
	// StatusFailed means the expansion failed unexpectedly.
	StatusFailed
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusExpanded:
		return "expanded"
	case StatusSuggested:
		return "suggested"
	case StatusSkipped:
		return "skipped"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Mode selects how a resolution behaves.
type Mode struct {
	// Multi marks one selection of a multi-selection batch. Hints are
	// suppressed, misses are skipped and the batch owns the undo scope.
	Multi bool

	// Recommend shows suggestions even for a known tag.
	Recommend bool
}

// Outcome describes one resolution.
type Outcome struct {
	Status Status
	Tag    string

	// Expansion is set for StatusExpanded.
	Expansion expand.Result

	// Suggestions is set for StatusSuggested.
	Suggestions suggest.List

	// Err is set for StatusRejected and StatusFailed.
	Err error
}

// Resolver replaces tags with their expansions.
type Resolver struct {
	store     *config.Store
	expander  *expand.Expander
	notifier  editor.Notifier
	presenter editor.Presenter
	guard     func() error
	logger    *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNotifier sets where hints are shown.
func WithNotifier(n editor.Notifier) Option {
	return func(r *Resolver) {
		r.notifier = n
	}
}

// WithPresenter sets where suggestion lists are shown.
func WithPresenter(p editor.Presenter) Option {
	return func(r *Resolver) {
		r.presenter = p
	}
}

// WithCommandGuard sets a check run before every [Commands] entry.
func WithCommandGuard(guard func() error) Option {
	return func(r *Resolver) {
		r.guard = guard
	}
}

// WithLogger sets the resolver logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver over store using expander.
func NewResolver(store *config.Store, expander *expand.Expander, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		expander: expander,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the tags store.
func (r *Resolver) Store() *config.Store {
	return r.store
}

// Resolve replaces the tag in the main selection, or at the caret when
// the selection is empty.
func (r *Resolver) Resolve(buf editor.TextBuffer, mode Mode) (out Outcome) {
	var query string
	pos := buf.Caret()
	defer func() {
		if p := recover(); p != nil {
			cause, ok := p.(error)
			if !ok {
				cause = fmt.Errorf("%v", p)
			}
			out = r.fail(pos, query, cause)
		}
	}()

	line := buf.LineFromOffset(pos)
	query, err := selectQuery(buf)
	if err != nil {
		r.reject(buf.Caret(), err, mode)
		return Outcome{Status: StatusRejected, Err: err}
	}

	if !mode.Multi {
		buf.BeginUndoAction()
		defer buf.EndUndoAction()
	}
	pos = buf.Selection().End

	if err := validateQuery(query); err != nil {
		if errors.Is(err, ErrNoTagHere) {
			pos = buf.Caret()
			buf.SetCaret(pos)
		}
		r.reject(pos, err, mode)
		return Outcome{Status: StatusRejected, Tag: query, Err: err}
	}

	if err := r.store.Reload(); err != nil {
		return r.fail(pos, query, err)
	}
	template := r.store.Get(config.SectionTags, query)
	miss := template == ""

	if !mode.Multi && (miss || mode.Recommend) {
		return r.suggest(query, miss)
	}
	if miss {
		r.logger.Debug("lookup miss skipped", zap.String("tag", query))
		return Outcome{Status: StatusSkipped, Tag: query}
	}

	indent := lineIndent(buf, line, buf.Selection().Start)
	res := r.expander.Expand(buf, template, indent)
	r.logger.Debug("tag expanded",
		zap.String("tag", query),
		zap.Bool("marked", res.Marked),
		zap.Bool("indented", res.Indented),
	)
	return Outcome{Status: StatusExpanded, Tag: query, Expansion: res}
}

// Recommend shows the suggestion list for the tag at the caret even when
// it is known. It is refused when more than one selection is active.
func (r *Resolver) Recommend(buf editor.TextBuffer) Outcome {
	if len(buf.Selections()) > 1 {
		r.hint(buf.Caret(), HintRecommendMultiMode)
		return Outcome{Status: StatusRejected, Err: ErrMultiSelection}
	}
	return r.Resolve(buf, Mode{Recommend: true})
}

func (r *Resolver) suggest(query string, miss bool) Outcome {
	list := suggest.Suggest(query, r.store.GetKeys(config.SectionTags))
	if miss {
		r.logger.Info("lookup miss", zap.String("tag", query), zap.Int("candidates", len(list.Entries)))
	}
	if r.presenter != nil {
		r.presenter.ShowSuggestions(list)
	}
	return Outcome{Status: StatusSuggested, Tag: query, Suggestions: list}
}

func (r *Resolver) reject(pos editor.ByteOffset, err error, mode Mode) {
	if mode.Multi {
		return
	}
	var rej *RejectError
	if errors.As(err, &rej) {
		r.hint(pos, rej.Hint)
	}
}

func (r *Resolver) fail(pos editor.ByteOffset, query string, cause error) Outcome {
	err := &ExpansionError{Tag: query, Err: cause}
	r.logger.Error("expansion failed", zap.String("tag", query), zap.Error(cause))
	r.hint(pos, cause.Error())
	return Outcome{Status: StatusFailed, Tag: query, Err: err}
}

func (r *Resolver) hint(pos editor.ByteOffset, text string) {
	if r.notifier != nil {
		r.notifier.Hint(pos, text)
	}
}
