// Package tag provides handlers for tag replacement, recommendation and
// the suggestion list follow-ups.
package tag

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/dispatcher/execctx"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/multisel"
	"github.com/Krazal/WebEdit/internal/suggest"
	"github.com/Krazal/WebEdit/internal/tags"
)

// Action names for tag operations.
const (
	ActionReplace   = "tags.replace"
	ActionRecommend = "tags.recommend"

	// Suggestion list notifications from the host.
	ActionSuggestionSelected  = "tags.suggestion.selected"
	ActionSuggestionCompleted = "tags.suggestion.completed"
	ActionSuggestionCancelled = "tags.suggestion.cancelled"
)

// ArgText is the chosen entry text of ActionSuggestionSelected.
const ArgText = "text"

// DataSuggestions holds the suggest.List of a Pending result.
const DataSuggestions = "suggestions"

// DataOutcome holds the tags.Outcome of a single-selection result.
const DataOutcome = "outcome"

// TagEditor opens the tags file at a tag's entry.
type TagEditor interface {
	AddOrFind(tag string) (bool, error)
}

// Handler handles the tags namespace.
type Handler struct {
	*handler.BaseNamespaceHandler

	resolver    *tags.Resolver
	coordinator *multisel.Coordinator
	editor      TagEditor
	logger      *zap.Logger

	mu      sync.Mutex
	pending *suggest.List
}

// Option configures a Handler.
type Option func(*Handler)

// WithTagEditor sets the target of the distinguished suggestion entry.
func WithTagEditor(e TagEditor) Option {
	return func(h *Handler) {
		h.editor = e
	}
}

// WithLogger sets the handler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates the tags namespace handler.
func New(resolver *tags.Resolver, coordinator *multisel.Coordinator, opts ...Option) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("tags"),
		resolver:             resolver,
		coordinator:          coordinator,
		logger:               zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.Register(ActionReplace, h.replace)
	h.Register(ActionRecommend, h.recommend)
	h.Register(ActionSuggestionSelected, h.selected)
	h.Register(ActionSuggestionCompleted, h.completed)
	h.Register(ActionSuggestionCancelled, h.cancelled)
	return h
}

// Pending returns the suggestion list awaiting a user choice.
func (h *Handler) Pending() (suggest.List, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return suggest.List{}, false
	}
	return *h.pending, true
}

func (h *Handler) replace(_ handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	buf, err := ctx.RequireBuffer()
	if err != nil {
		return handler.Error(err)
	}
	return h.runReplace(buf)
}

func (h *Handler) runReplace(buf editor.TextBuffer) handler.Result {
	h.forget()

	var (
		last    tags.Outcome
		batch   int
		skipped int
	)
	h.coordinator.Run(buf, func(b editor.TextBuffer, multi bool) {
		last = h.resolver.Resolve(b, tags.Mode{Multi: multi})
		batch++
		if last.Status == tags.StatusSkipped {
			skipped++
		}
	})
	if batch > 1 {
		h.logger.Debug("multi-selection replace", zap.Int("selections", batch), zap.Int("skipped", skipped))
		return handler.SuccessWithMessage("multi-selection replace").
			WithData("selections", batch).
			WithData("skipped", skipped)
	}
	return h.result(last)
}

func (h *Handler) recommend(_ handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	buf, err := ctx.RequireBuffer()
	if err != nil {
		return handler.Error(err)
	}
	h.forget()
	return h.result(h.resolver.Recommend(buf))
}

// result maps a single resolution to a dispatch result and remembers a
// shown suggestion list.
func (h *Handler) result(out tags.Outcome) handler.Result {
	switch out.Status {
	case tags.StatusExpanded:
		return handler.Success().WithData(DataOutcome, out)
	case tags.StatusSuggested:
		h.mu.Lock()
		list := out.Suggestions
		h.pending = &list
		h.mu.Unlock()
		return handler.Pending().
			WithData(DataSuggestions, out.Suggestions).
			WithData(DataOutcome, out)
	case tags.StatusRejected:
		return handler.NoOpWithMessage(out.Err.Error()).WithData(DataOutcome, out)
	case tags.StatusFailed:
		return handler.Error(out.Err).WithData(DataOutcome, out)
	default:
		return handler.NoOp().WithData(DataOutcome, out)
	}
}

func (h *Handler) selected(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	list, ok := h.Pending()
	if !ok {
		return handler.NoOp()
	}
	text := action.ArgString(ArgText)

	switch {
	case text == list.Special:
		h.forget()
		if h.editor == nil {
			return handler.CancelledWithMessage("no tags file editor")
		}
		exists, err := h.editor.AddOrFind(list.Query)
		if err != nil {
			return handler.Error(err)
		}
		ctx.Logger.Debug("suggestion add or find", zap.String("tag", list.Query), zap.Bool("exists", exists))
		return handler.CancelledWithMessage("tags file opened").WithData("exists", exists)

	case isCandidate(list, text):
		buf, err := ctx.RequireBuffer()
		if err != nil {
			return handler.Error(err)
		}
		buf.ReplaceSelection("")
		return handler.Success()

	default:
		h.forget()
		return handler.NoOp()
	}
}

func (h *Handler) completed(_ handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if _, ok := h.Pending(); !ok {
		return handler.NoOp()
	}
	buf, err := ctx.RequireBuffer()
	if err != nil {
		return handler.Error(err)
	}
	return h.runReplace(buf)
}

func (h *Handler) cancelled(_ handler.Action, _ *execctx.ExecutionContext) handler.Result {
	h.forget()
	return handler.Cancelled()
}

func (h *Handler) forget() {
	h.mu.Lock()
	h.pending = nil
	h.mu.Unlock()
}

func isCandidate(list suggest.List, text string) bool {
	return slices.ContainsFunc(list.Entries, func(e suggest.Entry) bool {
		return !e.Special && e.Text == text
	})
}
