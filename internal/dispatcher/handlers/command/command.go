// Package command provides handlers for the [Commands] wrap templates.
package command

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/dispatcher/execctx"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/tags"
)

// Action names for command operations.
const (
	// ActionList lists the [Commands] entries in menu order.
	ActionList = "commands.list"

	// RunPrefix prefixes a command name or ordinal, as in
	// "commands.run.Bold" or "commands.run.0".
	RunPrefix = "commands.run."
)

// DataCommands holds the []tags.Command of an ActionList result.
const DataCommands = "commands"

// DataCommand holds the tags.Command that ran.
const DataCommand = "command"

// Handler handles the commands namespace.
type Handler struct {
	*handler.BaseNamespaceHandler

	resolver *tags.Resolver
	refusal  error
	logger   *zap.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithRefusal sets the error that marks a command the guard refused.
// Such commands end as cancelled rather than failed.
func WithRefusal(err error) Option {
	return func(h *Handler) {
		h.refusal = err
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

// New creates the commands namespace handler.
func New(resolver *tags.Resolver, opts ...Option) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("commands"),
		resolver:             resolver,
		logger:               zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.Register(ActionList, h.list)
	return h
}

// ActionName returns the action that runs the command ref.
func ActionName(ref string) string {
	return RunPrefix + ref
}

// CanHandle accepts registered actions and any non-empty run reference.
func (h *Handler) CanHandle(actionName string) bool {
	if ref, ok := strings.CutPrefix(actionName, RunPrefix); ok {
		return ref != ""
	}
	return h.BaseNamespaceHandler.CanHandle(actionName)
}

// HandleAction runs a command or a registered action.
func (h *Handler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ref, ok := strings.CutPrefix(action.Name, RunPrefix); ok {
		return h.run(ref, ctx)
	}
	return h.BaseNamespaceHandler.HandleAction(action, ctx)
}

func (h *Handler) run(ref string, ctx *execctx.ExecutionContext) handler.Result {
	buf, err := ctx.RequireBuffer()
	if err != nil {
		return handler.Error(err)
	}
	cmd, err := h.resolver.RunCommand(buf, ref)
	switch {
	case err == nil:
		ctx.Logger.Debug("command ran", zap.String("command", cmd.Name))
		return handler.Success().WithData(DataCommand, cmd)
	case h.refusal != nil && errors.Is(err, h.refusal):
		h.logger.Info("command refused", zap.String("ref", ref), zap.Error(err))
		return handler.CancelledWithMessage(err.Error())
	default:
		return handler.Error(err)
	}
}

func (h *Handler) list(_ handler.Action, _ *execctx.ExecutionContext) handler.Result {
	store := h.resolver.Store()
	if err := store.Reload(); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithData(DataCommands, tags.Commands(store))
}
