// Package execctx provides the execution context for command handlers.
package execctx

import (
	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/editor"
)

// ExecutionContext carries one dispatched command's environment.
type ExecutionContext struct {
	// ID correlates log events of one dispatch.
	ID string

	// Buffer is the document the command acts on. It may be nil for
	// commands that do not touch a document.
	Buffer editor.TextBuffer

	// Logger is scoped to this dispatch.
	Logger *zap.Logger

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates an execution context for buf.
func New(id string, buf editor.TextBuffer) *ExecutionContext {
	return &ExecutionContext{
		ID:     id,
		Buffer: buf,
		Logger: zap.NewNop(),
		Data:   make(map[string]interface{}),
	}
}

// WithLogger returns the context with a logger carrying its ID.
func (ctx *ExecutionContext) WithLogger(logger *zap.Logger) *ExecutionContext {
	if logger != nil {
		ctx.Logger = logger.With(zap.String("dispatch_id", ctx.ID))
	}
	return ctx
}

// RequireBuffer returns the buffer or ErrMissingBuffer.
func (ctx *ExecutionContext) RequireBuffer() (editor.TextBuffer, error) {
	if ctx.Buffer == nil {
		return nil, ErrMissingBuffer
	}
	return ctx.Buffer, nil
}

// Set stores a value in the context data.
func (ctx *ExecutionContext) Set(key string, value interface{}) {
	ctx.Data[key] = value
}

// Get retrieves a value from the context data.
func (ctx *ExecutionContext) Get(key string) (interface{}, bool) {
	v, ok := ctx.Data[key]
	return v, ok
}
