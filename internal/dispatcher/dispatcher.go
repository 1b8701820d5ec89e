package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/dispatcher/execctx"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/editor"
)

// Dispatcher routes commands to handlers and runs them synchronously.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router

	config  Config
	metrics *Metrics
	logger  *zap.Logger
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
		logger:   zap.NewNop(),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetLogger sets the dispatcher logger.
func (d *Dispatcher) SetLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// Dispatch runs a command against buf and returns its result.
// buf may be nil for commands that do not need a document.
func (d *Dispatcher) Dispatch(action handler.Action, buf editor.TextBuffer) handler.Result {
	start := time.Now()

	d.mu.RLock()
	logger := d.logger
	d.mu.RUnlock()
	ctx := execctx.New(uuid.NewString(), buf).WithLogger(logger)

	h := d.router.Route(action.Name)
	if h == nil {
		h = d.registry.Get(action.Name)
	}
	if h == nil {
		ctx.Logger.Warn("no handler", zap.String("command", action.Name))
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	elapsed := time.Since(start)
	fields := []zap.Field{
		zap.String("command", action.Name),
		zap.Stringer("status", result.Status),
		zap.Duration("elapsed", elapsed),
	}
	switch {
	case result.Error != nil:
		ctx.Logger.Warn("command failed", append(fields, zap.Error(result.Error))...)
	case d.config.SlowCommand > 0 && elapsed > d.config.SlowCommand:
		ctx.Logger.Info("slow command", fields...)
	default:
		ctx.Logger.Debug("command dispatched", fields...)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, elapsed, result.Status)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action handler.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			ctx.Logger.Error("handler panic",
				zap.String("command", action.Name),
				zap.Any("panic", r),
				zap.ByteString("stack", stack[:n]),
			)
			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// RegisterHandler registers a handler for an exact command identifier.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for a command identifier.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.HandlerFunc) {
	d.registry.Register(actionName, fn)
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h)
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the command router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
