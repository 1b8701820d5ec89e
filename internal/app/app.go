// Package app wires the WebEdit components together and manages their
// lifecycle: settings, logging, the tags store, the expansion engine, the
// command dispatcher and the tags file watcher.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/config/watcher"
	"github.com/Krazal/WebEdit/internal/dispatcher"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/command"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/configfile"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/tag"
	"github.com/Krazal/WebEdit/internal/editor"
	"github.com/Krazal/WebEdit/internal/expand"
	"github.com/Krazal/WebEdit/internal/multisel"
	"github.com/Krazal/WebEdit/internal/tags"
)

// Host is the editor the application serves.
type Host interface {
	editor.Notifier
	editor.Presenter
	editor.Workspace
}

// Application is the central coordinator for all WebEdit components.
type Application struct {
	mu sync.Mutex

	settings config.Settings
	logger   *zap.Logger
	ownsLog  bool

	store       *config.Store
	expander    *expand.Expander
	resolver    *tags.Resolver
	coordinator *multisel.Coordinator
	dispatcher  *dispatcher.Dispatcher

	configHandler  *configfile.Handler
	tagHandler     *tag.Handler
	commandHandler *command.Handler

	watcher *watcher.Watcher

	running atomic.Bool
	closed  atomic.Bool
}

// Options configures the application.
type Options struct {
	// Settings are the effective process settings.
	Settings config.Settings

	// Host receives notices, hints and suggestion lists and opens files.
	// It may be nil for batch use.
	Host Host

	// Logger overrides the logger built from Settings.
	Logger *zap.Logger

	// ExpandOptions are appended to the expander options derived from
	// Settings.
	ExpandOptions []expand.Option
}

// New creates and bootstraps an Application, loading the tags file.
func New(opts Options) (*Application, error) {
	app := &Application{settings: opts.Settings}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Dispatch runs a command against buf.
func (app *Application) Dispatch(action handler.Action, buf editor.TextBuffer) handler.Result {
	return app.dispatcher.Dispatch(action, buf)
}

// Run watches the tags file and reloads it on external edits until ctx
// is done. It returns nil when ctx ends the run.
func (app *Application) Run(ctx context.Context) error {
	if app.closed.Load() {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.watcher == nil {
		<-ctx.Done()
		return nil
	}
	app.logger.Info("watching tags file", zap.String("path", app.store.Path()))
	err := app.watcher.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// OnFileSaved tells the application the host saved path.
func (app *Application) OnFileSaved(path string) error {
	return app.configHandler.OnFileSaved(path)
}

// onTagsFileChanged reloads the store after an external edit.
func (app *Application) onTagsFileChanged(ev watcher.Event) {
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		app.logger.Warn("tags file went away", zap.String("path", ev.Path), zap.Stringer("op", ev.Op))
		return
	}
	res := app.Dispatch(handler.NewAction(configfile.ActionLoad), nil)
	if res.Error != nil {
		app.logger.Error("tags file reload failed", zap.String("path", ev.Path), zap.Error(res.Error))
		return
	}
	app.logger.Info("tags file reloaded",
		zap.String("path", ev.Path),
		zap.Int("tags", len(app.store.GetKeys(config.SectionTags))),
		zap.Int("commands", len(app.store.GetKeys(config.SectionCommands))),
	)
}

// Close stops the watcher, logs the dispatch totals and flushes the log.
func (app *Application) Close() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}
	app.mu.Lock()
	defer app.mu.Unlock()

	var err error
	if app.watcher != nil {
		err = app.watcher.Close()
		app.watcher = nil
	}
	if m := app.dispatcher.Metrics(); m != nil {
		s := m.Snapshot()
		app.logger.Info("dispatch totals",
			zap.Uint64("dispatches", s.TotalDispatches),
			zap.Uint64("errors", s.TotalErrors),
			zap.Uint64("panics", s.TotalPanics),
			zap.Uint64("rejected", s.Rejections),
			zap.Uint64("suggestions", s.Suggestions),
			zap.Duration("avg", s.AverageDuration),
			zap.Int("commands", s.ActionCount),
		)
	}
	if app.ownsLog {
		_ = app.logger.Sync()
	}
	return err
}

// Settings returns the effective settings.
func (app *Application) Settings() config.Settings {
	return app.settings
}

// Logger returns the application logger.
func (app *Application) Logger() *zap.Logger {
	return app.logger
}

// Store returns the tags store.
func (app *Application) Store() *config.Store {
	return app.store
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Tags returns the tags namespace handler.
func (app *Application) Tags() *tag.Handler {
	return app.tagHandler
}

// ConfigFile returns the config namespace handler.
func (app *Application) ConfigFile() *configfile.Handler {
	return app.configHandler
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
