package app

import (
	"go.uber.org/zap"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/config/watcher"
	"github.com/Krazal/WebEdit/internal/dispatcher"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/command"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/configfile"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/tag"
	"github.com/Krazal/WebEdit/internal/expand"
	"github.com/Krazal/WebEdit/internal/multisel"
	"github.com/Krazal/WebEdit/internal/tags"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 4),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initLogger,
		b.initEngine,
		b.initDispatcher,
		b.initTagsFile,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

func (b *bootstrapper) initLogger() error {
	if b.opts.Logger != nil {
		b.app.logger = b.opts.Logger
		return nil
	}
	logger, err := NewLogger(b.app.settings.LogLevel, b.app.settings.LogFile)
	if err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	b.app.logger = logger
	b.app.ownsLog = true
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initEngine builds the store, expander, resolver and coordinator.
func (b *bootstrapper) initEngine() error {
	s := b.app.settings
	log := b.app.logger

	b.app.store = config.NewStore(s.TagsPath(), config.WithStoreLogger(log.Named("config")))

	expandOpts := []expand.Option{
		expand.WithConfigDir(s.ConfigDir),
		expand.WithTagsPath(s.TagsPath()),
		expand.WithDefaultDateFormat(s.DateFormat),
		expand.WithLogger(log.Named("expand")),
	}
	b.app.expander = expand.New(append(expandOpts, b.opts.ExpandOptions...)...)
	b.app.coordinator = multisel.New(multisel.WithLogger(log.Named("multisel")))
	return nil
}

// initDispatcher builds the namespace handlers and registers them.
func (b *bootstrapper) initDispatcher() error {
	log := b.app.logger

	cfgOpts := []configfile.Option{configfile.WithLogger(log.Named("configfile"))}
	resolverOpts := []tags.Option{tags.WithLogger(log.Named("tags"))}
	if h := b.opts.Host; h != nil {
		cfgOpts = append(cfgOpts, configfile.WithWorkspace(h), configfile.WithNotifier(h))
		resolverOpts = append(resolverOpts, tags.WithNotifier(h), tags.WithPresenter(h))
	}
	b.app.configHandler = configfile.New(b.app.store, cfgOpts...)

	resolverOpts = append(resolverOpts, tags.WithCommandGuard(b.app.configHandler.CommandGuard))
	b.app.resolver = tags.NewResolver(b.app.store, b.app.expander, resolverOpts...)

	b.app.tagHandler = tag.New(b.app.resolver, b.app.coordinator,
		tag.WithTagEditor(b.app.configHandler),
		tag.WithLogger(log.Named("tag")),
	)
	b.app.commandHandler = command.New(b.app.resolver,
		command.WithRefusal(configfile.ErrMenuChanged),
		command.WithLogger(log.Named("command")),
	)

	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.SetLogger(log.Named("dispatcher"))
	d.RegisterNamespace(b.app.configHandler)
	d.RegisterNamespace(b.app.tagHandler)
	d.RegisterNamespace(b.app.commandHandler)
	b.app.dispatcher = d
	return nil
}

func (b *bootstrapper) initTagsFile() error {
	if err := b.app.configHandler.Load(); err != nil {
		return &InitError{Component: "tags file", Err: err}
	}
	b.app.logger.Info("tags file loaded",
		zap.String("path", b.app.store.Path()),
		zap.Int("tags", len(b.app.store.GetKeys(config.SectionTags))),
		zap.Int("commands", len(b.app.store.GetKeys(config.SectionCommands))),
	)
	return nil
}

func (b *bootstrapper) initWatcher() error {
	if !b.app.settings.Watch {
		return nil
	}
	w, err := watcher.New(watcher.WithLogger(b.app.logger.Named("watcher")))
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	if err := w.Watch(b.app.store.Path()); err != nil {
		_ = w.Close()
		return &InitError{Component: "watcher", Err: err}
	}
	w.OnChange(b.app.onTagsFileChanged)
	b.app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "watcher":
			if b.app.watcher != nil {
				_ = b.app.watcher.Close()
				b.app.watcher = nil
			}
		case "logger":
			_ = b.app.logger.Sync()
		}
	}
}
