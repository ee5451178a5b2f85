package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/csve/internal/action"
	"github.com/dshills/csve/internal/config"
	"github.com/dshills/csve/internal/event"
	"github.com/dshills/csve/internal/grid"
	"github.com/dshills/csve/internal/input/keymap"
	"github.com/dshills/csve/internal/renderer"
	"github.com/dshills/csve/internal/renderer/statusline"
	"github.com/dshills/csve/internal/script"
	"github.com/dshills/csve/internal/watcher"
)

// bootstrapper initializes components in dependency order.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func (app *Application) bootstrap() error {
	b := &bootstrapper{app: app, opts: app.opts}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"logger", b.initLogger},
		{"config", b.initConfig},
		{"event bus", b.initEventBus},
		{"document", b.initDocument},
		{"keymap", b.initKeymap},
		{"dispatcher", b.initDispatcher},
		{"renderer", b.initRenderer},
		{"watcher", b.initWatcher},
		{"script", b.initScript},
		{"startup file", b.openStartupFile},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return err
		}
		b.initOrder = append(b.initOrder, step.name)
	}
	app.logger.Debug("started %s", strings.Join(b.initOrder, ", "))
	return nil
}

// initLogger sets up logging from the options. initConfig may replace the
// output with the configured log file.
func (b *bootstrapper) initLogger() error {
	b.app.logger = NullLogger()
	if b.opts.LogFile == "" {
		return nil
	}
	return b.openLog(b.opts.LogFile, b.opts.LogLevel)
}

func (b *bootstrapper) openLog(path, level string) error {
	f, err := OpenLogFile(path)
	if err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	b.app.logCloser = f
	b.app.logger = NewLogger(LoggerConfig{Level: ParseLogLevel(level), Output: f, Prefix: "csve"})
	return nil
}

func (b *bootstrapper) initConfig() error {
	cfg := b.opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(config.Options{FS: b.app.fs, Path: b.opts.ConfigPath})
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	b.app.config = cfg

	level := cfg.Log.Level
	if b.opts.LogLevel != "" {
		level = b.opts.LogLevel
	}
	if b.app.logCloser == nil && cfg.Log.File != "" {
		if err := b.openLog(cfg.Log.File, level); err != nil {
			return err
		}
	}
	b.app.logger.SetLevel(ParseLogLevel(level))

	if cfg.Path != "" {
		b.app.logger.Info("config loaded from %s", cfg.Path)
	}
	return nil
}

func (b *bootstrapper) initEventBus() error {
	b.app.bus = event.NewBus()
	return nil
}

func (b *bootstrapper) initDocument() error {
	format, err := b.app.config.CSV.Format()
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	log := b.app.logger.WithComponent("events")
	b.app.doc = grid.NewDocument(
		grid.WithFS(b.app.fs),
		grid.WithPublisher(b.app.bus),
		grid.WithFormat(format),
		grid.WithPublishErrorHandler(func(topic event.Topic, err error) {
			log.Warn("%s handler: %v", topic, err)
		}),
	)
	return nil
}

func (b *bootstrapper) initKeymap() error {
	km, err := keymapFor(b.app.config)
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	b.app.keymap = km
	return nil
}

// keymapFor returns the default bindings with cfg's overrides applied.
func keymapFor(cfg *config.Config) (*keymap.Keymap, error) {
	overrides := make(map[string][]string, len(cfg.Keys))
	for name, specs := range cfg.Keys {
		overrides[name] = specs
	}
	return keymap.Load(overrides)
}

func (b *bootstrapper) initDispatcher() error {
	app := b.app
	app.dispatcher = action.NewDispatcher()

	app.documents = action.NewDocumentHandler(app.doc, app.fs)
	app.documents.PrettyExport = app.config.Export.Pretty
	app.documents.Register(app.dispatcher)
	app.registerHandlers()

	app.dispatcher.AddPreHook(app.confirmDiscard)
	app.dispatcher.AddPreHook(app.suppressOwnWrites)
	app.dispatcher.AddPostHook(app.logAction)

	app.subscribe()
	return nil
}

func (b *bootstrapper) initRenderer() error {
	theme, err := themeFor(b.app.config)
	if err != nil {
		return &InitError{Component: "renderer", Err: err}
	}
	b.app.renderer = renderer.New(b.app.backend, layoutFor(b.app.config), theme)
	b.app.renderer.View().SetEmptyText("empty grid: ctrl+l adds a column, ctrl+r a row")
	return nil
}

func themeFor(cfg *config.Config) (renderer.Theme, error) {
	colors, err := cfg.Theme.Colors()
	if err != nil {
		return renderer.Theme{}, err
	}
	if len(colors) == 0 {
		return renderer.DefaultTheme(), nil
	}
	return renderer.ThemeFromColors(colors), nil
}

func layoutFor(cfg *config.Config) renderer.Layout {
	return renderer.Layout{
		ColumnWidth:    cfg.Editor.ColumnWidth,
		MinColumnWidth: cfg.Editor.MinColumnWidth,
		MaxColumnWidth: cfg.Editor.MaxColumnWidth,
		ScrollMargin:   1,
	}
}

// initWatcher starts the file watcher. A watcher that cannot start only
// disables change notifications.
func (b *bootstrapper) initWatcher() error {
	if b.opts.Watcher != nil {
		b.app.watcher = b.opts.Watcher
		b.app.watchConfig()
		return nil
	}
	if !b.app.config.Editor.WatchFile {
		return nil
	}
	w, err := watcher.New()
	if err != nil {
		b.app.logComponentError("watcher", err)
		return nil
	}
	b.app.watcher = w
	b.app.watchConfig()
	return nil
}

func (b *bootstrapper) initScript() error {
	app := b.app
	if !app.config.Script.Enabled {
		return nil
	}

	app.script = script.New(app.doc,
		script.WithBus(app.bus),
		script.WithFS(app.fs),
		script.WithMessageHandler(func(msg string) {
			app.renderer.Status().SetMessage(msg, statusline.MessageInfo)
		}),
	)
	app.script.Register(app.dispatcher)

	path := app.config.ScriptPath()
	if path == "" {
		return nil
	}
	if err := app.script.DoFile(context.Background(), path); err != nil {
		// A broken init script should not keep the editor from starting.
		err = NewComponentError("script", "init "+filepath.Base(path), err)
		app.logComponentError("script", err)
		app.setError(err)
		return nil
	}
	app.logger.Info("ran init script %s", path)
	return nil
}

func (b *bootstrapper) openStartupFile() error {
	path := b.opts.File
	if path == "" {
		return nil
	}
	app := b.app
	if !app.fs.Exists(path) {
		app.suggestedPath = path
		app.setMessage(fmt.Sprintf("new file %s", path), statusline.MessageInfo)
		return nil
	}

	// A file that fails to parse leaves an empty grid and the error on
	// the status line.
	app.Dispatch(context.Background(), action.WithPath(action.FileOpen, path))
	return nil
}
