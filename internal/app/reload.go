package app

import (
	"context"
	"errors"

	"github.com/dshills/csve/internal/config"
	"github.com/dshills/csve/internal/event"
	"github.com/dshills/csve/internal/renderer/statusline"
	"github.com/dshills/csve/internal/watcher"
)

// watchConfig follows the file the configuration was read from.
func (app *Application) watchConfig() {
	if app.watcher == nil || app.config.Path == "" {
		return
	}
	path, err := app.fs.Abs(app.config.Path)
	if err != nil {
		app.logComponentError("watcher", err)
		return
	}
	if err := app.watcher.Watch(path); err != nil && !errors.Is(err, watcher.ErrAlreadyWatching) {
		app.logComponentError("watcher", NewComponentError("watcher", "watch "+path, err))
		return
	}
	app.configWatched = path
}

func (app *Application) handleConfigEvent(fe watcher.Event) {
	log := app.logger.WithComponent("config")
	if fe.Removed() {
		log.Warn("%s removed; keeping current settings", fe.Path)
		return
	}
	if err := app.reloadConfig(context.Background()); err != nil {
		app.logComponentError("config", err)
		app.setError(err)
		return
	}
	log.Info("reloaded %s", fe.Path)
	app.setMessage("config reloaded", statusline.MessageInfo)
}

// reloadConfig rereads the config file and applies the settings that can
// change while running: key bindings, theme, column layout, log level and
// export style. The CSV format of the open document is kept. Nothing
// changes unless the whole file is valid.
func (app *Application) reloadConfig(ctx context.Context) error {
	cfg, err := config.Load(config.Options{FS: app.fs, Path: app.configWatched})
	if err != nil {
		return NewComponentError("config", "reload", err)
	}
	km, err := keymapFor(cfg)
	if err != nil {
		return NewComponentError("config", "reload", err)
	}
	theme, err := themeFor(cfg)
	if err != nil {
		return NewComponentError("config", "reload", err)
	}

	app.config = cfg
	app.keymap = km
	app.renderer.SetTheme(theme)
	app.renderer.View().SetLayout(layoutFor(cfg))
	app.documents.PrettyExport = cfg.Export.Pretty

	level := cfg.Log.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	app.logger.SetLevel(ParseLogLevel(level))

	ev := event.New(event.TopicConfigReloaded, event.FilePayload{Path: app.configWatched}, "config")
	if err := app.bus.Publish(ctx, ev); err != nil {
		app.logComponentError("events", err)
	}
	return nil
}
