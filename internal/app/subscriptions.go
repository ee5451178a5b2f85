package app

import (
	"context"
	"errors"

	"github.com/dshills/csve/internal/event"
	"github.com/dshills/csve/internal/watcher"
)

// subscribe connects document events to the UI state and the file
// watcher. Handlers run synchronously on the loop goroutine.
func (app *Application) subscribe() {
	handlers := map[event.Topic]event.Handler{
		event.TopicDocumentLoaded: app.onDocumentFile,
		event.TopicDocumentSaved:  app.onDocumentFile,
		event.TopicDocumentReset:  app.onDocumentReset,
		event.TopicFileChanged:    app.onFileChanged,
	}
	for topic, h := range handlers {
		if _, err := app.bus.Subscribe(topic, h); err != nil {
			app.logComponentError("events", err)
		}
	}

	log := app.logger.WithComponent("events")
	_, _ = app.bus.Subscribe("grid.**", func(_ context.Context, ev event.Event) error {
		log.Debug("%s %+v", ev.Topic, ev.Payload)
		return nil
	})
}

// onDocumentFile follows the document's file after a load or save.
func (app *Application) onDocumentFile(_ context.Context, ev event.Event) error {
	p, ok := ev.Payload.(event.FilePayload)
	if !ok {
		return nil
	}
	// A reload keeps the cursor; clampCursor fits it to the new shape.
	if ev.Topic == event.TopicDocumentLoaded && p.Path != app.openPath {
		app.row, app.col = 0, 0
	}
	app.openPath = p.Path
	app.changedOnDisk = false
	app.suggestedPath = ""
	return app.watch(p.Path)
}

func (app *Application) onDocumentReset(_ context.Context, _ event.Event) error {
	app.row, app.col = 0, 0
	app.openPath = ""
	app.changedOnDisk = false
	return app.watch("")
}

func (app *Application) onFileChanged(_ context.Context, ev event.Event) error {
	if p, ok := ev.Payload.(event.FilePayload); ok && p.Path != "" {
		app.changedOnDisk = true
	}
	return nil
}

// watch moves the watcher to path. An empty path stops watching.
func (app *Application) watch(path string) error {
	if app.watcher == nil {
		return nil
	}
	if path != "" {
		abs, err := app.fs.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}
	if path == app.watched {
		return nil
	}

	if app.watched != "" && app.watched != app.configWatched {
		if err := app.watcher.Unwatch(app.watched); err != nil && !errors.Is(err, watcher.ErrNotWatching) {
			app.logComponentError("watcher", err)
		}
		app.watched = ""
	}
	if path == "" {
		return nil
	}
	if err := app.watcher.Watch(path); err != nil && !errors.Is(err, watcher.ErrAlreadyWatching) {
		return NewComponentError("watcher", "watch "+path, err)
	}
	app.watched = path
	app.logger.WithComponent("watcher").Debug("watching %s", path)
	return nil
}
