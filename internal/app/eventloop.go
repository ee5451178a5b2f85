package app

import (
	"context"
	"fmt"

	"github.com/dshills/csve/internal/action"
	"github.com/dshills/csve/internal/event"
	"github.com/dshills/csve/internal/input/key"
	"github.com/dshills/csve/internal/renderer/backend"
	"github.com/dshills/csve/internal/renderer/statusline"
	"github.com/dshills/csve/internal/watcher"
)

// HandleEvent processes one backend event on the loop goroutine. It
// returns ErrQuit once app.quit has run.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		app.handleKey(context.Background(), ev)
	case backend.EventResize:
		// The next render reads the new size.
	}
	if app.quitRequested {
		return ErrQuit
	}
	return nil
}

func (app *Application) handleKey(ctx context.Context, ev backend.Event) {
	switch app.mode {
	case ModeEdit:
		app.handleEditKey(ctx, ev)
	case ModePrompt:
		app.handlePromptKey(ctx, ev)
	case ModeConfirm:
		app.handleConfirmKey(ctx, ev)
	default:
		app.handleNormalKey(ctx, ev)
	}
}

// handleNormalKey resolves ev through the keymap. An unbound printable
// key starts editing the cursor cell with that character.
func (app *Application) handleNormalKey(ctx context.Context, ev backend.Event) {
	k := key.FromBackend(ev)
	name, ok := app.keymap.Lookup(k)
	if ok {
		app.renderer.Status().ClearMessage()
		app.Dispatch(ctx, action.Action{Name: name, Source: "key"})
		return
	}

	if k.IsRune() && !k.Mod.Has(backend.ModCtrl) && !k.Mod.Has(backend.ModAlt) && app.hasCell() {
		app.startEdit("")
		app.input.Insert(k.Rune)
		return
	}
	app.backend.Beep()
}

func (app *Application) handleEditKey(ctx context.Context, ev backend.Event) {
	switch ev.Key {
	case backend.KeyEscape:
		app.toNormal()
	case backend.KeyEnter:
		app.commitEdit(ctx, action.CursorDown)
	case backend.KeyTab:
		app.commitEdit(ctx, action.CursorRight)
	default:
		app.input.HandleKey(ev)
	}
}

// commitEdit writes the edit buffer to the cursor cell and, when
// configured, moves the cursor with move.
func (app *Application) commitEdit(ctx context.Context, move string) {
	value := app.input.String()
	row, col := app.row, app.col
	app.toNormal()

	r := app.Dispatch(ctx, action.Action{
		Name:   action.CellSet,
		Args:   action.Args{Row: row, Col: col, Value: value},
		Source: "edit",
	})
	if r.IsError() {
		return
	}
	if move == action.CursorRight || app.config.Editor.MoveAfterEdit {
		app.Dispatch(ctx, action.New(move))
	}
}

func (app *Application) handlePromptKey(ctx context.Context, ev backend.Event) {
	switch ev.Key {
	case backend.KeyEscape:
		app.toNormal()
		app.setMessage("cancelled", statusline.MessageInfo)
	case backend.KeyEnter:
		app.submitPrompt(ctx)
	default:
		app.input.HandleKey(ev)
	}
}

func (app *Application) submitPrompt(ctx context.Context) {
	text := app.input.String()
	kind, pending := app.prompt, app.pending
	app.toNormal()

	switch kind {
	case promptCommand:
		if text == "" {
			return
		}
		a, err := action.ParseCommand(text)
		if err != nil {
			app.setError(err)
			return
		}
		app.Dispatch(ctx, a)

	case promptPath:
		if text == "" {
			app.setMessage("cancelled", statusline.MessageInfo)
			return
		}
		pending.Args.Path = text
		app.Dispatch(ctx, pending)
	}
}

func (app *Application) handleConfirmKey(ctx context.Context, ev backend.Event) {
	pending := app.pending
	app.toNormal()

	if ev.Key == backend.KeyRune && (ev.Rune == 'y' || ev.Rune == 'Y') {
		pending.Args.Force = true
		app.Dispatch(ctx, pending)
		return
	}
	app.setMessage("cancelled", statusline.MessageInfo)
}

// handleFileEvent reports a change to the open file made by another
// program through the event bus. Changes to the config file reload it.
func (app *Application) handleFileEvent(fe watcher.Event) {
	if app.configWatched != "" && fe.Path == app.configWatched {
		app.handleConfigEvent(fe)
		return
	}

	payload := event.FilePayload{Path: fe.Path}
	err := app.bus.Publish(context.Background(), event.New(event.TopicFileChanged, payload, "watcher"))
	if err != nil {
		app.logComponentError("events", err)
	}

	if fe.Removed() {
		app.setMessage(fmt.Sprintf("%s was removed on disk", app.doc.Name()), statusline.MessageWarning)
		return
	}
	app.setMessage(fmt.Sprintf("%s changed on disk; %s reloads", app.doc.Name(), app.reloadHint()), statusline.MessageWarning)
}

// reloadHint names the first key bound to file.reload, or the command.
func (app *Application) reloadHint() string {
	if keys := app.keymap.Keys(action.FileReload); len(keys) > 0 {
		return keys[0].String()
	}
	return ":reload"
}
