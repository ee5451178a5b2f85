package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/csve/internal/action"
	"github.com/dshills/csve/internal/renderer/statusline"
)

// ownWriteWindow is how long watcher events are ignored after a save.
const ownWriteWindow = time.Second

// promptKind tells what a submitted prompt line is for.
type promptKind int

const (
	promptNone promptKind = iota
	promptCommand
	promptPath
)

// registerHandlers installs the handlers for actions that act on the UI
// state rather than the document.
func (app *Application) registerHandlers() {
	d := app.dispatcher
	d.RegisterNamespace("cursor", action.HandlerFunc(app.handleCursor))
	d.RegisterFunc(action.CellEdit, app.handleCellEdit)
	d.RegisterFunc(action.CellClear, app.handleCellClear)
	d.RegisterFunc(action.AppCommand, app.handleCommand)
	d.RegisterFunc(action.AppQuit, app.handleQuit)
}

func (app *Application) handleCursor(_ context.Context, a action.Action) action.Result {
	rows, cols := app.doc.RowCount(), app.doc.ColumnCount()
	page := app.renderer.View().PageSize()

	switch a.Name {
	case action.CursorUp:
		app.row--
	case action.CursorDown:
		app.row++
	case action.CursorLeft:
		app.col--
	case action.CursorRight:
		app.col++
	case action.CursorHome:
		app.col = 0
	case action.CursorEnd:
		app.col = cols - 1
	case action.CursorTop:
		app.row = 0
	case action.CursorBottom:
		app.row = rows - 1
	case action.CursorPageUp:
		app.row -= page
	case action.CursorPageDown:
		app.row += page
	default:
		return action.Errorf("%w: %s", action.ErrNoHandler, a.Name)
	}
	app.clampCursor()
	return action.Success()
}

// clampCursor keeps the cursor on a cell, or at (0, 0) for an empty grid.
func (app *Application) clampCursor() {
	app.row = max(min(app.row, app.doc.RowCount()-1), 0)
	app.col = max(min(app.col, app.doc.ColumnCount()-1), 0)
}

func (app *Application) hasCell() bool {
	return app.doc.RowCount() > 0 && app.doc.ColumnCount() > 0
}

func (app *Application) handleCellEdit(_ context.Context, _ action.Action) action.Result {
	if !app.hasCell() {
		return action.Result{Status: action.StatusNoOp, Message: "grid is empty: add a row first"}
	}
	value, err := app.doc.Cell(app.row, app.col)
	if err != nil {
		return action.Error(err)
	}
	app.startEdit(value)
	return action.Success()
}

func (app *Application) handleCellClear(ctx context.Context, _ action.Action) action.Result {
	if !app.hasCell() {
		return action.NoOp()
	}
	return app.dispatcher.Dispatch(ctx, action.SetCell(app.row, app.col, ""))
}

func (app *Application) handleCommand(_ context.Context, _ action.Action) action.Result {
	app.startPrompt(promptCommand, action.Action{}, "")
	return action.Success()
}

func (app *Application) handleQuit(_ context.Context, _ action.Action) action.Result {
	app.quitRequested = true
	return action.Success()
}

// confirmDiscard stops actions that would drop unsaved changes and asks
// the user first. The UI repeats the action with Force on yes.
func (app *Application) confirmDiscard(_ context.Context, a action.Action) (action.Result, bool) {
	if !app.config.Editor.ConfirmDiscard || !a.Discards() || !app.doc.IsModified() {
		return action.Result{}, true
	}
	return action.NeedConfirm(fmt.Sprintf("discard changes to %s? (y/n) ", app.doc.Name())), false
}

// suppressOwnWrites keeps the watcher from reporting our own saves.
func (app *Application) suppressOwnWrites(_ context.Context, a action.Action) (action.Result, bool) {
	if app.watcher == nil {
		return action.Result{}, true
	}
	if a.Name != action.FileSave && a.Name != action.FileSaveAs {
		return action.Result{}, true
	}
	target := a.Args.Path
	if target == "" && a.Name == action.FileSave {
		target = app.doc.Path()
	}
	if target != "" {
		if abs, err := app.fs.Abs(target); err == nil {
			app.watcher.Suppress(abs, ownWriteWindow)
		}
	}
	return action.Result{}, true
}

func (app *Application) logAction(_ context.Context, a action.Action, r action.Result) {
	log := app.logger.WithComponent("action")
	if r.IsError() {
		log.Error("%v", NewOperationError(a.Name, a.Args.Path, r.Err))
		return
	}
	log.Debug("%s from %s: %s", a.Name, sourceName(a), r.Status)
}

func sourceName(a action.Action) string {
	if a.Source == "" {
		return "code"
	}
	return a.Source
}

// applyResult turns a dispatch result into UI state: a prompt, a
// confirmation, or a status line message.
func (app *Application) applyResult(a action.Action, r action.Result) {
	app.clampCursor()

	switch {
	case r.NeedsConfirm:
		app.mode = ModeConfirm
		app.pending = a
		app.prompt = promptNone
		app.label = r.Message
		app.input.Set("")
	case r.NeedsPath:
		app.startPrompt(promptPath, a, app.defaultPath(a))
		app.label = r.Message
	case r.IsError():
		app.setError(r.Err)
	case r.Message != "":
		app.setMessage(r.Message, statusline.MessageInfo)
	}
}

// defaultPath is the text a path prompt for a starts with.
func (app *Application) defaultPath(a action.Action) string {
	switch a.Name {
	case action.FileSave, action.FileSaveAs:
		if app.suggestedPath != "" {
			return app.suggestedPath
		}
		return app.doc.Path()
	case action.FileExport:
		if p := app.doc.Path(); p != "" {
			return strings.TrimSuffix(p, filepath.Ext(p)) + ".json"
		}
	}
	return ""
}

func (app *Application) startEdit(value string) {
	app.mode = ModeEdit
	app.input.Set(value)
}

func (app *Application) startPrompt(kind promptKind, pending action.Action, text string) {
	app.mode = ModePrompt
	app.prompt = kind
	app.pending = pending
	app.input.Set(text)
}

func (app *Application) promptLabel() string {
	if app.mode == ModePrompt && app.prompt == promptCommand {
		return ":"
	}
	return app.label
}

func (app *Application) toNormal() {
	app.mode = ModeNormal
	app.prompt = promptNone
	app.pending = action.Action{}
	app.label = ""
	app.input.Set("")
}

func (app *Application) setMessage(msg string, typ statusline.MessageType) {
	app.renderer.Status().SetMessage(msg, typ)
}

func (app *Application) setError(err error) {
	if err == nil {
		return
	}
	app.setMessage(err.Error(), statusline.MessageError)
}
