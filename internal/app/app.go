// Package app wires the csve components together and runs the editor loop.
//
// The Application owns the single grid document. Terminal input is read on
// a polling goroutine and file change notifications arrive from the
// watcher; both are handed to the loop goroutine, which is the only one
// that touches the document, the dispatcher and the renderer.
package app

import (
	"context"
	"errors"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/csve/internal/action"
	"github.com/dshills/csve/internal/config"
	"github.com/dshills/csve/internal/event"
	"github.com/dshills/csve/internal/grid"
	"github.com/dshills/csve/internal/input/keymap"
	"github.com/dshills/csve/internal/renderer"
	"github.com/dshills/csve/internal/renderer/backend"
	"github.com/dshills/csve/internal/script"
	"github.com/dshills/csve/internal/vfs"
	"github.com/dshills/csve/internal/watcher"
)

// Mode is the input state of the editor.
type Mode int

const (
	// ModeNormal routes keys through the keymap.
	ModeNormal Mode = iota
	// ModeEdit edits the cursor cell.
	ModeEdit
	// ModePrompt reads a path or a command on the status line.
	ModePrompt
	// ModeConfirm waits for a y/n answer.
	ModeConfirm
)

// String returns the label shown in the status bar.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeEdit:
		return "EDIT"
	case ModePrompt:
		return "PROMPT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

// Options configures the application.
type Options struct {
	// ConfigPath is an explicit configuration file.
	ConfigPath string

	// Config is used instead of loading one when set.
	Config *config.Config

	// File is opened on startup. A path that does not exist yet becomes
	// the suggested name for the first save.
	File string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogFile overrides the configured log file.
	LogFile string

	// Backend is the display. Required.
	Backend backend.Backend

	// FS is the file system for documents, exports and scripts.
	// Defaults to the OS file system.
	FS vfs.VFS

	// Watcher replaces the fsnotify watcher.
	Watcher watcher.Watcher
}

// Application is the central coordinator for all csve components.
type Application struct {
	opts Options
	fs   vfs.VFS

	logger    *Logger
	logCloser io.Closer

	config     *config.Config
	bus        *event.Bus
	doc        *grid.Document
	keymap     *keymap.Keymap
	dispatcher *action.Dispatcher
	documents  *action.DocumentHandler
	backend    backend.Backend
	renderer   *renderer.Renderer
	watcher    watcher.Watcher
	watched    string
	openPath   string
	script     *script.Engine

	// configWatched is the absolute path of the watched config file.
	configWatched string

	// loop state
	row, col      int
	mode          Mode
	input         lineEditor
	prompt        promptKind
	label         string
	pending       action.Action
	suggestedPath string
	changedOnDisk bool
	quitRequested bool

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	doneOnce  sync.Once
}

// New creates an Application and starts every component except the
// display, which Run initializes.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	app := &Application{
		opts:    opts,
		fs:      opts.FS,
		backend: opts.Backend,
		done:    make(chan struct{}),
	}
	if app.fs == nil {
		app.fs = vfs.NewOSFS()
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Run initializes the display and processes events until the user quits,
// in which case it returns ErrQuit, or Shutdown is called, in which case it
// returns nil.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.logger.Info("running")
	return app.eventLoop()
}

func (app *Application) eventLoop() error {
	input := app.startInputPolling()

	var (
		fileEvents <-chan watcher.Event
		fileErrors <-chan error
	)
	if app.watcher != nil {
		fileEvents = app.watcher.Events()
		fileErrors = app.watcher.Errors()
	}

	app.render()
	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-input:
			if !ok {
				return nil
			}
			if err := app.safeHandle(ev); err != nil {
				return err
			}

		case fe, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			app.handleFileEvent(fe)

		case err, ok := <-fileErrors:
			if !ok {
				fileErrors = nil
				continue
			}
			app.logComponentError("watcher", err)
		}
		app.render()
	}
}

// safeHandle runs HandleEvent, turning a panic into an error message so a
// bug in one action does not lose the user's unsaved grid.
func (app *Application) safeHandle(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr := &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.logger.Error("%v\n%s", perr, perr.Stack)
			app.setError(perr)
			err = nil
		}
	}()
	err = app.HandleEvent(ev)
	if err != nil && !errors.Is(err, ErrQuit) {
		app.logger.Error("event loop: %v", err)
		app.setError(err)
		return nil
	}
	return err
}

// startInputPolling reads backend events on a goroutine. PollEvent blocks;
// Shutdown of the backend in Run unblocks it.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 64)

	go func() {
		defer close(events)
		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventNone {
				return
			}
			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}

// render draws the current state.
func (app *Application) render() {
	st := app.renderer.Status()
	st.SetMode(app.mode.String())
	st.SetDocument(app.doc.Name(), app.doc.IsModified(), app.doc.RowCount(), app.doc.ColumnCount())
	st.SetChangedOnDisk(app.changedOnDisk)

	switch app.mode {
	case ModeEdit:
		st.SetPrompt(grid.CellName(app.row, app.col)+": ", app.input.Runes(), app.input.Cursor())
	case ModePrompt, ModeConfirm:
		st.SetPrompt(app.promptLabel(), app.input.Runes(), app.input.Cursor())
	default:
		st.ClearPrompt()
	}

	app.renderer.Render(app.doc, app.row, app.col)
}

// Shutdown asks a running loop to return. It is safe to call from any
// goroutine and more than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}

// Close releases every component. Call it after Run returns.
func (app *Application) Close() error {
	var errs []error
	app.closeOnce.Do(func() {
		app.Shutdown()
		if app.script != nil {
			if err := app.script.Close(); err != nil {
				errs = append(errs, NewComponentError("script", "close", err))
			}
		}
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				errs = append(errs, NewComponentError("watcher", "close", err))
			}
		}
		if app.logger != nil {
			app.logger.Info("shutdown")
		}
		if app.logCloser != nil {
			if err := app.logCloser.Close(); err != nil {
				errs = append(errs, NewComponentError("log", "close", err))
			}
		}
	})
	return errors.Join(errs...)
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Document returns the grid document.
func (app *Application) Document() *grid.Document {
	return app.doc
}

// Config returns the resolved configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// EventBus returns the event bus.
func (app *Application) EventBus() *event.Bus {
	return app.bus
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *action.Dispatcher {
	return app.dispatcher
}

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Script returns the Lua engine, nil when scripting is disabled.
func (app *Application) Script() *script.Engine {
	return app.script
}

// Mode returns the current input mode.
func (app *Application) Mode() Mode {
	return app.mode
}

// Cursor returns the cursor cell.
func (app *Application) Cursor() (row, col int) {
	return app.row, app.col
}

// Dispatch runs a on the dispatcher and applies its result to the UI
// state. It must be called on the loop goroutine.
func (app *Application) Dispatch(ctx context.Context, a action.Action) action.Result {
	r := app.dispatcher.Dispatch(ctx, a)
	app.applyResult(a, r)
	return r
}
