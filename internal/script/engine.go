// Package script runs user Lua code against the open grid.
//
// Each Engine owns one sandboxed gopher-lua state with only the base,
// table, string and math libraries. Scripts see two globals: grid, for
// reading and editing cells, and csve, for event hooks and status
// messages. An Engine is not safe for concurrent use; the application
// calls it from its event loop only.
package script

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/csve/internal/event"
	"github.com/dshills/csve/internal/vfs"
)

const (
	// DefaultTimeout bounds a single top-level run.
	DefaultTimeout = 2 * time.Second

	// maxDepth bounds handlers publishing events that run handlers.
	maxDepth = 8
)

// Grid is the document surface exposed to scripts.
type Grid interface {
	RowCount() int
	ColumnCount() int
	Cell(row, col int) (string, error)
	SetCell(row, col int, value string) error
	AddRow()
	AddColumn()
	Path() string
}

// Subscriber registers event handlers.
type Subscriber interface {
	Subscribe(pattern event.Topic, handler event.Handler) (event.Subscription, error)
	Unsubscribe(sub event.Subscription) error
}

// Engine is a sandboxed Lua interpreter bound to one grid.
type Engine struct {
	L       *lua.LState
	grid    Grid
	bus     Subscriber
	fs      vfs.VFS
	message func(string)
	timeout time.Duration

	subs   map[string]event.Subscription
	depth  int
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithBus enables csve.on and csve.off.
func WithBus(bus Subscriber) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithFS sets the file system used by DoFile.
func WithFS(fsys vfs.VFS) Option {
	return func(e *Engine) {
		if fsys != nil {
			e.fs = fsys
		}
	}
}

// WithMessageHandler receives text from csve.message and print.
func WithMessageHandler(fn func(string)) Option {
	return func(e *Engine) {
		e.message = fn
	}
}

// WithTimeout sets the execution timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// New creates an engine for g.
func New(g Grid, opts ...Option) *Engine {
	e := &Engine{
		grid:    g,
		fs:      vfs.NewOSFS(),
		timeout: DefaultTimeout,
		subs:    make(map[string]event.Subscription),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.install()
	return e
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	L.SetTop(0)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoString runs code. The chunk is named "command" in error messages.
func (e *Engine) DoString(ctx context.Context, code string) error {
	_, err := e.run(ctx, "command", code, false)
	return err
}

// DoFile reads and runs the script at path.
func (e *Engine) DoFile(ctx context.Context, path string) error {
	if e.closed {
		return ErrClosed
	}
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	_, err = e.run(ctx, filepath.Base(path), string(data), false)
	return err
}

// Eval runs code and returns its results joined by tabs. An expression
// such as "grid.rows() * 2" is evaluated as if preceded by return.
func (e *Engine) Eval(ctx context.Context, code string) (string, error) {
	results, err := e.run(ctx, "command", code, true)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(results))
	for i, v := range results {
		parts[i] = e.L.ToStringMeta(v).String()
	}
	return strings.Join(parts, "\t"), nil
}

func (e *Engine) run(ctx context.Context, chunk, code string, expr bool) ([]lua.LValue, error) {
	if e.closed {
		return nil, ErrClosed
	}
	var (
		fn  *lua.LFunction
		err error
	)
	if expr {
		fn, err = e.L.Load(strings.NewReader("return "+code), chunk)
	}
	if fn == nil {
		fn, err = e.L.Load(strings.NewReader(code), chunk)
		if err != nil {
			return nil, &Error{Chunk: chunk, Err: err}
		}
	}
	return e.call(ctx, chunk, fn)
}

// call runs fn under the execution timeout. Nested calls made from event
// handlers share the timeout of the outermost call.
func (e *Engine) call(ctx context.Context, chunk string, fn *lua.LFunction, args ...lua.LValue) (results []lua.LValue, err error) {
	if e.depth >= maxDepth {
		return nil, &Error{Chunk: chunk, Err: ErrRecursion}
	}

	var runCtx context.Context
	if e.depth == 0 {
		var cancel context.CancelFunc
		runCtx, cancel = ctx, func() {}
		if e.timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		}
		defer cancel()
		e.L.SetContext(runCtx)
		defer e.L.RemoveContext()
	}

	e.depth++
	top := e.L.GetTop()
	defer func() {
		e.depth--
		if r := recover(); r != nil {
			e.L.SetTop(top)
			results, err = nil, &Error{Chunk: chunk, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	e.L.Push(fn)
	for _, a := range args {
		e.L.Push(a)
	}
	if perr := e.L.PCall(len(args), lua.MultRet, nil); perr != nil {
		e.L.SetTop(top)
		if runCtx != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Chunk: chunk, Err: ErrTimeout}
		}
		return nil, &Error{Chunk: chunk, Err: perr}
	}

	n := e.L.GetTop() - top
	results = make([]lua.LValue, n)
	for i := range n {
		results[i] = e.L.Get(top + 1 + i)
	}
	e.L.SetTop(top)
	return results, nil
}

// Subscriptions returns the number of active csve.on handlers.
func (e *Engine) Subscriptions() int {
	return len(e.subs)
}

// Close removes every event handler and releases the interpreter.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	if e.bus != nil {
		for id, sub := range e.subs {
			if err := e.bus.Unsubscribe(sub); err != nil {
				errs = append(errs, err)
			}
			delete(e.subs, id)
		}
	}
	e.L.Close()
	return errors.Join(errs...)
}
