package action

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("action: no handler for action")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("action: handler panic")
)

// Handler executes actions.
type Handler interface {
	Handle(ctx context.Context, a Action) Result
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, a Action) Result

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, a Action) Result {
	return f(ctx, a)
}

// PreHook runs before an action is dispatched. Returning false stops the
// dispatch and the returned result is used instead.
type PreHook func(ctx context.Context, a Action) (Result, bool)

// PostHook runs after an action has been handled.
type PostHook func(ctx context.Context, a Action, r Result)

// Dispatcher routes actions to handlers by exact name, falling back to a
// handler registered for the action's namespace.
type Dispatcher struct {
	mu         sync.RWMutex
	handlers   map[string]Handler
	namespaces map[string]Handler
	pre        []PreHook
	post       []PostHook
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers:   make(map[string]Handler),
		namespaces: make(map[string]Handler),
	}
}

// Register sets the handler for an action name, replacing any previous one.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// RegisterFunc registers a function as the handler for name.
func (d *Dispatcher) RegisterFunc(name string, fn func(ctx context.Context, a Action) Result) {
	d.Register(name, HandlerFunc(fn))
}

// RegisterNamespace sets the fallback handler for every action whose name
// starts with ns followed by a dot.
func (d *Dispatcher) RegisterNamespace(ns string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.namespaces[ns] = h
}

// AddPreHook appends a pre-dispatch hook.
func (d *Dispatcher) AddPreHook(h PreHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pre = append(d.pre, h)
}

// AddPostHook appends a post-dispatch hook.
func (d *Dispatcher) AddPostHook(h PostHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.post = append(d.post, h)
}

// CanHandle reports whether a handler exists for name.
func (d *Dispatcher) CanHandle(name string) bool {
	return d.lookup(Action{Name: name}) != nil
}

// Dispatch executes a through its handler. Handler panics are recovered
// into error results.
func (d *Dispatcher) Dispatch(ctx context.Context, a Action) Result {
	d.mu.RLock()
	pre := append([]PreHook(nil), d.pre...)
	post := append([]PostHook(nil), d.post...)
	d.mu.RUnlock()

	for _, hook := range pre {
		if r, ok := hook(ctx, a); !ok {
			return r
		}
	}

	var result Result
	if h := d.lookup(a); h == nil {
		result = Error(fmt.Errorf("%w: %s", ErrNoHandler, a.Name))
	} else {
		result = execute(ctx, h, a)
	}

	for _, hook := range post {
		hook(ctx, a, result)
	}
	return result
}

func (d *Dispatcher) lookup(a Action) Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if h, ok := d.handlers[a.Name]; ok {
		return h
	}
	return d.namespaces[a.Namespace()]
}

func execute(ctx context.Context, h Handler, a Action) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			result = Error(fmt.Errorf("%w: %s: %v\n%s", ErrPanic, a.Name, r, stack[:n]))
			result.Message = fmt.Sprintf("%s failed: %v", a.Name, r)
		}
	}()
	return h.Handle(ctx, a)
}
