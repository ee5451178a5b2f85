package script

import (
	"errors"

	lua "github.com/yuin/gopher-lua"
)

// Engine errors.
var (
	// ErrClosed is returned when running code on a closed engine.
	ErrClosed = errors.New("script engine is closed")

	// ErrTimeout is returned when a script runs past the execution timeout.
	ErrTimeout = errors.New("script execution timeout")

	// ErrRecursion is returned when event handlers trigger each other
	// deeper than the engine allows.
	ErrRecursion = errors.New("script handlers nested too deeply")

	// ErrPanic indicates the interpreter panicked.
	ErrPanic = errors.New("script panic")
)

// Error is a failed script run.
type Error struct {
	// Chunk names the code that failed: a file name, "command" or the
	// event topic a handler was running for.
	Chunk string
	Err   error
}

// Error returns the Lua error message without the stack trace.
func (e *Error) Error() string {
	msg := e.Err.Error()
	var api *lua.ApiError
	if errors.As(e.Err, &api) && api.Object != nil {
		msg = api.Object.String()
	}
	return "lua " + e.Chunk + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
