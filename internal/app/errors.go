package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuit is returned by Run after app.quit.
	ErrQuit = errors.New("quit requested")

	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend is returned by New without Options.Backend.
	ErrNoBackend = errors.New("no display backend")
)

// withCause appends ": err" to msg when err is set.
func withCause(msg string, err error) string {
	if err == nil {
		return msg
	}
	return msg + ": " + err.Error()
}

// OperationError is a failed action, logged by the dispatcher post-hook.
type OperationError struct {
	Op     string // action name, e.g. "file.save"
	Target string // file path, if the action had one
	Err    error
}

func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	return withCause(strings.TrimSpace(e.Op+" "+e.Target), e.Err)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ComponentError is a failure inside one of the supporting components
// (watcher, script, log) that does not stop the editor.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Component
	if e.Action != "" {
		msg += ": " + e.Action
	}
	return withCause(msg, e.Err)
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InitError is a component that failed to start; New and Run return it.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return withCause("init "+e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// RecoveredPanicError is a panic caught while handling one event. The
// stack goes to the log, not the status line.
type RecoveredPanicError struct {
	Value any
	Stack string
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("panic: %v", e.Value)
}
