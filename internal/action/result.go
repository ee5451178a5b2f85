package action

import "fmt"

// Status indicates the outcome of an action.
type Status uint8

const (
	// StatusOK indicates successful execution.
	StatusOK Status = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates the user backed out.
	StatusCancelled
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status Status

	// Err contains any error that occurred.
	Err error

	// Message is an optional status message for display.
	Message string

	// NeedsPath asks the UI to prompt for a path and re-run the action
	// with it.
	NeedsPath bool

	// NeedsConfirm asks the UI for a yes/no answer and re-run the action
	// with Force set on yes.
	NeedsConfirm bool
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// Successf creates a successful result with a formatted message.
func Successf(format string, args ...any) Result {
	return Result{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Cancelled creates a cancelled result.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Err: err, Message: err.Error()}
}

// Errorf creates an error result from a format string.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// NeedPath creates a result asking the UI for a path.
func NeedPath(prompt string) Result {
	return Result{Status: StatusNoOp, NeedsPath: true, Message: prompt}
}

// NeedConfirm creates a result asking the UI for confirmation.
func NeedConfirm(question string) Result {
	return Result{Status: StatusCancelled, NeedsConfirm: true, Message: question}
}
