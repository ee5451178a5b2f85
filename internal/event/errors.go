package event

import (
	"errors"
	"fmt"
)

// Event bus errors.
var (
	// ErrEmptyTopic indicates an empty topic or pattern.
	ErrEmptyTopic = errors.New("empty topic")

	// ErrInvalidTopic indicates a malformed topic or pattern.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler indicates a subscription without a handler.
	ErrNilHandler = errors.New("nil handler")

	// ErrSubscriptionNotFound indicates an unknown subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// HandlerError wraps an error returned or panic raised by a handler.
type HandlerError struct {
	Topic          Topic
	SubscriptionID string
	Err            error
	Panicked       bool
}

func (e *HandlerError) Error() string {
	if e.Panicked {
		return fmt.Sprintf("handler %s panicked on %s: %v", e.SubscriptionID, e.Topic, e.Err)
	}
	return fmt.Sprintf("handler %s failed on %s: %v", e.SubscriptionID, e.Topic, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
