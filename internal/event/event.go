package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single notification delivered through the bus.
type Event struct {
	// Topic is the hierarchical event type.
	Topic Topic

	// Payload carries topic-specific data.
	Payload any

	// ID uniquely identifies this event instance.
	ID string

	// Time is when the event was created.
	Time time.Time

	// Source names the component that published the event.
	Source string
}

// New creates an event with a fresh ID and timestamp.
func New(t Topic, payload any, source string) Event {
	return Event{
		Topic:   t,
		Payload: payload,
		ID:      uuid.NewString(),
		Time:    time.Now(),
		Source:  source,
	}
}

// CellPayload accompanies TopicCellChanged.
type CellPayload struct {
	Row, Col int
	Old, New string
}

// ShapePayload accompanies row/column additions and document resets.
type ShapePayload struct {
	Rows, Cols int
}

// FilePayload accompanies load, save and file change notifications.
type FilePayload struct {
	Path string
	Rows int
	Cols int
}
