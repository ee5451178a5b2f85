package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Handler processes an event. A returned error is reported to the publisher
// but does not stop delivery to other handlers.
type Handler func(ctx context.Context, ev Event) error

// Subscription identifies a registered handler.
type Subscription struct {
	ID      string
	Pattern Topic
}

type subscriber struct {
	sub     Subscription
	handler Handler
}

// Publisher is the publishing half of the bus, used by components that only
// emit events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Bus is a synchronous topic-based event bus.
// It is safe for concurrent use; handlers run on the publishing goroutine.
type Bus struct {
	mu          sync.RWMutex
	subscribers []subscriber

	published uint64
	delivered uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Ensure Bus implements Publisher.
var _ Publisher = (*Bus)(nil)

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler) (Subscription, error) {
	if err := pattern.Validate(); err != nil {
		return Subscription{}, err
	}
	if handler == nil {
		return Subscription{}, ErrNilHandler
	}

	sub := Subscription{ID: uuid.NewString(), Pattern: pattern}

	b.mu.Lock()
	b.subscribers = append(b.subscribers, subscriber{sub: sub, handler: handler})
	b.mu.Unlock()

	return sub, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s.sub.ID == sub.ID {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers ev to every matching handler and returns the joined
// handler errors, if any.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if ev.Topic == "" {
		return ErrEmptyTopic
	}

	b.mu.Lock()
	b.published++
	matching := make([]subscriber, 0, len(b.subscribers))
	for _, s := range b.subscribers {
		if ev.Topic.Matches(s.sub.Pattern) {
			matching = append(matching, s)
		}
	}
	b.delivered += uint64(len(matching))
	b.mu.Unlock()

	var errs []error
	for _, s := range matching {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := invoke(ctx, s, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func invoke(ctx context.Context, s subscriber, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerError{
				Topic:          ev.Topic,
				SubscriptionID: s.sub.ID,
				Err:            fmt.Errorf("%v", r),
				Panicked:       true,
			}
		}
	}()

	if herr := s.handler(ctx, ev); herr != nil {
		return &HandlerError{Topic: ev.Topic, SubscriptionID: s.sub.ID, Err: herr}
	}
	return nil
}

// Stats reports how many events were published and handler deliveries made.
func (b *Bus) Stats() (published, delivered uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.published, b.delivered
}

// SubscriberCount returns the number of registered subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
