package watcher

import (
	"sync"
	"time"
)

// DebouncedWatcher wraps a Watcher and merges the burst of events an editor
// save produces (rename, create, write) into one event per file.
//
// A single goroutine owns the pending events and the one timer; the
// exported methods reach that state by sending it a request.
type DebouncedWatcher struct {
	inner Watcher
	delay time.Duration

	events   chan Event
	errors   chan error
	requests chan func(*pendingSet)

	done      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
}

// pendingSet holds the merged, not yet delivered event of each file and
// when it becomes due.
type pendingSet struct {
	events map[string]Event
	due    map[string]time.Time
}

func (s *pendingSet) add(ev Event, due time.Time) {
	if prev, ok := s.events[ev.Path]; ok {
		ev.Op |= prev.Op
	}
	s.events[ev.Path] = ev
	s.due[ev.Path] = due
}

func (s *pendingSet) drop(path string) {
	delete(s.events, path)
	delete(s.due, path)
}

// next returns the earliest due time.
func (s *pendingSet) next() (time.Time, bool) {
	var first time.Time
	for _, t := range s.due {
		if first.IsZero() || t.Before(first) {
			first = t
		}
	}
	return first, !first.IsZero()
}

// NewDebouncedWatcher wraps inner. An event is delivered once its file has
// been quiet for delay.
func NewDebouncedWatcher(inner Watcher, delay time.Duration) *DebouncedWatcher {
	if delay <= 0 {
		delay = DefaultConfig().DebounceDelay
	}
	dw := &DebouncedWatcher{
		inner:    inner,
		delay:    delay,
		events:   make(chan Event, DefaultConfig().BufferSize),
		errors:   make(chan error, DefaultConfig().BufferSize),
		requests: make(chan func(*pendingSet)),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	go dw.loop()
	return dw
}

func (dw *DebouncedWatcher) loop() {
	defer close(dw.loopDone)

	set := &pendingSet{events: make(map[string]Event), due: make(map[string]time.Time)}
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	innerEvents, innerErrors := dw.inner.Events(), dw.inner.Errors()
	for {
		select {
		case <-dw.done:
			return

		case ev, ok := <-innerEvents:
			if !ok {
				return
			}
			set.add(ev, time.Now().Add(dw.delay))

		case err, ok := <-innerErrors:
			if !ok {
				return
			}
			select {
			case dw.errors <- err:
			default:
			}

		case req := <-dw.requests:
			req(set)

		case now := <-timer.C:
			for path, due := range set.due {
				if !now.Before(due) {
					dw.emit(set.events[path])
					set.drop(path)
				}
			}
		}

		if next, ok := set.next(); ok {
			timer.Reset(time.Until(next))
		} else {
			timer.Stop()
		}
	}
}

// emit runs on the loop goroutine only; Close closes events after the
// loop has returned.
func (dw *DebouncedWatcher) emit(ev Event) {
	select {
	case dw.events <- ev:
	default:
	}
}

// do runs fn on the loop goroutine and waits for it. After Close it does
// nothing.
func (dw *DebouncedWatcher) do(fn func(*pendingSet)) {
	reply := make(chan struct{})
	select {
	case dw.requests <- func(s *pendingSet) { fn(s); close(reply) }:
		<-reply
	case <-dw.loopDone:
	}
}

// Watch starts tracking a file.
func (dw *DebouncedWatcher) Watch(path string) error {
	return dw.inner.Watch(path)
}

// Unwatch stops tracking a file and forgets its pending event.
func (dw *DebouncedWatcher) Unwatch(path string) error {
	dw.do(func(s *pendingSet) { s.drop(path) })
	return dw.inner.Unwatch(path)
}

// Suppress drops events for path until d has elapsed, including a pending
// one.
func (dw *DebouncedWatcher) Suppress(path string, d time.Duration) {
	dw.do(func(s *pendingSet) { s.drop(path) })
	dw.inner.Suppress(path, d)
}

// Events returns the debounced event channel.
func (dw *DebouncedWatcher) Events() <-chan Event {
	return dw.events
}

// Errors returns the error channel of the inner watcher.
func (dw *DebouncedWatcher) Errors() <-chan error {
	return dw.errors
}

// IsWatching returns true if the file is tracked.
func (dw *DebouncedWatcher) IsWatching(path string) bool {
	return dw.inner.IsWatching(path)
}

// Flush delivers every pending event now. The events are on the channel
// when Flush returns.
func (dw *DebouncedWatcher) Flush() {
	dw.do(func(s *pendingSet) {
		for path, ev := range s.events {
			dw.emit(ev)
			s.drop(path)
		}
	})
}

// PendingCount returns the number of files with an undelivered event.
func (dw *DebouncedWatcher) PendingCount() int {
	n := 0
	dw.do(func(s *pendingSet) { n = len(s.events) })
	return n
}

// Close drops pending events and closes the inner watcher.
func (dw *DebouncedWatcher) Close() error {
	var err error
	dw.closeOnce.Do(func() {
		close(dw.done)
		<-dw.loopDone
		close(dw.events)
		close(dw.errors)
		err = dw.inner.Close()
	})
	return err
}

// Ensure DebouncedWatcher implements Watcher.
var _ Watcher = (*DebouncedWatcher)(nil)
