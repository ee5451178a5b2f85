// Package watcher reports changes made to the open CSV file by other
// programs.
//
// Files are watched through their parent directory so that editors which
// save by writing a new file and renaming it over the old one are still
// seen. The burst of events one such save produces is merged by
// DebouncedWatcher, and a save csve makes itself is hidden with Suppress.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// Op is a set of file operations.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

var opNames = map[Op]string{
	OpCreate: "CREATE",
	OpWrite:  "WRITE",
	OpRemove: "REMOVE",
	OpRename: "RENAME",
	OpChmod:  "CHMOD",
}

// String names a single operation; combined sets are "UNKNOWN".
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// Has returns true if op includes o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event is a change to a tracked file.
type Event struct {
	// Path is the absolute path of the file.
	Path string

	// Op holds every operation merged into the event.
	Op Op

	Timestamp time.Time
}

// Removed reports whether the file is gone after this event. A rename
// followed by a create is an atomic save, not a removal.
func (e Event) Removed() bool {
	return e.Op.Has(OpRemove) || (e.Op.Has(OpRename) && !e.Op.Has(OpCreate))
}

// Watcher monitors tracked files.
type Watcher interface {
	// Watch starts tracking a file.
	// Returns ErrAlreadyWatching if the file is already tracked.
	Watch(path string) error

	// Unwatch stops tracking a file.
	// Returns ErrNotWatching if the file isn't tracked.
	Unwatch(path string) error

	// Suppress drops events for path until d has elapsed.
	Suppress(path string, d time.Duration)

	// Events and Errors are closed when the watcher is closed.
	Events() <-chan Event
	Errors() <-chan error

	IsWatching(path string) bool

	Close() error
}

// Config holds watcher settings.
type Config struct {
	// DebounceDelay is how long a file must be quiet before its merged
	// event is delivered.
	DebounceDelay time.Duration

	// BufferSize is the capacity of the event and error channels.
	BufferSize int
}

// DefaultConfig returns the settings used by New.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		BufferSize:    16,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Config) { c.DebounceDelay = d }
}

// WithBufferSize sets the channel capacity.
func WithBufferSize(size int) Option {
	return func(c *Config) { c.BufferSize = size }
}

// New creates a debounced fsnotify watcher.
func New(opts ...Option) (Watcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	inner, err := NewFSNotifyWatcher(config)
	if err != nil {
		return nil, err
	}
	return NewDebouncedWatcher(inner, config.DebounceDelay), nil
}
