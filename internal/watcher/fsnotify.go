package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// errEventsFull is reported when a change is dropped because nobody is
// reading Events.
var errEventsFull = errors.New("watcher: event channel full, dropping event")

// FSNotifyWatcher implements Watcher with fsnotify. It watches the parent
// directory of every tracked file and reports only the tracked names.
// Permission-only changes are not reported.
type FSNotifyWatcher struct {
	fsw *fsnotify.Watcher

	mu sync.Mutex
	// tracked maps a directory to the base names tracked in it.
	tracked map[string]map[string]bool
	// quietUntil maps a file to the time its events resume.
	quietUntil map[string]time.Time
	closed     bool

	events   chan Event
	errors   chan error
	loopDone chan struct{}
}

// NewFSNotifyWatcher creates a watcher and starts reading fsnotify events.
func NewFSNotifyWatcher(config Config) (*FSNotifyWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	size := config.BufferSize
	if size <= 0 {
		size = DefaultConfig().BufferSize
	}

	w := &FSNotifyWatcher{
		fsw:        fsw,
		tracked:    make(map[string]map[string]bool),
		quietUntil: make(map[string]time.Time),
		events:     make(chan Event, size),
		errors:     make(chan error, size),
		loopDone:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// split returns the directory and base name of the absolute form of path.
func split(path string) (dir, name string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	return filepath.Dir(abs), filepath.Base(abs), nil
}

// Watch starts tracking a file, which must exist.
func (w *FSNotifyWatcher) Watch(path string) error {
	dir, name, err := split(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrPathNotExist
		}
		return err
	}

	names := w.tracked[dir]
	if names[name] {
		return ErrAlreadyWatching
	}
	if names == nil {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		names = make(map[string]bool)
		w.tracked[dir] = names
	}
	names[name] = true
	return nil
}

// Unwatch stops tracking a file. The directory watch is released with its
// last tracked file.
func (w *FSNotifyWatcher) Unwatch(path string) error {
	dir, name, err := split(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	names := w.tracked[dir]
	if !names[name] {
		return ErrNotWatching
	}

	delete(names, name)
	delete(w.quietUntil, filepath.Join(dir, name))
	if len(names) > 0 {
		return nil
	}
	delete(w.tracked, dir)
	return w.fsw.Remove(dir)
}

// Suppress drops events for path until d has elapsed.
func (w *FSNotifyWatcher) Suppress(path string, d time.Duration) {
	dir, name, err := split(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	w.quietUntil[filepath.Join(dir, name)] = time.Now().Add(d)
	w.mu.Unlock()
}

// Events returns the event channel.
func (w *FSNotifyWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel.
func (w *FSNotifyWatcher) Errors() <-chan error {
	return w.errors
}

// IsWatching returns true if the file is tracked.
func (w *FSNotifyWatcher) IsWatching(path string) bool {
	dir, name, err := split(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tracked[dir][name]
}

// Close stops the watcher. Events and Errors are closed once the pending
// fsnotify events are drained.
func (w *FSNotifyWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.loopDone
	return err
}

// loop runs until fsnotify closes both of its channels.
func (w *FSNotifyWatcher) loop() {
	defer close(w.loopDone)
	defer close(w.errors)
	defer close(w.events)

	fsEvents, fsErrors := w.fsw.Events, w.fsw.Errors
	for fsEvents != nil || fsErrors != nil {
		select {
		case ev, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			if out, ok := w.translate(ev, time.Now()); ok {
				w.send(out)
			}
		case err, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}
			w.report(err)
		}
	}
}

// translate converts an fsnotify event for a tracked, unsuppressed file.
func (w *FSNotifyWatcher) translate(ev fsnotify.Event, now time.Time) (Event, bool) {
	op := convertOp(ev.Op) &^ OpChmod
	if op == 0 {
		return Event{}, false
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.tracked[filepath.Dir(path)][filepath.Base(path)] {
		return Event{}, false
	}
	if until, ok := w.quietUntil[path]; ok {
		if now.Before(until) {
			return Event{}, false
		}
		delete(w.quietUntil, path)
	}
	return Event{Path: path, Op: op, Timestamp: now}, true
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	for _, m := range []struct {
		from fsnotify.Op
		to   Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Chmod, OpChmod},
	} {
		if fsOp.Has(m.from) {
			op |= m.to
		}
	}
	return op
}

func (w *FSNotifyWatcher) send(ev Event) {
	select {
	case w.events <- ev:
	default:
		w.report(errEventsFull)
	}
}

func (w *FSNotifyWatcher) report(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Ensure FSNotifyWatcher implements Watcher.
var _ Watcher = (*FSNotifyWatcher)(nil)
