package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T) *FSNotifyWatcher {
	t.Helper()
	w, err := NewFSNotifyWatcher(DefaultConfig())
	if err != nil {
		t.Fatalf("NewFSNotifyWatcher error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
}

func TestFSNotifyWatcher_WatchUnwatch(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, path, "a\n")

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch error = %v", err)
	}
	if !w.IsWatching(path) {
		t.Error("should be watching file")
	}
	if err := w.Watch(path); err != ErrAlreadyWatching {
		t.Errorf("Watch again error = %v, want ErrAlreadyWatching", err)
	}

	if err := w.Unwatch(path); err != nil {
		t.Fatalf("Unwatch error = %v", err)
	}
	if w.IsWatching(path) {
		t.Error("should not be watching file after Unwatch")
	}
	if err := w.Unwatch(path); err != ErrNotWatching {
		t.Errorf("Unwatch again error = %v, want ErrNotWatching", err)
	}
}

func TestFSNotifyWatcher_WatchNonexistent(t *testing.T) {
	w := newTestWatcher(t)

	err := w.Watch(filepath.Join(t.TempDir(), "missing.csv"))
	if err != ErrPathNotExist {
		t.Errorf("Watch nonexistent error = %v, want ErrPathNotExist", err)
	}
}

func TestFSNotifyWatcher_ReportsTrackedFileOnly(t *testing.T) {
	w := newTestWatcher(t)
	dir := t.TempDir()
	tracked := filepath.Join(dir, "tracked.csv")
	other := filepath.Join(dir, "other.csv")
	writeFile(t, tracked, "a\n")

	if err := w.Watch(tracked); err != nil {
		t.Fatal(err)
	}

	writeFile(t, other, "x\n")
	writeFile(t, tracked, "b\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Path == other {
				t.Fatalf("received event for untracked file: %+v", ev)
			}
			if ev.Path == tracked {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for event on tracked file")
		}
	}
}

func TestFSNotifyWatcher_Suppress(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, path, "a\n")
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	w.Suppress(path, time.Hour)
	writeFile(t, path, "b\n")

	select {
	case ev := <-w.Events():
		t.Errorf("suppressed write produced event %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFSNotifyWatcher_IgnoresPermissionChanges(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, path, "a\n")
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	now := time.Now()

	if _, ok := w.translate(fsnotify.Event{Name: path, Op: fsnotify.Chmod}, now); ok {
		t.Error("chmod-only event should be dropped")
	}
	ev, ok := w.translate(fsnotify.Event{Name: path, Op: fsnotify.Write | fsnotify.Chmod}, now)
	if !ok || ev.Op != OpWrite {
		t.Errorf("translate = %+v, %v; want a write", ev, ok)
	}
	if _, ok := w.translate(fsnotify.Event{Name: path + ".tmp", Op: fsnotify.Create}, now); ok {
		t.Error("untracked sibling should be dropped")
	}
}

func TestFSNotifyWatcher_Close(t *testing.T) {
	w, err := NewFSNotifyWatcher(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	if err := w.Watch(t.TempDir()); err != ErrWatcherClosed {
		t.Errorf("Watch after Close error = %v, want ErrWatcherClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
		{OpCreate | OpWrite, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestEvent_Removed(t *testing.T) {
	tests := []struct {
		op   Op
		want bool
	}{
		{OpRemove, true},
		{OpRename, true},
		{OpRename | OpCreate, false},
		{OpWrite, false},
	}
	for _, tt := range tests {
		if got := (Event{Op: tt.op}).Removed(); got != tt.want {
			t.Errorf("Event{Op: %b}.Removed() = %v, want %v", tt.op, got, tt.want)
		}
	}
}
