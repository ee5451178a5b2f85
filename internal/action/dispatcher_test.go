package action

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDispatchExactHandler(t *testing.T) {
	d := NewDispatcher()
	var got Action
	d.RegisterFunc(GridAddRow, func(_ context.Context, a Action) Result {
		got = a
		return Successf("ok")
	})

	r := d.Dispatch(context.Background(), New(GridAddRow))
	if !r.IsOK() || r.Message != "ok" {
		t.Errorf("result = %+v", r)
	}
	if got.Name != GridAddRow {
		t.Errorf("handler saw %q", got.Name)
	}
}

func TestDispatchNamespaceFallback(t *testing.T) {
	d := NewDispatcher()
	var names []string
	d.RegisterNamespace("cursor", HandlerFunc(func(_ context.Context, a Action) Result {
		names = append(names, a.Name)
		return Success()
	}))
	d.RegisterFunc(CursorUp, func(context.Context, Action) Result {
		return Successf("exact")
	})

	if r := d.Dispatch(context.Background(), New(CursorUp)); r.Message != "exact" {
		t.Errorf("exact handler should win, got %+v", r)
	}
	d.Dispatch(context.Background(), New(CursorDown))
	if len(names) != 1 || names[0] != CursorDown {
		t.Errorf("namespace handler saw %v", names)
	}
	if !d.CanHandle(CursorLeft) {
		t.Error("CanHandle(cursor.left) = false")
	}
	if d.CanHandle("grid.delete") {
		t.Error("CanHandle(grid.delete) = true")
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := NewDispatcher()
	r := d.Dispatch(context.Background(), New("nope.nothing"))
	if !r.IsError() || !errors.Is(r.Err, ErrNoHandler) {
		t.Errorf("result = %+v, want ErrNoHandler", r)
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	d := NewDispatcher()
	d.RegisterFunc(CellSet, func(context.Context, Action) Result {
		panic("boom")
	})

	r := d.Dispatch(context.Background(), New(CellSet))
	if !r.IsError() || !errors.Is(r.Err, ErrPanic) {
		t.Fatalf("result = %+v, want ErrPanic", r)
	}
	if !strings.Contains(r.Message, "boom") {
		t.Errorf("message = %q", r.Message)
	}
}

func TestDispatchHooks(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.RegisterFunc(FileNew, func(context.Context, Action) Result {
		calls++
		return Success()
	})
	d.AddPreHook(func(_ context.Context, a Action) (Result, bool) {
		if a.Discards() {
			return NeedConfirm("discard?"), false
		}
		return Result{}, true
	})
	var seen []Status
	d.AddPostHook(func(_ context.Context, _ Action, r Result) {
		seen = append(seen, r.Status)
	})

	r := d.Dispatch(context.Background(), New(FileNew))
	if !r.NeedsConfirm || calls != 0 {
		t.Errorf("pre hook should stop dispatch, result %+v calls %d", r, calls)
	}
	if len(seen) != 0 {
		t.Errorf("post hooks should not run for stopped dispatch, saw %v", seen)
	}

	forced := New(FileNew)
	forced.Args.Force = true
	r = d.Dispatch(context.Background(), forced)
	if !r.IsOK() || calls != 1 {
		t.Errorf("forced dispatch result %+v calls %d", r, calls)
	}
	if len(seen) != 1 || seen[0] != StatusOK {
		t.Errorf("post hooks saw %v", seen)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusOK:        "ok",
		StatusNoOp:      "no-op",
		StatusError:     "error",
		StatusCancelled: "cancelled",
		Status(99):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}
