package event

import (
	"context"
	"errors"
	"testing"
)

func TestTopic_Matches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"grid.cell.changed", "grid.cell.changed", true},
		{"grid.cell.changed", "grid.*.changed", true},
		{"grid.cell.changed", "grid.*", false},
		{"grid.cell.changed", "grid.**", true},
		{"grid.row.added", "**", true},
		{"grid", "grid.**", true},
		{"document.saved", "grid.**", false},
		{"document.saved", "*.saved", true},
		{"document.saved", "**.saved", true},
		{"document.saved", "document.loaded", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopic_Validate(t *testing.T) {
	valid := []Topic{"a", "a.b", "a.*", "**", "a.**.b"}
	for _, tp := range valid {
		if err := tp.Validate(); err != nil {
			t.Errorf("expected %q to be valid, got %v", tp, err)
		}
	}

	invalid := []Topic{"", "a..b", ".a", "a.b*", "a.***"}
	for _, tp := range invalid {
		if err := tp.Validate(); err == nil {
			t.Errorf("expected %q to be invalid", tp)
		}
	}
}

func TestBus_PublishOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	_, _ = bus.Subscribe("grid.**", func(_ context.Context, ev Event) error {
		order = append(order, "first:"+ev.Topic.String())
		return nil
	})
	_, _ = bus.Subscribe(TopicCellChanged, func(_ context.Context, ev Event) error {
		order = append(order, "second:"+ev.Topic.String())
		return nil
	})
	_, _ = bus.Subscribe("document.*", func(_ context.Context, ev Event) error {
		order = append(order, "unexpected")
		return nil
	})

	if err := bus.Publish(context.Background(), New(TopicCellChanged, CellPayload{Row: 1}, "test")); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if len(order) != 2 || order[0] != "first:grid.cell.changed" || order[1] != "second:grid.cell.changed" {
		t.Errorf("unexpected delivery order %v", order)
	}

	published, delivered := bus.Stats()
	if published != 1 || delivered != 2 {
		t.Errorf("expected stats 1/2, got %d/%d", published, delivered)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0

	sub, err := bus.Subscribe("**", func(context.Context, Event) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}

	if err := bus.Unsubscribe(sub); err != nil {
		t.Fatalf("Unsubscribe error: %v", err)
	}
	_ = bus.Publish(context.Background(), New(TopicRowAdded, nil, "test"))

	if calls != 0 {
		t.Errorf("expected no calls after unsubscribe, got %d", calls)
	}
	if err := bus.Unsubscribe(sub); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestBus_HandlerErrorsAndPanics(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	reached := false

	_, _ = bus.Subscribe("**", func(context.Context, Event) error { return boom })
	_, _ = bus.Subscribe("**", func(context.Context, Event) error { panic("bad handler") })
	_, _ = bus.Subscribe("**", func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(context.Background(), New(TopicDocumentSaved, nil, "test"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected joined error to contain boom, got %v", err)
	}

	var he *HandlerError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HandlerError, got %T", err)
	}
	if !reached {
		t.Error("expected later handlers to run after a failure")
	}
}

func TestBus_SubscribeValidation(t *testing.T) {
	bus := NewBus()

	if _, err := bus.Subscribe("", func(context.Context, Event) error { return nil }); !errors.Is(err, ErrEmptyTopic) {
		t.Errorf("expected ErrEmptyTopic, got %v", err)
	}
	if _, err := bus.Subscribe("grid", nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if bus.SubscriberCount() != 0 {
		t.Errorf("expected no subscribers, got %d", bus.SubscriberCount())
	}
}

func TestNew(t *testing.T) {
	a := New(TopicRowAdded, ShapePayload{Rows: 1, Cols: 2}, "grid")
	b := New(TopicRowAdded, nil, "grid")

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected unique non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.Time.IsZero() {
		t.Error("expected timestamp")
	}
	if p, ok := a.Payload.(ShapePayload); !ok || p.Cols != 2 {
		t.Errorf("unexpected payload %#v", a.Payload)
	}
}
