package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakePublisher records the events it receives.
type fakePublisher struct {
	id     string
	err    error
	events []Event
}

func (f *fakePublisher) ID() string   { return f.id }
func (f *fakePublisher) Type() string { return "fake" }

func (f *fakePublisher) Publish(_ context.Context, evt Event) error {
	f.events = append(f.events, evt)
	return f.err
}

func TestFanoutPublishesToAll(t *testing.T) {
	a := &fakePublisher{id: "a"}
	b := &fakePublisher{id: "b"}
	fanout := NewFanout([]Publisher{a, nil, b})

	if fanout.Size() != 2 {
		t.Fatalf("Size = %d, want 2 (nil publisher dropped)", fanout.Size())
	}

	evt := NewEvent("abc123", "https://example.com/items/abc123", "title", "/tmp/qiita_abc123.md", "zh-TW")
	n, err := fanout.Publish(context.Background(), evt)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if n != 2 {
		t.Fatalf("successful = %d, want 2", n)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("events not fanned out: a=%d b=%d", len(a.events), len(b.events))
	}
	if a.events[0].SourceID != "abc123" {
		t.Fatalf("event payload wrong: %#v", a.events[0])
	}
}

func TestFanoutCollectsFailuresWithoutAborting(t *testing.T) {
	ok := &fakePublisher{id: "ok"}
	bad := &fakePublisher{id: "bad", err: errors.New("sink down")}
	fanout := NewFanout([]Publisher{bad, ok})

	n, err := fanout.Publish(context.Background(), Event{SourceID: "x"})
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if !strings.Contains(err.Error(), "event x") || !strings.Contains(err.Error(), "publisher[bad]") {
		t.Fatalf("error should name the event and the failing sink: %v", err)
	}
	if n != 1 {
		t.Fatalf("successful = %d, want 1", n)
	}
	if len(ok.events) != 1 {
		t.Fatalf("healthy publisher must still receive the event")
	}
}

func TestFanoutStopsOnCancelledContext(t *testing.T) {
	a := &fakePublisher{id: "a"}
	fanout := NewFanout([]Publisher{a})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := fanout.Publish(ctx, Event{SourceID: "x"})
	if err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if n != 0 || len(a.events) != 0 {
		t.Fatalf("no sink should be reached after cancellation: n=%d delivered=%d", n, len(a.events))
	}
}

func TestFanoutEmptyIsNoop(t *testing.T) {
	var fanout *Fanout
	if n, err := fanout.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout: n=%d err=%v", n, err)
	}
}
