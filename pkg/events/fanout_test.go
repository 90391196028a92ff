package events

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id    string
	typ   string
	err   error
	calls int
	last  Event
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(_ context.Context, evt Event) error {
	s.calls++
	s.last = evt
	return s.err
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	ok := &stubPublisher{id: "ok", typ: "http"}
	bad := &stubPublisher{id: "bad", typ: "http", err: errors.New("failed")}
	fanout := NewFanout([]Publisher{ok, bad})

	count, err := fanout.Publish(context.Background(), Event{CapabilityID: "screenshot"})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("all sinks should be attempted: ok=%d bad=%d", ok.calls, bad.calls)
	}
	if ok.last.CapabilityID != "screenshot" {
		t.Fatalf("event not forwarded: %#v", ok.last)
	}
}

func TestFanoutSkipsNilPublishers(t *testing.T) {
	fanout := NewFanout([]Publisher{nil, &stubPublisher{id: "a", typ: "log"}})
	if fanout.Size() != 1 {
		t.Fatalf("Size = %d", fanout.Size())
	}
}

type closablePublisher struct {
	stubPublisher
	closed   bool
	closeErr error
}

func (c *closablePublisher) Close() error {
	c.closed = true
	return c.closeErr
}

func TestFanoutCloseReleasesClosableSinks(t *testing.T) {
	closable := &closablePublisher{stubPublisher: stubPublisher{id: "pubsub", typ: "gcp_pubsub"}}
	plain := &stubPublisher{id: "log", typ: "log"}
	fanout := NewFanout([]Publisher{closable, plain})

	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closable.closed {
		t.Fatalf("closable sink was not closed")
	}
}

func TestFanoutCloseAggregatesErrors(t *testing.T) {
	bad := &closablePublisher{
		stubPublisher: stubPublisher{id: "pubsub", typ: "gcp_pubsub"},
		closeErr:      errors.New("close failed"),
	}
	fanout := NewFanout([]Publisher{bad})

	if err := fanout.Close(); err == nil {
		t.Fatalf("expected close error to surface")
	}
	if !bad.closed {
		t.Fatalf("close was not attempted")
	}
}

func TestFanoutEmptyIsNoop(t *testing.T) {
	fanout := NewFanout(nil)
	count, err := fanout.Publish(context.Background(), Event{})
	if count != 0 || err != nil {
		t.Fatalf("count=%d err=%v", count, err)
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []SinkConfig{
		{ID: "log", Type: TypeLog},
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPSinkConfig{URL: "https://example.com", TimeoutSeconds: 1}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 2 {
		t.Fatalf("expected 2 publishers, got %d", len(pubs))
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := BuildAll(context.Background(), reg, []SinkConfig{
		{ID: "x", Type: "kafka"},
	}, nil); err == nil {
		t.Fatalf("expected error for unregistered sink type")
	}
}
