package sinks

import (
	"context"
	"testing"

	"stardrift/engine/logging"
)

func TestMemorySinkBuffersAndFilters(t *testing.T) {
	s := NewMemorySink()
	s.Publish(context.Background(), logging.Event{Type: "a", Turn: 1})
	s.Publish(context.Background(), logging.Event{Type: "b", Turn: 1})
	s.Publish(context.Background(), logging.Event{Type: "a", Turn: 2})

	if got := len(s.Events()); got != 3 {
		t.Fatalf("events = %d, want 3", got)
	}
	if got := len(s.EventsOfType("a")); got != 2 {
		t.Fatalf("type-a events = %d, want 2", got)
	}

	s.Reset()
	if got := len(s.Events()); got != 0 {
		t.Fatalf("events after reset = %d, want 0", got)
	}
}

func TestMemorySinkIsolatesStoredEvents(t *testing.T) {
	s := NewMemorySink()
	extra := map[string]any{"key": "before"}
	s.Publish(context.Background(), logging.Event{Type: "a", Extra: extra})
	extra["key"] = "after"

	if got := s.Events()[0].Extra["key"]; got != "before" {
		t.Fatalf("stored extra = %v, want snapshot at publish time", got)
	}
}
