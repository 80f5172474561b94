package feed

import (
	"fmt"
	"testing"

	"flakwall/internal/weblog"
)

func event(id string) weblog.Event {
	return weblog.Event{ID: id, Path: "/", Status: 200}
}

func TestJournal_AppendAndSince(t *testing.T) {
	j := NewJournal(10)

	j.Append(event("a"), event("b"))
	events, cursor := j.Since(0)
	if len(events) != 2 || events[0].ID != "a" || events[1].ID != "b" {
		t.Fatalf("Since(0) = %v, want [a b]", events)
	}
	if cursor != 2 {
		t.Fatalf("cursor = %d, want 2", cursor)
	}

	// No new events: same cursor, nothing returned.
	events, cursor = j.Since(cursor)
	if len(events) != 0 || cursor != 2 {
		t.Fatalf("Since(2) = %v cursor %d, want empty cursor 2", events, cursor)
	}

	j.Append(event("c"))
	events, cursor = j.Since(cursor)
	if len(events) != 1 || events[0].ID != "c" || cursor != 3 {
		t.Fatalf("Since(2) after append = %v cursor %d, want [c] 3", events, cursor)
	}
}

func TestJournal_EvictionKeepsCursorMonotonic(t *testing.T) {
	j := NewJournal(3)
	for i := 0; i < 10; i++ {
		j.Append(event(fmt.Sprintf("e%d", i)))
	}

	if j.Len() != 3 {
		t.Fatalf("Len = %d, want 3 after eviction", j.Len())
	}

	// A cursor pointing into the evicted region skips forward, never
	// re-delivering old sequence numbers.
	events, cursor := j.Since(1)
	if len(events) != 3 || events[0].ID != "e7" {
		t.Fatalf("Since(1) = %v, want window [e7 e8 e9]", events)
	}
	if cursor != 10 {
		t.Fatalf("cursor = %d, want 10", cursor)
	}
}

func TestJournal_SnapshotIsCopy(t *testing.T) {
	j := NewJournal(5)
	j.Append(event("a"))

	snap := j.Snapshot()
	snap[0].ID = "mutated"

	again := j.Snapshot()
	if again[0].ID != "a" {
		t.Fatalf("journal contents changed through snapshot: %q", again[0].ID)
	}
}

func TestJournal_SinceReturnsCopies(t *testing.T) {
	j := NewJournal(5)
	j.Append(event("a"))

	events, _ := j.Since(0)
	events[0].ID = "mutated"

	again, _ := j.Since(0)
	if again[0].ID != "a" {
		t.Fatalf("journal contents changed through Since slice: %q", again[0].ID)
	}
}
