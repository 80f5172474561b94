package feed

import (
	"sync"

	"flakwall/internal/weblog"
)

// Journal is the shared append-only window of recent log events. Producers
// append, consumers poll with a cursor. The window is capped; old events are
// evicted but cursors keep advancing, so a consumer never sees the same
// event twice even after truncation.
type Journal struct {
	mu     sync.RWMutex
	events []weblog.Event
	base   uint64 // sequence of events[0]
	next   uint64 // sequence the next appended event receives
	cap    int
}

const defaultJournalCap = 500

// NewJournal builds a journal retaining at most capacity events.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = defaultJournalCap
	}
	return &Journal{cap: capacity}
}

// Append adds events to the window, evicting the oldest beyond the cap.
func (j *Journal) Append(events ...weblog.Event) {
	if len(events) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	j.events = append(j.events, events...)
	j.next += uint64(len(events))
	if over := len(j.events) - j.cap; over > 0 {
		j.events = append(j.events[:0], j.events[over:]...)
		j.base += uint64(over)
	}
}

// Since returns copies of all events with sequence >= cursor, plus the
// cursor to use on the next call. Events evicted before the cursor are
// silently skipped.
func (j *Journal) Since(cursor uint64) ([]weblog.Event, uint64) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if cursor >= j.next {
		return nil, j.next
	}
	if cursor < j.base {
		cursor = j.base
	}
	tail := j.events[cursor-j.base:]
	out := make([]weblog.Event, len(tail))
	copy(out, tail)
	return out, j.next
}

// Snapshot returns a copy of the full current window, oldest first.
func (j *Journal) Snapshot() []weblog.Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]weblog.Event, len(j.events))
	copy(out, j.events)
	return out
}

// Len reports the number of events currently retained.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.events)
}
