// Package stats aggregates the live request statistics shown next to the
// visualization: totals by status class, top request paths, and a sliding
// requests-per-second rate.
package stats

import (
	"sort"
	"sync"
	"time"

	"flakwall/internal/weblog"
)

const (
	rateWindow  = 60 // seconds of per-second buckets retained
	maxPathSlot = 512
)

// Snapshot is a point-in-time copy of the aggregated statistics.
type Snapshot struct {
	Total     int
	ByClass   [6]int // index = status/100; 2..5 used
	TopPaths  []PathCount
	PerSecond float64 // mean rate over the last 10 seconds
}

// PathCount pairs a request path with its hit count.
type PathCount struct {
	Path  string
	Count int
}

// Collector accumulates statistics from observed events. Safe for use from
// one producer and many readers.
type Collector struct {
	mu      sync.Mutex
	total   int
	byClass [6]int
	paths   map[string]int
	buckets [rateWindow]int
	bucketT [rateWindow]int64 // unix second each bucket belongs to
	now     func() time.Time
}

// NewCollector builds an empty collector.
func NewCollector() *Collector {
	return &Collector{
		paths: make(map[string]int),
		now:   time.Now,
	}
}

// Observe records one event.
func (c *Collector) Observe(ev weblog.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	c.byClass[ev.StatusClass()]++

	if len(c.paths) < maxPathSlot {
		c.paths[ev.Path]++
	} else if _, ok := c.paths[ev.Path]; ok {
		c.paths[ev.Path]++
	}

	sec := c.now().Unix()
	idx := int(sec % rateWindow)
	if c.bucketT[idx] != sec {
		c.bucketT[idx] = sec
		c.buckets[idx] = 0
	}
	c.buckets[idx]++
}

// Reset zeroes all aggregates.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total = 0
	c.byClass = [6]int{}
	c.paths = make(map[string]int)
	c.buckets = [rateWindow]int{}
	c.bucketT = [rateWindow]int64{}
}

// Snapshot returns a copy of the current aggregates with the top n paths.
func (c *Collector) Snapshot(n int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Total:   c.total,
		ByClass: c.byClass,
	}

	top := make([]PathCount, 0, len(c.paths))
	for path, count := range c.paths {
		top = append(top, PathCount{Path: path, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Path < top[j].Path
	})
	if n > 0 && len(top) > n {
		top = top[:n]
	}
	snap.TopPaths = top

	// Average the last 10 complete-ish seconds.
	sec := c.now().Unix()
	sum := 0
	for s := sec - 10; s < sec; s++ {
		idx := int(s % rateWindow)
		if idx >= 0 && c.bucketT[idx] == s {
			sum += c.buckets[idx]
		}
	}
	snap.PerSecond = float64(sum) / 10

	return snap
}
