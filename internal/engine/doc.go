// Package engine is the particle animation core of flakwall.
//
// # Overview
//
// Every ingested log event becomes one particle that flies left-to-right
// along a lane derived from its request path. At the barrier (canvas
// mid-width) the particle's fate resolves: accepted requests pass through
// and keep drifting until they exit off-screen, rejected ones snap to the
// barrier and explode, launching an upward feed-glow beam. Counters track
// passed and blocked requests; the blocked count increments when a beam
// completes, not when the explosion starts.
//
// # Ownership and concurrency
//
// The Engine is the single mutation root. It owns the particle and effect
// collections, both counters, and the seen-id set. Step advances everything
// synchronously; the renderer and hit-tester only read. The Game adapter
// runs all of it on ebiten's update thread, so the engine itself carries no
// locks. Consumers never retain particle pointers across frames; sticky
// hover is tracked by id and invalidated when the particle is culled.
//
// # Failure containment
//
// Spawning before the canvas has a size panics: that is a caller ordering
// bug. Inside a frame, a panic while stepping one particle is recovered,
// logged, and kills only that particle. Malformed events are degraded by
// the weblog package before they ever arrive here. Size caps on the trail,
// particle and seen-id collections evict oldest-first and are deliberate
// backpressure, not errors.
package engine
