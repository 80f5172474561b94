// Package feed supplies the engine with log events.
//
// # Overview
//
// Three sources exist: a websocket client for live feeds, a file tailer for
// local access logs, and a synthetic generator for demo mode. All of them
// append into a shared Journal, a capped append-only window that hands out
// copies keyed by a monotonically increasing cursor.
//
// # Cursor Semantics
//
// The journal's cursor is an absolute sequence number, not a slice index.
// Eviction advances the window's base but never reuses sequence numbers, so
// a consumer that polls Since(cursor) observes each event at most once even
// when the window is truncated between polls. This property is what lets
// the engine guarantee one particle per log id.
//
// # Lifecycle
//
// Sources run a single background goroutine started by Start(ctx) and stop
// when the context is cancelled. The websocket source reconnects with
// exponential backoff; the tail source polls and survives log rotation.
package feed
