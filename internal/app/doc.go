// Package app provides the orchestration layer for the flakwall binaries.
//
// # Overview
//
// This package wires together configuration, the event feed, and a frontend
// to create either the particle canvas or the terminal companion. It serves
// as the composition root where all dependencies are initialized and
// connected.
//
// # Architecture
//
// Both entry points follow the same initialization pattern:
//
//  1. Load configuration from ~/.config/flakwall/config.toml
//  2. Create the shared event journal
//  3. Start the configured feed source (mock, websocket, or tail) in a
//     background goroutine that publishes into the journal
//  4. Start the frontend and block until the user exits or the context
//     cancels
//
// # Data Flow
//
//	Feed source goroutine                 Frontend loop
//	┌──────────────────────┐              ┌────────────────────────────┐
//	│ parse log lines      │   Journal    │ drain journal by cursor    │
//	│ journal.Append(...)  │ ──────────>  │ simulate / render          │
//	└──────────────────────┘              └────────────────────────────┘
//
// The journal decouples the two rates: the source appends whenever traffic
// arrives, and each frontend drains at its own frame or poll cadence using
// an absolute cursor. Eviction of old events never re-delivers or skips.
//
// # Error Handling
//
// Fatal errors (returned from RunCanvas/RunCompanion):
//   - Configuration file invalid, or unknown feed/log format
//   - Tail feed configured without a file path
//   - Renderer font initialization failure
//
// Recoverable errors (logged, the feed keeps running):
//   - Websocket disconnects (reconnected with backoff)
//   - Unparseable log lines (field defaults are substituted)
//   - Log file rotation (the tail re-follows from the start)
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: Path to config.toml (default: ~/.config/flakwall/config.toml)
//   - Feed: Override the configured feed mode
//   - Speed: Override the configured global speed multiplier
package app
