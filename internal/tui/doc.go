// Package tui implements the terminal companion view: a live tail of
// ingested access-log events next to a traffic summary panel.
//
// The model polls the shared feed journal on a fixed tick and appends any
// new events to a bounded scrollback. Rendering is pure: View reads model
// state only, and every mutation happens in Update on the bubbletea loop.
package tui
