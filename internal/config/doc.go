// Package config handles loading and parsing flakwall configuration files.
//
// # Overview
//
// This package reads a single TOML file describing which event feed to run,
// how to parse incoming log lines, and how the canvas should start up. Both
// binaries (the canvas and the terminal companion) share the same file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/flakwall/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/flakwall/config.toml
//   - Feed: mock
//   - Websocket URL: ws://127.0.0.1:8080/logs
//   - Log format: combined
//   - Mock rate: 6 events/second
//   - Journal size: 4096 events
//   - Canvas: 1280x720, speed 1.0
//   - Theme: Dracula
//
// # TOML Format
//
// Example config.toml:
//
//	feed = "websocket"
//	websocket_url = "ws://logs.internal:9090/stream"
//	log_format = "combined"
//	width = 1600
//	height = 900
//	speed = 1.5
//	theme = "Slate"
//
// Every field is optional except tail_path, which is required when the feed
// is "tail". Tilde expansion is performed on file paths automatically.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Invalid feed or log_format values
//
// Missing config files are NOT an error - defaults are used instead, so the
// canvas works out-of-the-box against the built-in mock feed.
package config
