package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Feed modes.
const (
	FeedMock      = "mock"
	FeedWebsocket = "websocket"
	FeedTail      = "tail"
)

// Config captures everything the canvas and companion need at startup.
type Config struct {
	// Feed selects the event source: mock, websocket, or tail.
	Feed string
	// WebsocketURL is the upstream log stream for the websocket feed.
	WebsocketURL string
	// TailPath is the access log file for the tail feed.
	TailPath string
	// LogFormat selects the line parser: combined or json.
	LogFormat string

	// MockRate is the mock feed's target events per second.
	MockRate float64
	// JournalSize bounds the shared event window.
	JournalSize int

	// Width and Height are the initial canvas dimensions in pixels.
	Width  int
	Height int
	// Speed is the global particle speed multiplier.
	Speed float64

	// Theme names the companion color theme.
	Theme string
}

const (
	defaultConfigPath   = "~/.config/flakwall/config.toml"
	defaultWebsocketURL = "ws://127.0.0.1:8080/logs"
	defaultMockRate     = 6.0
	defaultJournalSize  = 4096
	defaultWidth        = 1280
	defaultHeight       = 720
	defaultSpeed        = 1.0
	defaultTheme        = "Dracula"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Feed         string  `toml:"feed"`
		WebsocketURL string  `toml:"websocket_url"`
		TailPath     string  `toml:"tail_path"`
		LogFormat    string  `toml:"log_format"`
		MockRate     float64 `toml:"mock_rate"`
		JournalSize  int     `toml:"journal_size"`
		Width        int     `toml:"width"`
		Height       int     `toml:"height"`
		Speed        float64 `toml:"speed"`
		Theme        string  `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Feed); v != "" {
		cfg.Feed = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.WebsocketURL); v != "" {
		cfg.WebsocketURL = v
	}
	if v := strings.TrimSpace(raw.TailPath); v != "" {
		cfg.TailPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if raw.MockRate > 0 {
		cfg.MockRate = raw.MockRate
	}
	if raw.JournalSize > 0 {
		cfg.JournalSize = raw.JournalSize
	}
	if raw.Width > 0 {
		cfg.Width = raw.Width
	}
	if raw.Height > 0 {
		cfg.Height = raw.Height
	}
	if raw.Speed > 0 {
		cfg.Speed = raw.Speed
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Feed:         FeedMock,
		WebsocketURL: defaultWebsocketURL,
		LogFormat:    "combined",
		MockRate:     defaultMockRate,
		JournalSize:  defaultJournalSize,
		Width:        defaultWidth,
		Height:       defaultHeight,
		Speed:        defaultSpeed,
		Theme:        defaultTheme,
	}
}

func (c Config) validate() error {
	switch c.Feed {
	case FeedMock, FeedWebsocket, FeedTail:
	default:
		return fmt.Errorf("unknown feed %q (want mock, websocket, or tail)", c.Feed)
	}
	if c.Feed == FeedTail && strings.TrimSpace(c.TailPath) == "" {
		return fmt.Errorf("tail feed requires tail_path")
	}
	switch c.LogFormat {
	case "combined", "json":
	default:
		return fmt.Errorf("unknown log_format %q (want combined or json)", c.LogFormat)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
