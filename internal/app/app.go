package app

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"flakwall/internal/config"
	"flakwall/internal/engine"
	"flakwall/internal/feed"
	"flakwall/internal/prefs"
	"flakwall/internal/stats"
	"flakwall/internal/tui"
)

// Options configure either flakwall frontend.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/flakwall/prefs.toml
	Feed       string // overrides the configured feed mode when non-empty
	Speed      float64
}

// RunCanvas boots the particle canvas until the window closes or the
// context is cancelled.
func RunCanvas(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	journal := feed.NewJournal(cfg.JournalSize)
	if err := startSource(ctx, cfg, journal); err != nil {
		return err
	}

	renderer, err := engine.NewRenderer()
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	eng := engine.New(engine.Options{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Speed:  cfg.Speed,
	})

	game := engine.NewGame(engine.GameOptions{
		Context:  ctx,
		Engine:   eng,
		Journal:  journal,
		Stats:    stats.NewCollector(),
		Renderer: renderer,
	})

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("flakwall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run canvas: %w", err)
	}
	return nil
}

// RunCompanion boots the terminal tail view until the context is cancelled
// or the user quits.
func RunCompanion(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)
	theme := cfg.Theme
	if userPrefs.Theme != "" {
		theme = userPrefs.Theme
	}

	journal := feed.NewJournal(cfg.JournalSize)
	if err := startSource(ctx, cfg, journal); err != nil {
		return err
	}

	return tui.Run(ctx, tui.Options{
		Journal:   journal,
		Theme:     theme,
		PrefsPath: prefsPath,
		Follow:    userPrefs.Follow,
	})
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Feed != "" {
		cfg.Feed = opts.Feed
	}
	if opts.Speed > 0 {
		cfg.Speed = opts.Speed
	}
	return cfg, nil
}
