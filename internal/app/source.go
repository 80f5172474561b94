package app

import (
	"context"
	"fmt"

	"flakwall/internal/config"
	"flakwall/internal/feed"
	"flakwall/internal/weblog"
)

const tailBackfill = 50

// startSource launches the configured event feed. The source runs in a
// background goroutine owned by ctx; the journal is its only output.
func startSource(ctx context.Context, cfg config.Config, journal *feed.Journal) error {
	switch cfg.Feed {
	case config.FeedMock:
		src := &feed.MockSource{Journal: journal, Rate: cfg.MockRate}
		return src.Start(ctx)

	case config.FeedWebsocket:
		parser, err := weblog.ForFormat(cfg.LogFormat)
		if err != nil {
			return err
		}
		src := &feed.WebsocketSource{URL: cfg.WebsocketURL, Parser: parser, Journal: journal}
		return src.Start(ctx)

	case config.FeedTail:
		parser, err := weblog.ForFormat(cfg.LogFormat)
		if err != nil {
			return err
		}
		src := &feed.TailSource{
			Path:     cfg.TailPath,
			Parser:   parser,
			Journal:  journal,
			Backfill: tailBackfill,
		}
		return src.Start(ctx)

	default:
		return fmt.Errorf("unknown feed %q", cfg.Feed)
	}
}
