package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"flakwall/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	feedMode := flag.String("feed", "", "override feed mode: mock, websocket, or tail (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Feed:       *feedMode,
	}

	if err := app.RunCompanion(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "flaktail: %v\n", err)
		return 1
	}
	return 0
}
