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
	feedMode := flag.String("feed", "", "override feed mode: mock, websocket, or tail (optional)")
	speed := flag.Float64("speed", 0, "override global speed multiplier (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Feed:       *feedMode,
		Speed:      *speed,
	}

	if err := app.RunCanvas(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "flakwall: %v\n", err)
		return 1
	}
	return 0
}
