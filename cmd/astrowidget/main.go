package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AstronomyAPI/Widgets/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config path (defaults to ~/.config/astrowidget/config.toml)")
	token := flag.String("token", "", "API basic token (overrides config and ASTRO_BASIC_TOKEN)")
	selection := flag.String("widget", "", "widgets to render: moon, star or both (defaults to last used)")
	once := flag.Bool("once", false, "render once without the dashboard and print the result")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Token:      *token,
		Widget:     *selection,
		Once:       *once,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "astrowidget: %v\n", err)
		return 1
	}
	return 0
}
