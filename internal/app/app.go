package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/AstronomyAPI/Widgets/internal/config"
	"github.com/AstronomyAPI/Widgets/internal/dom"
	"github.com/AstronomyAPI/Widgets/internal/logger"
	"github.com/AstronomyAPI/Widgets/internal/prefs"
	"github.com/AstronomyAPI/Widgets/internal/studio"
	"github.com/AstronomyAPI/Widgets/internal/ui"
	"github.com/AstronomyAPI/Widgets/internal/widget"
)

// Options configure an astrowidget run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/astrowidget/prefs.toml
	Token      string // overrides the configured token
	Widget     string // moon, star or both; empty uses the saved preference
	Once       bool   // render headless, print the result and exit
	Out        io.Writer
}

// Run loads configuration, builds the client and either starts the dashboard
// or, with Once set, renders the selected widgets a single time.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if t := strings.TrimSpace(opts.Token); t != "" {
		cfg.BasicToken = t
	}

	log, err := logger.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := studio.NewClient(
		studio.Credentials{BasicToken: cfg.BasicToken},
		studio.WithBaseURL(cfg.BaseURL),
		studio.WithTimeout(cfg.Timeout),
		studio.WithLogger(log),
	)
	if err != nil {
		return err
	}

	moon, star := ui.Locators(&cfg, time.Now())
	page := dom.NewPage(moon, star)

	userPrefs := prefs.Load(opts.PrefsPath)
	selection := userPrefs.Widget
	if strings.TrimSpace(opts.Widget) != "" {
		selection = prefs.NormalizeWidget(opts.Widget)
	}

	if opts.Once {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return renderOnce(ctx, client, page, &cfg, selection, out)
	}

	return ui.Run(ui.Options{
		Context:    ctx,
		Client:     client,
		Page:       page,
		Config:     &cfg,
		Logger:     log,
		ThemeName:  userPrefs.Theme,
		Widget:     selection,
		PrefsPath:  opts.PrefsPath,
		AutoRender: true,
	})
}

// renderOnce starts every selected widget, waits for all of them and prints
// each element's final content. It fails when any widget did not render.
func renderOnce(ctx context.Context, client *studio.Client, page *dom.Page, cfg *config.Config, selection string, out io.Writer) error {
	type pending struct {
		kind widget.Kind
		ch   <-chan studio.Result
	}
	var started []pending
	if selection != prefs.WidgetStar {
		started = append(started, pending{widget.KindMoonPhase, client.GoMoonPhase(ctx, page, cfg.MoonPhase, nil)})
	}
	if selection != prefs.WidgetMoon {
		started = append(started, pending{widget.KindStarChart, client.GoStarChart(ctx, page, cfg.StarChart, nil)})
	}

	failed := 0
	for _, p := range started {
		res := <-p.ch
		if res.Err != nil {
			failed++
		}
		fmt.Fprintf(out, "%-12s %s\n", p.kind, res.Outcome())
	}
	for _, snap := range page.Snapshots() {
		if snap.Version == 0 {
			continue
		}
		printSnapshot(out, snap)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d widgets failed to render", failed, len(started))
	}
	return nil
}

func printSnapshot(out io.Writer, snap dom.Snapshot) {
	fmt.Fprintln(out, snap.Locator)
	for _, n := range snap.Nodes {
		switch node := n.(type) {
		case dom.Text:
			fmt.Fprintf(out, "  text   %s\n", node.Value)
		case dom.Image:
			size := "natural size"
			if node.Width != "" || node.Height != "" {
				size = fmt.Sprintf("width=%q height=%q", node.Width, node.Height)
			}
			fmt.Fprintf(out, "  image  %s (%s, %s)\n", node.Src, node.Alt, size)
		}
	}
}
