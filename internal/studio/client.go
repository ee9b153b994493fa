package studio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AstronomyAPI/Widgets/internal/dom"
	"github.com/AstronomyAPI/Widgets/internal/logger"
	"github.com/AstronomyAPI/Widgets/internal/widget"
)

const (
	// DefaultBaseURL is the public Astronomy API host.
	DefaultBaseURL = "https://api.astronomyapi.com"
	// DefaultTimeout bounds each widget request.
	DefaultTimeout = 15 * time.Second

	defaultSource    = "astronomy-api-widgets"
	defaultUserAgent = "astrowidget/0.1"
	minTokenLength   = 10

	moonPhasePath = "/api/v2/studio/moon-phase"
	starChartPath = "/api/v2/studio/star-chart"
)

// Credentials authorize requests to the studio API.
type Credentials struct {
	BasicToken string
}

// Client renders widgets by calling the studio API. It holds no per-call
// state and is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	source    string
	userAgent string
	timeout   time.Duration
	log       logger.Logger
	now       func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another API host.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := parseBaseURL(raw); err == nil {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the transport. Its own Timeout should be zero or
// longer than the request timer.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout overrides the request timer.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSource sets the client-source identification header.
func WithSource(source string) Option {
	return func(c *Client) {
		if s := strings.TrimSpace(source); s != "" {
			c.source = s
		}
	}
}

// WithClock sets the clock used for default observer dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient validates the credentials and builds a Client. A missing or short
// token is the only fatal error in the widget lifecycle.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if len(creds.BasicToken) < minTokenLength {
		return nil, fmt.Errorf("init studio client: %w", ErrInvalidToken)
	}
	base, err := parseBaseURL(DefaultBaseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		token:     creds.BasicToken,
		source:    defaultSource,
		userAgent: defaultUserAgent,
		timeout:   DefaultTimeout,
		log:       logger.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MoonPhase renders a moon-phase image into its target element and blocks
// until the request reaches a terminal state. onSuccess, when non-nil, runs
// only on success; failures are returned as typed errors (see Classify).
func (c *Client) MoonPhase(ctx context.Context, doc dom.Document, in *widget.MoonPhaseInput, onSuccess func(*ImageResponse)) (*ImageResponse, error) {
	return c.execute(ctx, doc, c.prepareMoonPhase(in), onSuccess)
}

// StarChart renders a star-chart image; see MoonPhase.
func (c *Client) StarChart(ctx context.Context, doc dom.Document, in *widget.StarChartInput, onSuccess func(*ImageResponse)) (*ImageResponse, error) {
	return c.execute(ctx, doc, c.prepareStarChart(in), onSuccess)
}

// GoMoonPhase is the fire-and-forget form of MoonPhase. The element lookup
// and the loading placeholder happen before it returns; the request runs on
// its own goroutine and delivers exactly one Result.
func (c *Client) GoMoonPhase(ctx context.Context, doc dom.Document, in *widget.MoonPhaseInput, onSuccess func(*ImageResponse)) <-chan Result {
	return c.start(ctx, doc, c.prepareMoonPhase(in), onSuccess)
}

// GoStarChart is the fire-and-forget form of StarChart.
func (c *Client) GoStarChart(ctx context.Context, doc dom.Document, in *widget.StarChartInput, onSuccess func(*ImageResponse)) <-chan Result {
	return c.start(ctx, doc, c.prepareStarChart(in), onSuccess)
}

func (c *Client) prepareMoonPhase(in *widget.MoonPhaseInput) request {
	now := c.now()
	cfg := widget.MergeMoonPhase(in, now)
	c.report(widget.ValidateMoonPhase(&cfg, now))
	return request{
		kind:    widget.KindMoonPhase,
		path:    moonPhasePath,
		element: cfg.Element,
		body:    cfg,
		alt:     "Moon phase",
		width:   cfg.Style.Width,
		height:  cfg.Style.Height,
	}
}

func (c *Client) prepareStarChart(in *widget.StarChartInput) request {
	now := c.now()
	cfg := widget.MergeStarChart(in, now)
	c.report(widget.ValidateStarChart(&cfg, now))
	return request{
		kind:    widget.KindStarChart,
		path:    starChartPath,
		element: cfg.Element,
		body:    cfg,
		alt:     "Star chart",
		width:   cfg.Style.Width,
		height:  cfg.Style.Height,
	}
}

func (c *Client) report(diags []widget.Diagnostic) {
	for _, d := range diags {
		c.log.Warn("invalid widget parameter replaced",
			logger.String("widget", string(d.Widget)),
			logger.String("field", d.Field),
			logger.Any("value", d.Value),
			logger.String("accepted", d.Accepted),
			logger.Any("substituted", d.Substituted),
		)
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
