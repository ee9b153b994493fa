package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AstronomyAPI/Widgets/internal/config"
	"github.com/AstronomyAPI/Widgets/internal/dom"
	"github.com/AstronomyAPI/Widgets/internal/logger"
	"github.com/AstronomyAPI/Widgets/internal/prefs"
	"github.com/AstronomyAPI/Widgets/internal/studio"
	"github.com/AstronomyAPI/Widgets/internal/widget"
)

const (
	defaultLogTick = 2 * time.Second
	logTailLines   = 200
	outcomeLoading = "loading"
)

// Options configures the dashboard.
type Options struct {
	Context   context.Context
	Client    *studio.Client
	Page      *dom.Page
	Config    *config.Config
	Logger    logger.Logger
	ThemeName string
	Widget    string
	PrefsPath string
	// LogTick is how often the diagnostics pane re-reads the log file.
	LogTick time.Duration
	// AutoRender renders the selected widgets as soon as the program starts.
	AutoRender bool
}

// pane tracks one widget element.
type pane struct {
	kind     widget.Kind
	title    string
	locator  string
	snapshot dom.Snapshot
	busy     bool
	outcome  string
	detail   string
	finished time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	client    *studio.Client
	page      *dom.Page
	config    *config.Config
	log       logger.Logger
	prefsPath string
	logPath   string
	logTick   time.Duration

	keys      keyMap
	theme     Theme
	selection string
	width     int
	height    int
	ready     bool
	showHelp  bool
	autoStart bool

	panes []pane

	logViewport viewport.Model
	logState    logState
}

// New creates the dashboard model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	logTick := opts.LogTick
	if logTick <= 0 {
		logTick = defaultLogTick
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	moon, star := Locators(cfg, time.Now())
	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		page:      opts.Page,
		config:    cfg,
		log:       log,
		prefsPath: prefsPath,
		logPath:   cfg.LogFile,
		logTick:   logTick,
		keys:      defaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		selection: prefs.NormalizeWidget(opts.Widget),
		autoStart: opts.AutoRender,
		panes: []pane{
			{kind: widget.KindMoonPhase, title: "Moon Phase", locator: moon},
			{kind: widget.KindStarChart, title: "Star Chart", locator: star},
		},
		logState: logState{follow: true},
	}
	for i := range m.panes {
		m.syncPane(i)
		if m.autoStart && m.selected(m.panes[i].kind) && m.client != nil {
			m.panes[i].busy = true
			m.panes[i].outcome = outcomeLoading
		}
	}
	return m
}

// Locators returns the element locators the two widgets render into once
// the configured presets are applied. Validation only resolves a blank
// element to its default here; the client logs diagnostics when it renders.
func Locators(cfg *config.Config, now time.Time) (moon, star string) {
	var moonIn *widget.MoonPhaseInput
	var starIn *widget.StarChartInput
	if cfg != nil {
		moonIn, starIn = cfg.MoonPhase, cfg.StarChart
	}
	mc := widget.MergeMoonPhase(moonIn, now)
	widget.ValidateMoonPhase(&mc, now)
	sc := widget.MergeStarChart(starIn, now)
	widget.ValidateStarChart(&sc, now)
	return strings.TrimSpace(mc.Element), strings.TrimSpace(sc.Element)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.logTick),
		fetchLogsCmd(m.logPath),
	}
	if m.autoStart {
		for _, p := range m.panes {
			if m.selected(p.kind) {
				cmds = append(cmds, m.renderCmd(p.kind))
			}
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchLogsCmd(m.logPath), tickCmd(m.logTick))

	case pageMsg:
		for i := range m.panes {
			if m.panes[i].locator == msg.Locator && msg.Version >= m.panes[i].snapshot.Version {
				m.panes[i].snapshot = dom.Snapshot(msg)
			}
		}
		return m, nil

	case renderedMsg:
		m.handleRendered(msg)
		return m, fetchLogsCmd(m.logPath)

	case logEntriesMsg:
		m.handleLogEntries(msg)
		return m, nil

	case logErrorMsg:
		m.logState.err = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.Moon):
		m.selection = prefs.WidgetMoon
		m.savePrefs()
		return m, m.start(widget.KindMoonPhase)

	case key.Matches(msg, m.keys.Star):
		m.selection = prefs.WidgetStar
		m.savePrefs()
		return m, m.start(widget.KindStarChart)

	case key.Matches(msg, m.keys.Refresh):
		var cmds []tea.Cmd
		for _, p := range m.panes {
			if m.selected(p.kind) {
				cmds = append(cmds, m.start(p.kind))
			}
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Follow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		m.logState.follow = false
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// start marks the pane busy and returns the command that renders it. A pane
// that is already rendering is left alone.
func (m *Model) start(kind widget.Kind) tea.Cmd {
	i := m.paneIndex(kind)
	if i < 0 || m.panes[i].busy || m.client == nil {
		return nil
	}
	m.panes[i].busy = true
	m.panes[i].outcome = outcomeLoading
	m.panes[i].detail = ""
	return m.renderCmd(kind)
}

func (m Model) renderCmd(kind widget.Kind) tea.Cmd {
	ctx, client, page := m.ctx, m.client, m.page
	moonIn, starIn := m.config.MoonPhase, m.config.StarChart
	return func() tea.Msg {
		var (
			resp *studio.ImageResponse
			err  error
		)
		// A nil page is passed as a nil interface so the client reports the
		// element as missing instead of dereferencing it.
		var doc dom.Document
		if page != nil {
			doc = page
		}
		switch kind {
		case widget.KindMoonPhase:
			resp, err = client.MoonPhase(ctx, doc, moonIn, nil)
		default:
			resp, err = client.StarChart(ctx, doc, starIn, nil)
		}
		return renderedMsg{kind: kind, resp: resp, err: err, at: time.Now()}
	}
}

func (m *Model) handleRendered(msg renderedMsg) {
	i := m.paneIndex(msg.kind)
	if i < 0 {
		return
	}
	p := &m.panes[i]
	p.busy = false
	p.finished = msg.at
	p.outcome = studio.Classify(msg.err).String()
	switch {
	case msg.err != nil:
		p.detail = msg.err.Error()
		var rejected *studio.RejectedError
		if errors.As(msg.err, &rejected) && len(rejected.Details.Errors) > 0 {
			parts := make([]string, 0, len(rejected.Details.Errors))
			for _, fe := range rejected.Details.Errors {
				parts = append(parts, fe.Field+": "+fe.Message)
			}
			p.detail = strings.Join(parts, "; ")
		}
	case msg.resp != nil:
		p.detail = msg.resp.Data.ImageURL
	}
	m.syncPane(i)
}

// syncPane reloads the pane's element content from the page.
func (m *Model) syncPane(i int) {
	if m.page == nil {
		return
	}
	if snap, ok := m.page.Snapshot(m.panes[i].locator); ok && snap.Version >= m.panes[i].snapshot.Version {
		m.panes[i].snapshot = snap
	}
}

func (m Model) paneIndex(kind widget.Kind) int {
	for i, p := range m.panes {
		if p.kind == kind {
			return i
		}
	}
	return -1
}

func (m Model) selected(kind widget.Kind) bool {
	switch m.selection {
	case prefs.WidgetMoon:
		return kind == widget.KindMoonPhase
	case prefs.WidgetStar:
		return kind == widget.KindStarChart
	default:
		return true
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Widget: m.selection}); err != nil {
		m.log.Warn("save preferences failed", logger.Error(err))
	}
}

// Messages

type tickMsg time.Time

// pageMsg carries an element change from the page.
type pageMsg dom.Snapshot

type renderedMsg struct {
	kind widget.Kind
	resp *studio.ImageResponse
	err  error
	at   time.Time
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and forwards page changes into it.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Page != nil {
		opts.Page.OnChange(func(s dom.Snapshot) { p.Send(pageMsg(s)) })
		defer opts.Page.OnChange(nil)
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
