package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AstronomyAPI/Widgets/internal/logtail"
)

// logState holds diagnostics pane state.
type logState struct {
	entries []logtail.Entry
	follow  bool
	err     error
}

type logEntriesMsg []logtail.Entry

type logErrorMsg struct {
	err error
}

func fetchLogsCmd(path string) tea.Cmd {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, logTailLines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logEntriesMsg(entries)
	}
}

func (m *Model) handleLogEntries(msg logEntriesMsg) {
	m.logState.entries = []logtail.Entry(msg)
	m.logState.err = nil
	m.updateLogViewport()
}

// logBoxHeight is the outer height of the diagnostics box.
func (m Model) logBoxHeight() int {
	return max(m.height-2-m.paneBoxHeight(), 3)
}

func (m *Model) updateLogViewport() {
	width := max(m.width-4, 1)
	height := max(m.logBoxHeight()-3, 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(width, height)
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
	m.logViewport.SetContent(m.renderLogContent())
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	if len(m.logState.entries) == 0 {
		if m.logPath == "" {
			return styles.FaintText.Render("Logging to stderr; no diagnostics to show.")
		}
		return styles.FaintText.Render("No log entries yet.")
	}
	lines := make([]string, 0, len(m.logState.entries))
	for _, e := range m.logState.entries {
		lines = append(lines, m.colorizeEntry(e, styles))
	}
	return strings.Join(lines, "\n")
}

// colorizeEntry renders one entry with the timestamp dimmed, the level
// colored, and field keys muted.
func (m Model) colorizeEntry(e logtail.Entry, styles Styles) string {
	if e.Raw != "" {
		return styles.Text.Render(e.Raw)
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
		b.WriteByte(' ')
	}
	b.WriteString(styles.LevelStyle(e.Level).Bold(true).Render(padRight(e.Level, 5)))
	b.WriteByte(' ')
	b.WriteString(styles.Text.Render(e.Message))
	for _, f := range e.Fields {
		b.WriteByte(' ')
		b.WriteString(styles.MutedText.Render(f.Key + "="))
		b.WriteString(styles.AccentText.Render(f.Value))
	}
	return b.String()
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := "Diagnostics"
	if m.logPath != "" {
		title += " " + styles.FaintText.Render(truncateMiddle(m.logPath, 50))
	}
	if m.logState.err != nil {
		title += " " + styles.DangerText.Render(m.logState.err.Error())
	}
	if !m.logState.follow {
		title += " " + styles.WarningText.Render("[paused]")
	}
	return m.renderBox(title, m.logViewport.View(), m.width, m.logBoxHeight(), false)
}

func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	border := m.theme.Border
	if focused {
		border = m.theme.BorderFocus
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(max(width-2, 1)).
		Height(max(height-2, 1))
	head := m.theme.Styles().AccentText.Bold(true).Render(title)
	return box.Render(head + "\n" + content)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// truncateMiddle shortens s to at most n runes, keeping both ends.
func truncateMiddle(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 5 {
		return s
	}
	half := (n - 1) / 2
	return string(r[:half]) + "…" + string(r[len(r)-(n-1-half):])
}
