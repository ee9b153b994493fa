package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AstronomyAPI/Widgets/internal/dom"
	"github.com/AstronomyAPI/Widgets/internal/studio"
)

const minPaneHeight = 9

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPanes())
	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{
		styles.Logo.Render("astrowidget"),
		styles.MutedText.Render("widget ") + styles.Text.Render(m.selection),
		styles.MutedText.Render("theme ") + styles.Text.Render(m.theme.Name),
	}
	if m.client == nil {
		parts = append(parts, styles.DangerText.Render("no client"))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bindings := []struct{ key, desc string }{
		{"m", "moon"}, {"s", "star"}, {"r", "render"}, {"T", "theme"}, {"?", "help"}, {"q", "quit"},
	}
	parts := make([]string, 0, len(bindings))
	for _, bnd := range bindings {
		parts = append(parts, styles.WarningText.Render(bnd.key)+" "+styles.MutedText.Render(bnd.desc))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}

// paneBoxHeight is the outer height of each widget box.
func (m Model) paneBoxHeight() int {
	return max((m.height-2)/2, minPaneHeight)
}

func (m Model) renderPanes() string {
	width := m.width / len(m.panes)
	boxes := make([]string, 0, len(m.panes))
	for i, p := range m.panes {
		w := width
		if i == len(m.panes)-1 {
			w = m.width - width*(len(m.panes)-1)
		}
		boxes = append(boxes, m.renderPane(p, w, m.paneBoxHeight()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) renderPane(p pane, width, height int) string {
	styles := m.theme.Styles()
	inner := max(width-4, 10)

	title := p.title
	if p.outcome != "" {
		title += " " + styles.OutcomeBadge(p.outcome).Render(p.outcome)
	}

	lines := []string{styles.FaintText.Render(p.locator), ""}
	lines = append(lines, m.renderNodes(p, inner)...)
	if p.detail != "" && p.outcome != studio.OutcomeSuccess.String() {
		lines = append(lines, "", styles.MutedText.Render(truncateMiddle(p.detail, inner)))
	}
	if !p.finished.IsZero() {
		lines = append(lines, "", styles.FaintText.Render("finished "+p.finished.Local().Format("15:04:05")))
	}

	return m.renderBox(title, strings.Join(lines, "\n"), width, height, m.selected(p.kind))
}

// renderNodes draws the element's children. Images cannot be shown in a
// terminal, so they are described by their source and size.
func (m Model) renderNodes(p pane, width int) []string {
	styles := m.theme.Styles()
	if len(p.snapshot.Nodes) == 0 {
		return []string{styles.FaintText.Render("empty")}
	}
	var lines []string
	for _, n := range p.snapshot.Nodes {
		switch node := n.(type) {
		case dom.Text:
			lines = append(lines, m.textStyle(p, node.Value).Render(node.Value))
		case dom.Image:
			lines = append(lines,
				styles.SuccessText.Render("▣ "+node.Alt),
				styles.AccentText.Render(truncateMiddle(node.Src, width)),
				styles.MutedText.Render(describeSize(node)),
			)
		}
	}
	return lines
}

func (m Model) textStyle(p pane, value string) lipgloss.Style {
	styles := m.theme.Styles()
	switch {
	case value == studio.MsgLoading:
		return styles.InfoText
	case p.outcome == outcomeLoading || p.outcome == "":
		return styles.Text
	case p.outcome == studio.OutcomeClientError.String():
		return styles.WarningText
	default:
		return styles.DangerText
	}
}

func describeSize(img dom.Image) string {
	switch {
	case img.Width != "" && img.Height != "":
		return fmt.Sprintf("%s × %s", img.Width, img.Height)
	case img.Width != "":
		return "width " + img.Width
	case img.Height != "":
		return "height " + img.Height
	default:
		return "natural size"
	}
}
