// Package ui implements astrowidget's terminal dashboard with Bubble Tea.
//
// # Layout
//
//	┌ header: logo, current selection, theme ┐
//	┌ Moon Phase ──────┐┌ Star Chart ────────┐
//	│ #moon-phase      ││ #star-chart        │
//	│ ▣ Moon phase     ││ Loading…           │
//	│ https://...png   ││                    │
//	└──────────────────┘└────────────────────┘
//	┌ Diagnostics ~/.local/share/astrowidget ┐
//	│ 21:30:00 WARN  invalid widget parameter│
//	└────────────────────────────────────────┘
//	footer: key hints
//
// Each widget pane mirrors one element of a dom.Page. The terminal cannot
// draw the returned image, so an image node is shown as its alt text, its
// URL and its requested size. Text nodes (the loading and error
// placeholders) are shown as-is, colored by the pane's last outcome.
//
// # Data Flow
//
// Pressing m, s or r starts a tea.Cmd that calls the studio client. While
// the request runs, the page reports each element change through
// Page.OnChange, which Run forwards to the program as a pageMsg. When the
// call returns, a renderedMsg records the outcome for the pane badge.
//
// The diagnostics pane re-reads the JSON log file every two seconds (and
// after each render) through logtail, so the warnings emitted for replaced
// parameters show up next to the widget they belong to.
//
// # Preferences
//
// The theme (T) and the last widget selection (m, s) are written to
// prefs.toml on every change.
package ui
