package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard key bindings.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	Moon    key.Binding
	Star    key.Binding
	Refresh key.Binding

	ScrollUp   key.Binding
	ScrollDown key.Binding
	Follow     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Moon: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Render moon phase"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Render star chart"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Re-render selection"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Scroll logs up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Scroll logs down"),
		),
		Follow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle log follow"),
		),
	}
}

// helpSections groups bindings for the help overlay.
func (k keyMap) helpSections() []helpSection {
	return []helpSection{
		{title: "Widgets", bindings: []key.Binding{k.Moon, k.Star, k.Refresh}},
		{title: "Diagnostics", bindings: []key.Binding{k.ScrollUp, k.ScrollDown, k.Follow}},
		{title: "General", bindings: []key.Binding{k.CycleTheme, k.Help, k.Quit}},
	}
}
