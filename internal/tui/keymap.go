package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	NextMonth key.Binding
	PrevMonth key.Binding
	NextYear  key.Binding
	PrevYear  key.Binding
	Home      key.Binding
	End       key.Binding

	// Application
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextMonth: key.NewBinding(
			key.WithKeys("l", "right", "n"),
			key.WithHelp("→/l", "next month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("h", "left", "p"),
			key.WithHelp("←/h", "previous month"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("pgdown", "j", "down"),
			key.WithHelp("↓/j", "forward a year"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("pgup", "k", "up"),
			key.WithHelp("↑/k", "back a year"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first month"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last month"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/Esc", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.ToggleHelp, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevMonth, k.NextMonth, k.PrevYear, k.NextYear},
		{k.Home, k.End, k.ToggleHelp, k.Quit},
	}
}
