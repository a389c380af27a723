// Package themes provides color schemes for the schedule browser.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

func build(primary, secondary, foreground, subtle, border, muted, success, warning string) Theme {
	return Theme{
		Primary:   lipgloss.Color(primary),
		Secondary: lipgloss.Color(secondary),
		Muted:     lipgloss.Color(muted),
		Border:    lipgloss.Color(border),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(foreground)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(foreground)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(primary)).
			Foreground(lipgloss.Color(foreground)).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(warning)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Italic(true),
	}
}

// Default is the default theme.
var Default = build("#782F40", "#CEB888", "#fafafa", "#a3a3a3", "#404040", "#737373", "#10b981", "#f59e0b")

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build("#cba6f7", "#f5c2e7", "#cdd6f4", "#a6adc8", "#45475a", "#6c7086", "#a6e3a1", "#f9e2af")

// ByName returns the named theme, or Default when name is unknown.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
