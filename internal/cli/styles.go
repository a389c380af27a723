// Package cli renders repayment plans for the terminal and collects debts interactively.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (garnet).
	PrimaryColor = lipgloss.Color("#782F40")
	// AccentColor highlights headers on dark terminals.
	AccentColor = lipgloss.Color("#CEB888") // Gold
	// SuccessColor indicates settled debts.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates truncated or stalled plans.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	// TableBorderStyle colors table borders.
	TableBorderStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(AccentColor).
				Padding(0, 1)

	// TableCellStyle pads table cells.
	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// AmountCellStyle right-aligns money columns.
	AmountCellStyle = TableCellStyle.
			Align(lipgloss.Right)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	MoneyIcon   = "💰"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a title with the money icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(MoneyIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}
