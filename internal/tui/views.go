package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/cli"
	"github.com/Veraticus/snowball/internal/model"
)

// View renders the current month.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if len(m.months) == 0 {
		sections = append(sections, m.theme.StatusSuccess.Render("Nothing to repay."))
	} else {
		sections = append(sections, m.renderMonth(), m.renderTotals())
	}
	sections = append(sections, m.renderFooter(), m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Debt Repayment Plan")
	subtitle := fmt.Sprintf("Month %d of %d", m.month, len(m.months))
	if entries := m.entries(); len(entries) > 0 {
		subtitle += fmt.Sprintf("  •  cash flow used %s, remaining %s",
			cli.FormatCurrency(entries[0].CashFlowUsed), cli.FormatCurrency(entries[0].CashFlowRemaining))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.Subtitle.Render(subtitle))
}

func (m Model) renderMonth() string {
	entries := m.entries()

	nameWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, lipgloss.Width(e.Creditor))
	}

	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, m.renderEntry(e, nameWidth))
	}
	return m.theme.RoundedBox.Render(strings.Join(rows, "\n"))
}

func (m Model) renderEntry(e model.LedgerEntry, nameWidth int) string {
	name := fmt.Sprintf("%-*s", nameWidth, e.Creditor)
	bar := m.bar.ViewAs(m.paidFraction(e))

	var status string
	switch {
	case e.PaidOff():
		status = m.theme.StatusSuccess.Render("paid off " + cli.FormatCurrency(e.Payment))
	case !e.StartingBalance.IsPositive():
		status = m.theme.StatusPending.Render("settled")
	default:
		status = fmt.Sprintf("paid %s (min %s + extra %s), owes %s",
			cli.FormatCurrency(e.Payment),
			cli.FormatCurrency(e.MinimumPortion),
			cli.FormatCurrency(e.ExtraPortion),
			cli.FormatCurrency(e.EndingBalance))
	}
	return fmt.Sprintf("%2d. %s %s %s", e.Priority, m.theme.Bold.Render(name), bar, status)
}

// paidFraction is the share of the debt's original balance repaid by the end
// of the entry's month.
func (m Model) paidFraction(e model.LedgerEntry) float64 {
	idx := e.Priority - 1
	if idx < 0 || idx >= len(m.plan.Ranked) {
		return 0
	}
	original := m.plan.Ranked[idx].Balance
	if !original.IsPositive() {
		return 1
	}
	paid := original.Sub(e.EndingBalance).Div(original)
	return decimal.Min(decimal.Max(paid, decimal.Zero), decimal.NewFromInt(1)).InexactFloat64()
}

func (m Model) renderTotals() string {
	paid := m.plan.Schedule.MonthTotal(m.month)
	remaining := decimal.Zero
	for _, e := range m.entries() {
		remaining = remaining.Add(e.EndingBalance)
	}
	return fmt.Sprintf("Paid this month: %s   Remaining debt: %s",
		m.theme.Bold.Render(cli.FormatCurrency(paid)),
		m.theme.Bold.Render(cli.FormatCurrency(remaining)))
}

func (m Model) renderFooter() string {
	if !m.plan.PaidOff() {
		return m.theme.StatusWarning.Render("Debts are never fully paid off: " + m.plan.PayoffError)
	}
	footer := fmt.Sprintf("All debts paid off in %s", m.plan.PayoffDuration)
	if m.plan.Truncated() {
		footer += fmt.Sprintf(" (showing the first %d months)", m.plan.Horizon)
	}
	return m.theme.Subtitle.Render(footer)
}
