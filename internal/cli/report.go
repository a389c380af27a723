package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/common"
	"github.com/Veraticus/snowball/internal/model"
	"github.com/Veraticus/snowball/internal/payoff"
)

// Output formats supported by WritePlan.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// ScheduleCSVHeader names the columns written by WriteScheduleCSV.
var ScheduleCSVHeader = []string{
	"month", "priority", "creditor", "starting_balance", "minimum_payment",
	"extra_payment", "payment", "ending_balance", "cash_flow_used", "cash_flow_remaining",
}

func newTable(headers []string, amountCols map[int]bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if amountCols[col] {
				return AmountCellStyle
			}
			return TableCellStyle
		})
}

// RenderDebts renders the initial debts table.
func RenderDebts(debts []model.Debt) string {
	t := newTable(
		[]string{"Creditor", "Balance", "Limit", "Utilization", "Min Payment"},
		map[int]bool{1: true, 2: true, 3: true, 4: true},
	)
	for _, d := range debts {
		t.Row(
			d.Creditor,
			FormatCurrency(d.Balance),
			FormatCurrency(d.Limit),
			FormatPercentage(d.Utilization),
			FormatCurrency(d.MinPayment),
		)
	}
	return t.Render()
}

// RenderRanking renders debts in payoff priority order.
func RenderRanking(ranked []model.Debt) string {
	t := newTable(
		[]string{"#", "Creditor", "Cash Flow Recapture", "Balance", "Min Payment"},
		map[int]bool{2: true, 3: true, 4: true},
	)
	for i, d := range ranked {
		t.Row(
			strconv.Itoa(i+1),
			d.Creditor,
			FormatPercentage(d.CashFlowRecap),
			FormatCurrency(d.Balance),
			FormatCurrency(d.MinPayment),
		)
	}
	return t.Render()
}

// RenderSchedule renders every ledger entry with a payment or balance.
// Rows for debts settled in earlier months are left out.
func RenderSchedule(schedule model.Schedule) string {
	t := newTable(
		[]string{"Month", "Creditor", "Starting Balance", "Minimum", "Extra", "Payment", "Ending Balance"},
		map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true, 6: true},
	)
	for _, e := range schedule.Entries {
		if !e.StartingBalance.IsPositive() {
			continue
		}
		t.Row(
			strconv.Itoa(e.Month),
			e.Creditor,
			FormatCurrency(e.StartingBalance),
			FormatCurrency(e.MinimumPortion),
			FormatCurrency(e.ExtraPortion),
			FormatCurrency(e.Payment),
			FormatCurrency(e.EndingBalance),
		)
	}
	return t.Render()
}

// RenderProgress renders one bar per debt showing how much of it the
// displayed schedule pays off.
func RenderProgress(progress []payoff.DebtProgress) string {
	width := 0
	for _, p := range progress {
		width = max(width, lipgloss.Width(p.Creditor))
	}

	lines := make([]string, 0, len(progress))
	for _, p := range progress {
		bar := progressBar(p.PercentPaid)
		status := FormatPercentage(p.PercentPaid)
		if p.PaidOffMonth > 0 {
			status = SuccessStyle.Render(fmt.Sprintf("%s paid off in month %d", SuccessIcon, p.PaidOffMonth))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s", width, p.Creditor, bar, status))
	}
	return strings.Join(lines, "\n")
}

func progressBar(percent decimal.Decimal) string {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(io.Discard),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	_ = bar.Set(int(percent.IntPart()))
	return strings.TrimSpace(bar.String())
}

// RenderSummary renders the payoff summary box.
func RenderSummary(plan *payoff.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Monthly cash flow: %s\n", FormatCurrency(plan.CashFlow))
	fmt.Fprintf(&b, "Total debt: %s\n", FormatCurrency(model.TotalBalance(plan.Original)))
	fmt.Fprintf(&b, "Paid in %d displayed months: %s\n", plan.Schedule.MonthsElapsed, FormatCurrency(plan.TotalPaid))

	switch {
	case plan.PaidOff():
		fmt.Fprintf(&b, "Total time to pay off all debts: %s", plan.PayoffDuration)
	default:
		b.WriteString(FormatWarning("Debts are never fully paid off: " + plan.PayoffError))
	}
	if plan.PaidOff() && plan.Truncated() {
		fmt.Fprintf(&b, "\n%s", FormatWarning(fmt.Sprintf("Only the first %d of %d months are shown", plan.Horizon, plan.PayoffMonths)))
	}

	return RenderBox("Payoff Summary", b.String())
}

// WritePlan writes plan to w in the requested format.
func WritePlan(w io.Writer, plan *payoff.Plan, format string) error {
	switch format {
	case FormatTable, "":
		return writePlanTable(w, plan)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case FormatCSV:
		return WriteScheduleCSV(w, plan.Schedule)
	default:
		return fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, format)
	}
}

func writePlanTable(w io.Writer, plan *payoff.Plan) error {
	sections := []string{
		FormatTitle("Initial Debts"),
		RenderDebts(plan.Original),
		FormatTitle("Payoff Order"),
		RenderRanking(plan.Ranked),
		FormatTitle("Repayment Plan"),
	}
	if len(plan.Schedule.Entries) == 0 {
		sections = append(sections, SubtleStyle.Render("Nothing to repay."))
	} else {
		sections = append(sections, RenderSchedule(plan.Schedule))
	}
	sections = append(sections,
		FormatTitle("Progress"),
		RenderProgress(plan.Progress),
		"",
		RenderSummary(plan),
	)

	for _, s := range sections {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
	}
	return nil
}

// WriteScheduleCSV writes one row per ledger entry.
func WriteScheduleCSV(w io.Writer, schedule model.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ScheduleCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range schedule.Entries {
		record := []string{
			strconv.Itoa(e.Month),
			strconv.Itoa(e.Priority),
			e.Creditor,
			e.StartingBalance.StringFixed(2),
			e.MinimumPortion.StringFixed(2),
			e.ExtraPortion.StringFixed(2),
			e.Payment.StringFixed(2),
			e.EndingBalance.StringFixed(2),
			e.CashFlowUsed.StringFixed(2),
			e.CashFlowRemaining.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
