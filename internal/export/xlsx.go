// Package export renders repayment plans as spreadsheet and PDF documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/snowball/internal/payoff"
)

// Sheet names used by BuildPlanXLSX.
const (
	DebtsSheet    = "debts"
	ScheduleSheet = "schedule"
	SummarySheet  = "summary"
)

var scheduleColumns = []string{
	"Month", "Priority", "Creditor", "Starting Balance", "Minimum", "Extra",
	"Payment", "Ending Balance", "Cash Flow Used", "Cash Flow Remaining",
}

// BuildPlanXLSX renders the plan as a workbook with debts, schedule and
// summary sheets.
func BuildPlanXLSX(plan *payoff.Plan) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", DebtsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{ScheduleSheet, SummarySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	w := &sheetWriter{f: f}
	writeDebtsSheet(w, plan)
	writeScheduleSheet(w, plan)
	writeSummarySheet(w, plan)
	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error from a run of cell writes.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
}

func writeDebtsSheet(w *sheetWriter, plan *payoff.Plan) {
	w.row(DebtsSheet, 1, "Priority", "Creditor", "Balance", "Limit", "Utilization %", "Min Payment", "Cash Flow Recapture %")
	for i, d := range plan.Ranked {
		w.row(DebtsSheet, i+2,
			i+1,
			d.Creditor,
			d.Balance.InexactFloat64(),
			d.Limit.InexactFloat64(),
			d.Utilization.Round(2).InexactFloat64(),
			d.MinPayment.InexactFloat64(),
			d.CashFlowRecap.Round(2).InexactFloat64(),
		)
	}
}

func writeScheduleSheet(w *sheetWriter, plan *payoff.Plan) {
	header := make([]any, len(scheduleColumns))
	for i, c := range scheduleColumns {
		header[i] = c
	}
	w.row(ScheduleSheet, 1, header...)
	for i, e := range plan.Schedule.Entries {
		w.row(ScheduleSheet, i+2,
			e.Month,
			e.Priority,
			e.Creditor,
			e.StartingBalance.InexactFloat64(),
			e.MinimumPortion.InexactFloat64(),
			e.ExtraPortion.InexactFloat64(),
			e.Payment.InexactFloat64(),
			e.EndingBalance.InexactFloat64(),
			e.CashFlowUsed.InexactFloat64(),
			e.CashFlowRemaining.InexactFloat64(),
		)
	}
}

func writeSummarySheet(w *sheetWriter, plan *payoff.Plan) {
	rows := summaryRows(plan)
	for i, r := range rows {
		w.row(SummarySheet, i+1, r.label, r.value)
	}
}

type summaryRow struct {
	value any
	label string
}

func summaryRows(plan *payoff.Plan) []summaryRow {
	rows := []summaryRow{
		{label: "Monthly Cash Flow", value: plan.CashFlow.InexactFloat64()},
		{label: "Total Debt", value: totalBalance(plan).InexactFloat64()},
		{label: "Months Shown", value: plan.Schedule.MonthsElapsed},
		{label: "Paid In Months Shown", value: plan.TotalPaid.InexactFloat64()},
	}
	if plan.PaidOff() {
		rows = append(rows,
			summaryRow{label: "Months To Pay Off", value: plan.PayoffMonths},
			summaryRow{label: "Time To Pay Off", value: plan.PayoffDuration.String()},
		)
	} else {
		rows = append(rows, summaryRow{label: "Not Paid Off", value: plan.PayoffError})
	}
	return rows
}
