package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/model"
	"github.com/Veraticus/snowball/internal/payoff"
)

type pdfColumn struct {
	title string
	width float64
	align string
}

var pdfScheduleColumns = []pdfColumn{
	{title: "Month", width: 14, align: "C"},
	{title: "Creditor", width: 46, align: "L"},
	{title: "Starting", width: 26, align: "R"},
	{title: "Minimum", width: 24, align: "R"},
	{title: "Extra", width: 24, align: "R"},
	{title: "Payment", width: 24, align: "R"},
	{title: "Ending", width: 26, align: "R"},
}

// BuildPlanPDF renders a summary page followed by the schedule table.
// Rows for debts settled in earlier months are left out.
func BuildPlanPDF(plan *payoff.Plan) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Debt Repayment Plan", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Debt Repayment Plan")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, r := range summaryRows(plan) {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", r.label, pdfValue(r.value)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	for _, c := range pdfScheduleColumns {
		pdf.CellFormat(c.width, 6, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, e := range plan.Schedule.Entries {
		if !e.StartingBalance.IsPositive() {
			continue
		}
		values := []string{
			strconv.Itoa(e.Month),
			e.Creditor,
			e.StartingBalance.StringFixed(2),
			e.MinimumPortion.StringFixed(2),
			e.ExtraPortion.StringFixed(2),
			e.Payment.StringFixed(2),
			e.EndingBalance.StringFixed(2),
		}
		for i, c := range pdfScheduleColumns {
			pdf.CellFormat(c.width, 6, values[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfValue(v any) string {
	switch val := v.(type) {
	case float64:
		return decimal.NewFromFloat(val).StringFixed(2)
	default:
		return fmt.Sprint(val)
	}
}

func totalBalance(plan *payoff.Plan) decimal.Decimal {
	return model.TotalBalance(plan.Original)
}
