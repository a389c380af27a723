package payoff

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/model"
)

// StepResult is the outcome of simulating one month.
type StepResult struct {
	Debts        []model.Debt
	Entries      []model.LedgerEntry
	NextCashFlow decimal.Decimal
	TotalPaid    decimal.Decimal
}

// Step simulates month m for debts, which must already be in priority order.
//
// Cash flow is pooled and cascades down the order: each unsettled debt may
// draw its own minimum plus whatever is left in the pool. When that settles the
// debt, the excess stays in the pool for the next debt this month and the
// debt's minimum joins the cash flow from next month on. The input slice is
// never modified.
func Step(month int, debts []model.Debt, cashFlow decimal.Decimal) StepResult {
	working := model.CloneDebts(debts)
	cashFlow = decimal.Max(cashFlow, decimal.Zero)

	pool := cashFlow
	freed := decimal.Zero
	totalPaid := decimal.Zero
	extras := decimal.Zero

	entries := make([]model.LedgerEntry, 0, len(working))
	for i := range working {
		debt := &working[i]
		entry := model.LedgerEntry{
			Month:           month,
			Priority:        i + 1,
			Creditor:        debt.Creditor,
			StartingBalance: debt.Balance,
			MinimumPortion:  decimal.Zero,
			ExtraPortion:    decimal.Zero,
			Payment:         decimal.Zero,
			EndingBalance:   decimal.Max(debt.Balance, decimal.Zero),
		}

		if debt.Settled() {
			debt.Balance = decimal.Zero
			entries = append(entries, entry)
			continue
		}

		minPayment := decimal.Max(debt.MinPayment, decimal.Zero)

		available := minPayment.Add(pool)
		var payment decimal.Decimal
		if available.GreaterThanOrEqual(debt.Balance) {
			payment = debt.Balance
			pool = available.Sub(debt.Balance)
		} else {
			payment = available
			pool = decimal.Zero
		}

		debt.Balance = decimal.Max(debt.Balance.Sub(payment), decimal.Zero)
		if debt.Settled() {
			freed = freed.Add(minPayment)
			debt.MinPayment = decimal.Zero
		}

		entry.Payment = payment
		entry.MinimumPortion = decimal.Min(payment, minPayment)
		entry.ExtraPortion = payment.Sub(entry.MinimumPortion)
		entry.EndingBalance = debt.Balance
		entries = append(entries, entry)

		totalPaid = totalPaid.Add(payment)
		extras = extras.Add(entry.ExtraPortion)
	}

	// Extra payments draw on cash flow before any leftover minimums.
	used := decimal.Min(extras, cashFlow)
	remaining := cashFlow.Sub(used)
	for i := range entries {
		entries[i].CashFlowUsed = used
		entries[i].CashFlowRemaining = remaining
	}

	return StepResult{
		Debts:        working,
		Entries:      entries,
		NextCashFlow: cashFlow.Add(freed),
		TotalPaid:    totalPaid,
	}
}
