package model

import "github.com/shopspring/decimal"

// LedgerEntry records what happened to one debt in one simulated month.
type LedgerEntry struct {
	Creditor          string          `json:"creditor"`
	StartingBalance   decimal.Decimal `json:"starting_balance"`
	MinimumPortion    decimal.Decimal `json:"minimum_portion"`
	ExtraPortion      decimal.Decimal `json:"extra_portion"`
	Payment           decimal.Decimal `json:"payment"`
	EndingBalance     decimal.Decimal `json:"ending_balance"`
	CashFlowUsed      decimal.Decimal `json:"cash_flow_used"`
	CashFlowRemaining decimal.Decimal `json:"cash_flow_remaining"`
	Month             int             `json:"month"`
	Priority          int             `json:"priority"`
}

// PaidOff reports whether this entry settled the debt.
func (e LedgerEntry) PaidOff() bool {
	return e.StartingBalance.IsPositive() && !e.EndingBalance.IsPositive()
}

// Schedule is the ordered ledger of a simulation. Final holds the debts, in
// priority order, as they stand after the last simulated month.
type Schedule struct {
	Entries       []LedgerEntry `json:"entries"`
	Final         []Debt        `json:"final"`
	MonthsElapsed int           `json:"months_elapsed"`
	PaidOff       bool          `json:"paid_off"`
}

// Month returns the entries recorded for month m, in priority order.
func (s Schedule) Month(m int) []LedgerEntry {
	var out []LedgerEntry
	for _, e := range s.Entries {
		if e.Month == m {
			out = append(out, e)
		}
	}
	return out
}

// Months groups entries by month. Index 0 holds month 1.
func (s Schedule) Months() [][]LedgerEntry {
	months := make([][]LedgerEntry, s.MonthsElapsed)
	for _, e := range s.Entries {
		if e.Month < 1 || e.Month > s.MonthsElapsed {
			continue
		}
		months[e.Month-1] = append(months[e.Month-1], e)
	}
	return months
}

// TotalPaid sums every payment in the schedule.
func (s Schedule) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.Payment)
	}
	return total
}

// MonthTotal sums the payments made in month m.
func (s Schedule) MonthTotal(m int) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Month(m) {
		total = total.Add(e.Payment)
	}
	return total
}

// PayoffMonths maps the priority of each debt settled within the schedule to
// the month it was settled.
func (s Schedule) PayoffMonths() map[int]int {
	out := make(map[int]int)
	for _, e := range s.Entries {
		if e.PaidOff() {
			out[e.Priority] = e.Month
		}
	}
	return out
}
