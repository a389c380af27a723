package payoff

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/model"
)

var (
	// ErrNoProgress indicates a month paid nothing while balances remained.
	ErrNoProgress = errors.New("payments never reduce the remaining balances")
	// ErrHorizonExceeded indicates debts were not settled within model.MaxHorizonMonths.
	ErrHorizonExceeded = fmt.Errorf("debts not paid off within %d months", model.MaxHorizonMonths)
)

// ComputeSchedule ranks debts and simulates up to horizon months of repayment.
// It stops early once every balance is zero. The caller's debts are not modified.
func ComputeSchedule(debts []model.Debt, cashFlow decimal.Decimal, horizon int) (model.Schedule, error) {
	if err := model.ValidateCashFlow(cashFlow); err != nil {
		return model.Schedule{}, err
	}
	if err := model.ValidateHorizon(horizon); err != nil {
		return model.Schedule{}, err
	}

	working := Rank(debts)
	schedule := model.Schedule{Entries: []model.LedgerEntry{}}

	for month := 1; month <= horizon && !allSettled(working); month++ {
		res := Step(month, working, cashFlow)
		schedule.Entries = append(schedule.Entries, res.Entries...)
		schedule.MonthsElapsed = month
		working = res.Debts
		cashFlow = res.NextCashFlow
	}
	schedule.Final = working
	schedule.PaidOff = allSettled(working)

	return schedule, nil
}

// PayoffDuration returns how many months it takes to settle every debt,
// independent of any display horizon.
func PayoffDuration(debts []model.Debt, cashFlow decimal.Decimal) (int, error) {
	if err := model.ValidateCashFlow(cashFlow); err != nil {
		return 0, err
	}

	working := Rank(debts)
	for month := 1; month <= model.MaxHorizonMonths; month++ {
		if allSettled(working) {
			return month - 1, nil
		}
		res := Step(month, working, cashFlow)
		if !res.TotalPaid.IsPositive() {
			slog.Debug("Payoff stalled",
				"month", month,
				"remaining", model.TotalBalance(res.Debts).StringFixed(2))
			return month - 1, ErrNoProgress
		}
		working = res.Debts
		cashFlow = res.NextCashFlow
	}
	if allSettled(working) {
		return model.MaxHorizonMonths, nil
	}
	return model.MaxHorizonMonths, ErrHorizonExceeded
}

func allSettled(debts []model.Debt) bool {
	for _, d := range debts {
		if !d.Settled() {
			return false
		}
	}
	return true
}

// Duration is a month count split into years and months.
type Duration struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// NewDuration splits months into years and months.
func NewDuration(months int) Duration {
	if months < 0 {
		months = 0
	}
	return Duration{Years: months / 12, Months: months % 12}
}

// Total returns the duration in months.
func (d Duration) Total() int {
	return d.Years*12 + d.Months
}

func (d Duration) String() string {
	return fmt.Sprintf("%d %s, %d %s", d.Years, plural(d.Years, "year"), d.Months, plural(d.Months, "month"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
