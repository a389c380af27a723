package payoff

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/model"
)

var hundred = decimal.NewFromInt(100)

// DebtProgress compares a debt's original balance with its balance at the end
// of the displayed schedule.
type DebtProgress struct {
	Creditor        string          `json:"creditor"`
	OriginalBalance decimal.Decimal `json:"original_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	PercentPaid     decimal.Decimal `json:"percent_paid"`
	PaidOffMonth    int             `json:"paid_off_month,omitempty"`
}

// Plan bundles everything a presenter needs to show a repayment plan.
type Plan struct {
	PayoffErr      error          `json:"-"`
	CashFlow       decimal.Decimal `json:"cash_flow"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	PayoffError    string          `json:"payoff_error,omitempty"`
	Original       []model.Debt    `json:"original"`
	Ranked         []model.Debt    `json:"ranked"`
	Progress       []DebtProgress  `json:"progress"`
	Schedule       model.Schedule  `json:"schedule"`
	PayoffDuration Duration        `json:"payoff_duration"`
	Horizon        int             `json:"horizon"`
	PayoffMonths   int             `json:"payoff_months"`
}

// BuildPlan computes the display schedule for horizon months and, separately,
// the full payoff duration. Failing to ever pay off is recorded on the plan,
// not returned as an error.
func BuildPlan(debts []model.Debt, cashFlow decimal.Decimal, horizon int) (*Plan, error) {
	original := model.CloneDebts(debts)

	schedule, err := ComputeSchedule(debts, cashFlow, horizon)
	if err != nil {
		return nil, err
	}

	months, payoffErr := PayoffDuration(debts, cashFlow)
	ranked := Rank(debts)
	plan := &Plan{
		Original:       original,
		Ranked:         ranked,
		Schedule:       schedule,
		CashFlow:       cashFlow,
		Horizon:        horizon,
		PayoffMonths:   months,
		PayoffDuration: NewDuration(months),
		PayoffErr:      payoffErr,
		TotalPaid:      schedule.TotalPaid(),
		Progress:       Progress(ranked, schedule),
	}
	if payoffErr != nil {
		plan.PayoffError = payoffErr.Error()
	}

	slog.Debug("Built repayment plan",
		"debts", len(debts),
		"horizon", horizon,
		"months_displayed", schedule.MonthsElapsed,
		"payoff_months", months,
		"paid_off", schedule.PaidOff)

	return plan, nil
}

// PaidOff reports whether every debt is eventually settled.
func (p *Plan) PaidOff() bool {
	return p.PayoffErr == nil
}

// Truncated reports whether the display horizon ended before payoff.
func (p *Plan) Truncated() bool {
	return !p.Schedule.PaidOff
}

// Progress reports how much of each ranked debt the schedule pays down.
// ranked must be in the order ComputeSchedule simulated them.
func Progress(ranked []model.Debt, schedule model.Schedule) []DebtProgress {
	payoffMonths := schedule.PayoffMonths()

	out := make([]DebtProgress, 0, len(ranked))
	for i, debt := range ranked {
		current := decimal.Max(debt.Balance, decimal.Zero)
		if i < len(schedule.Final) {
			current = schedule.Final[i].Balance
		}
		out = append(out, DebtProgress{
			Creditor:        debt.Creditor,
			OriginalBalance: debt.Balance,
			CurrentBalance:  current,
			PercentPaid:     percentPaid(debt.Balance, current),
			PaidOffMonth:    payoffMonths[i+1],
		})
	}
	return out
}

func percentPaid(original, current decimal.Decimal) decimal.Decimal {
	if !original.IsPositive() {
		return hundred
	}
	paid := original.Sub(current).Div(original).Mul(hundred)
	return decimal.Min(decimal.Max(paid, decimal.Zero), hundred)
}
