package payoff

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/snowball/internal/model"
)

func TestBuildPlan_TruncatedDisplay(t *testing.T) {
	debts := []model.Debt{
		debt("D2", "1000", "20"),
		debt("D1", "500", "50"),
	}

	plan, err := BuildPlan(debts, decimal.Zero, 12)
	require.NoError(t, err)

	assert.Equal(t, []string{"D2", "D1"}, creditors(plan.Original))
	assert.Equal(t, []string{"D1", "D2"}, creditors(plan.Ranked))
	assert.Equal(t, 12, plan.Schedule.MonthsElapsed)
	assert.True(t, plan.Truncated())
	assert.True(t, plan.PaidOff())
	assert.Equal(t, 22, plan.PayoffMonths)
	assert.Equal(t, Duration{Years: 1, Months: 10}, plan.PayoffDuration)
	assert.Empty(t, plan.PayoffError)

	// 10 months of 50 to D1, then 10*20 + 2*70 to D2.
	assert.True(t, plan.TotalPaid.Equal(dec("840")))

	require.Len(t, plan.Progress, 2)
	d1, d2 := plan.Progress[0], plan.Progress[1]
	assert.Equal(t, "D1", d1.Creditor)
	assert.True(t, d1.PercentPaid.Equal(dec("100")))
	assert.Equal(t, 10, d1.PaidOffMonth)
	assert.Equal(t, "D2", d2.Creditor)
	assert.True(t, d2.CurrentBalance.Equal(dec("660")))
	assert.True(t, d2.PercentPaid.Equal(dec("34")))
	assert.Zero(t, d2.PaidOffMonth)

	// Building the plan must not touch the caller's debts.
	assert.True(t, debts[1].Balance.Equal(dec("500")))
	assert.True(t, debts[1].MinPayment.Equal(dec("50")))
}

func TestBuildPlan_NeverPaidOff(t *testing.T) {
	plan, err := BuildPlan([]model.Debt{debt("Frozen", "100", "0")}, decimal.Zero, 3)
	require.NoError(t, err)

	assert.False(t, plan.PaidOff())
	assert.ErrorIs(t, plan.PayoffErr, ErrNoProgress)
	assert.Equal(t, ErrNoProgress.Error(), plan.PayoffError)
	assert.Equal(t, 3, plan.Schedule.MonthsElapsed)
	assert.True(t, plan.Progress[0].PercentPaid.IsZero())
}

func TestBuildPlan_InvalidHorizon(t *testing.T) {
	_, err := BuildPlan([]model.Debt{debt("Card", "100", "10")}, decimal.Zero, 0)
	assert.ErrorIs(t, err, model.ErrInvalidHorizon)
}

func TestProgress_SettledOriginal(t *testing.T) {
	progress := Progress([]model.Debt{debt("Zero", "0", "0")}, model.Schedule{})
	require.Len(t, progress, 1)
	assert.True(t, progress[0].PercentPaid.Equal(dec("100")))
	assert.True(t, progress[0].CurrentBalance.IsZero())
}
