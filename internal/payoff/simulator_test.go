package payoff

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/snowball/internal/model"
)

func TestStep_MinimumsOnly(t *testing.T) {
	debts := Rank([]model.Debt{
		debt("D1", "500", "50"),
		debt("D2", "1000", "20"),
	})

	res := Step(1, debts, decimal.Zero)

	require.Len(t, res.Entries, 2)
	assert.Equal(t, "D1", res.Entries[0].Creditor)
	assert.True(t, res.Entries[0].Payment.Equal(dec("50")))
	assert.True(t, res.Entries[0].EndingBalance.Equal(dec("450")))
	assert.True(t, res.Entries[1].Payment.Equal(dec("20")))
	assert.True(t, res.Entries[1].EndingBalance.Equal(dec("980")))
	assert.True(t, res.TotalPaid.Equal(dec("70")))
	assert.True(t, res.NextCashFlow.IsZero())
	assert.True(t, res.Entries[0].CashFlowUsed.IsZero())
}

func TestStep_ExtraGoesToFirstUnsettledDebt(t *testing.T) {
	debts := []model.Debt{
		debt("First", "1000", "50"),
		debt("Second", "1000", "20"),
	}

	res := Step(1, debts, dec("100"))

	first, second := res.Entries[0], res.Entries[1]
	assert.True(t, first.Payment.Equal(dec("150")))
	assert.True(t, first.MinimumPortion.Equal(dec("50")))
	assert.True(t, first.ExtraPortion.Equal(dec("100")))
	assert.True(t, second.Payment.Equal(dec("20")))
	assert.True(t, second.ExtraPortion.IsZero())
	assert.True(t, first.CashFlowUsed.Equal(dec("100")))
	assert.True(t, first.CashFlowRemaining.IsZero())
}

func TestStep_ExcessCascadesWithinMonth(t *testing.T) {
	debts := []model.Debt{
		debt("Small", "60", "30"),
		debt("Big", "1000", "20"),
	}

	res := Step(1, debts, dec("100"))

	small, big := res.Entries[0], res.Entries[1]
	assert.True(t, small.Payment.Equal(dec("60")))
	assert.True(t, small.EndingBalance.IsZero())
	assert.True(t, small.PaidOff())

	// 30 + 100 - 60 = 70 left in the pool for Big on top of its own 20.
	assert.True(t, big.Payment.Equal(dec("90")))
	assert.True(t, big.ExtraPortion.Equal(dec("70")))
	assert.True(t, big.EndingBalance.Equal(dec("910")))

	// Small's minimum joins next month's cash flow.
	assert.True(t, res.NextCashFlow.Equal(dec("130")))
	assert.True(t, res.Debts[0].MinPayment.IsZero())
	assert.True(t, small.CashFlowUsed.Equal(dec("100")))
}

func TestStep_SettledDebtGetsZeroRow(t *testing.T) {
	debts := []model.Debt{
		{Creditor: "Done", Balance: decimal.Zero, MinPayment: decimal.Zero},
		debt("Open", "100", "10"),
	}

	res := Step(3, debts, dec("5"))

	require.Len(t, res.Entries, 2)
	done := res.Entries[0]
	assert.Equal(t, 3, done.Month)
	assert.Equal(t, 1, done.Priority)
	assert.True(t, done.Payment.IsZero())
	assert.True(t, done.EndingBalance.IsZero())
	assert.False(t, done.PaidOff())
	assert.True(t, res.Entries[1].Payment.Equal(dec("15")))
}

func TestStep_DoesNotMutateInput(t *testing.T) {
	debts := []model.Debt{debt("Only", "50", "50")}

	res := Step(1, debts, decimal.Zero)

	assert.True(t, res.Debts[0].Balance.IsZero())
	assert.True(t, debts[0].Balance.Equal(dec("50")))
	assert.True(t, debts[0].MinPayment.Equal(dec("50")))
}

func TestStep_ClampsNegativeInputs(t *testing.T) {
	debts := []model.Debt{
		{Creditor: "Overpaid", Balance: dec("-10"), MinPayment: dec("5")},
		{Creditor: "Weird", Balance: dec("100"), MinPayment: dec("-5")},
	}

	res := Step(1, debts, dec("-50"))

	for _, e := range res.Entries {
		assert.False(t, e.Payment.IsNegative(), e.Creditor)
		assert.False(t, e.EndingBalance.IsNegative(), e.Creditor)
	}
	for _, d := range res.Debts {
		assert.False(t, d.Balance.IsNegative(), d.Creditor)
	}
	assert.True(t, res.NextCashFlow.IsZero())
	assert.True(t, res.TotalPaid.IsZero())
}

func TestStep_ConservesCash(t *testing.T) {
	// The trailing debt's minimum exceeds its balance; the excess has
	// nowhere to go, so less than cash flow + minimums is disbursed.
	debts := []model.Debt{
		debt("Large", "1000", "100"),
		{Creditor: "Tail", Balance: dec("5"), MinPayment: dec("25")},
	}

	res := Step(1, debts, dec("10"))

	assert.True(t, res.Entries[0].Payment.Equal(dec("110")))
	assert.True(t, res.Entries[1].Payment.Equal(dec("5")))
	assert.True(t, res.TotalPaid.Equal(dec("115")))
	assert.True(t, res.TotalPaid.LessThanOrEqual(dec("135")))
	assert.True(t, res.Entries[0].CashFlowUsed.Equal(dec("10")))
	assert.True(t, res.Entries[0].CashFlowRemaining.IsZero())
}
