package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxHorizonMonths bounds every simulation.
const MaxHorizonMonths = 1200

// Validation errors.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptyCreditor     = fmt.Errorf("%w: creditor name cannot be empty", ErrInvalidInput)
	ErrNegativeBalance   = fmt.Errorf("%w: balance cannot be negative", ErrInvalidInput)
	ErrNegativeLimit     = fmt.Errorf("%w: credit limit cannot be negative", ErrInvalidInput)
	ErrInvalidMinPayment = fmt.Errorf("%w: invalid minimum payment amount", ErrInvalidInput)
	ErrNegativeCashFlow  = fmt.Errorf("%w: cash flow cannot be negative", ErrInvalidInput)
	ErrInvalidHorizon    = fmt.Errorf("%w: horizon must be between 1 and %d months", ErrInvalidInput, MaxHorizonMonths)
	ErrNoDebts           = fmt.Errorf("%w: at least one debt is required", ErrInvalidInput)
)

// DebtInput is raw, unvalidated debt data as entered by a user.
type DebtInput struct {
	Creditor   string          `json:"creditor"`
	Balance    decimal.Decimal `json:"balance"`
	Limit      decimal.Decimal `json:"limit"`
	MinPayment decimal.Decimal `json:"min_payment"`
}

// ValidateDebtInput checks a single debt the same way the entry form does.
func ValidateDebtInput(creditor string, balance, limit, minPayment decimal.Decimal) error {
	if strings.TrimSpace(creditor) == "" {
		return ErrEmptyCreditor
	}
	if balance.IsNegative() {
		return ErrNegativeBalance
	}
	if limit.IsNegative() {
		return ErrNegativeLimit
	}
	if minPayment.IsNegative() {
		return ErrInvalidMinPayment
	}
	// A debt that is already settled never charges its minimum.
	if !balance.IsZero() && minPayment.GreaterThan(balance) {
		return ErrInvalidMinPayment
	}
	return nil
}

// Validate checks the input.
func (in DebtInput) Validate() error {
	return ValidateDebtInput(in.Creditor, in.Balance, in.Limit, in.MinPayment)
}

// Debt converts validated input into a Debt.
func (in DebtInput) Debt() Debt {
	return NewDebt(strings.TrimSpace(in.Creditor), in.Balance, in.Limit, in.MinPayment)
}

// ValidateDebts validates every input and reports all failures at once.
func ValidateDebts(inputs []DebtInput) error {
	if len(inputs) == 0 {
		return ErrNoDebts
	}
	var errs []error
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("debt %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// BuildDebts validates inputs and converts them to debts.
func BuildDebts(inputs []DebtInput) ([]Debt, error) {
	if err := ValidateDebts(inputs); err != nil {
		return nil, err
	}
	debts := make([]Debt, 0, len(inputs))
	for _, in := range inputs {
		debts = append(debts, in.Debt())
	}
	return debts, nil
}

// ValidateCashFlow rejects negative monthly cash flow.
func ValidateCashFlow(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeCashFlow
	}
	return nil
}

// ValidateHorizon rejects horizons outside 1..MaxHorizonMonths.
func ValidateHorizon(months int) error {
	if months < 1 || months > MaxHorizonMonths {
		return fmt.Errorf("%w, got %d", ErrInvalidHorizon, months)
	}
	return nil
}
