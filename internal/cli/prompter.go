package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/config"
	"github.com/Veraticus/snowball/internal/model"
)

// Prompter collects a repayment plan from an interactive session.
type Prompter struct {
	reader *LineReader
	writer io.Writer
}

// NewPrompter creates a prompter reading from reader and writing prompts to writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// CollectPlan asks for cash flow, horizon and each debt. Invalid answers are
// reported and asked again.
func (p *Prompter) CollectPlan(ctx context.Context) (*config.Plan, error) {
	if _, err := fmt.Fprintln(p.writer, FormatTitle("Enter your financial information")); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}

	cashFlow, err := p.promptAmount(ctx, "Monthly cash flow available for debt repayment", decimal.Zero)
	if err != nil {
		return nil, err
	}
	horizon, err := p.promptInt(ctx, "Maximum months to calculate", config.DefaultHorizon, 1, model.MaxHorizonMonths)
	if err != nil {
		return nil, err
	}
	count, err := p.promptInt(ctx, "Number of creditors", 1, 1, 100)
	if err != nil {
		return nil, err
	}

	debts := make([]model.DebtInput, 0, count)
	for i := 0; i < count; i++ {
		in, err := p.collectDebt(ctx, i+1)
		if err != nil {
			return nil, err
		}
		debts = append(debts, in)
	}

	return &config.Plan{CashFlow: cashFlow, Horizon: horizon, Debts: debts}, nil
}

func (p *Prompter) collectDebt(ctx context.Context, n int) (model.DebtInput, error) {
	for {
		if _, err := fmt.Fprintln(p.writer, TitleStyle.Render(fmt.Sprintf("Debt %d", n))); err != nil {
			return model.DebtInput{}, fmt.Errorf("failed to write debt header: %w", err)
		}

		creditor, err := p.prompt(ctx, "Creditor name")
		if err != nil {
			return model.DebtInput{}, err
		}
		balance, err := p.promptAmount(ctx, "Current balance", decimal.Zero)
		if err != nil {
			return model.DebtInput{}, err
		}
		limit, err := p.promptAmount(ctx, "Credit limit", decimal.Zero)
		if err != nil {
			return model.DebtInput{}, err
		}
		minPayment, err := p.promptAmount(ctx, "Minimum payment", decimal.Zero)
		if err != nil {
			return model.DebtInput{}, err
		}

		in := model.DebtInput{Creditor: creditor, Balance: balance, Limit: limit, MinPayment: minPayment}
		if err := in.Validate(); err != nil {
			p.complain(fmt.Sprintf("Debt %d: %s", n, strings.TrimPrefix(err.Error(), model.ErrInvalidInput.Error()+": ")))
			continue
		}
		return in, nil
	}
}

func (p *Prompter) prompt(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("input ended before %s was entered: %w", strings.ToLower(label), err)
		}
		return "", err
	}
	return line, nil
}

func (p *Prompter) promptAmount(ctx context.Context, label string, def decimal.Decimal) (decimal.Decimal, error) {
	for {
		line, err := p.prompt(ctx, label)
		if err != nil {
			return decimal.Zero, err
		}
		if line == "" {
			return def, nil
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(line, "$"), ",", ""))
		if err != nil || amount.IsNegative() {
			p.complain(fmt.Sprintf("%s must be a non-negative amount", label))
			continue
		}
		return amount, nil
	}
}

func (p *Prompter) promptInt(ctx context.Context, label string, def, lo, hi int) (int, error) {
	for {
		line, err := p.prompt(ctx, fmt.Sprintf("%s [%d]", label, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < lo || n > hi {
			p.complain(fmt.Sprintf("%s must be a whole number between %d and %d", label, lo, hi))
			continue
		}
		return n, nil
	}
}

func (p *Prompter) complain(msg string) {
	_, _ = fmt.Fprintln(p.writer, FormatError(msg))
}
