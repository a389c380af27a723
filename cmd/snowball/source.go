package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/snowball/internal/cli"
	"github.com/Veraticus/snowball/internal/common"
	"github.com/Veraticus/snowball/internal/config"
	"github.com/Veraticus/snowball/internal/model"
	"github.com/Veraticus/snowball/internal/payoff"
)

// addSourceFlags registers the flags every plan-consuming command shares.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Plan file (.yaml, .yml) or debt list (.csv)")
	cmd.Flags().StringP("cash-flow", "c", "", "Monthly cash flow available beyond the minimum payments")
	cmd.Flags().IntP("months", "m", config.DefaultHorizon, fmt.Sprintf("Months to show (1-%d)", model.MaxHorizonMonths))
	cmd.Flags().BoolP("interactive", "i", false, "Enter the plan interactively")

	// Several commands share these keys, so they are bound when the command runs.
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return bindSourceFlags(cmd)
	}
}

func bindSourceFlags(cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		"plan.file":        "file",
		"plan.cash_flow":   "cash-flow",
		"plan.months":      "months",
		"plan.interactive": "interactive",
	} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind %s: %w", flag, err)
		}
	}
	return nil
}

// loadPlan reads the plan from the interactive prompt, a plan file or the
// config's debts list, then applies cash flow and horizon overrides.
func loadPlan(cmd *cobra.Command) (*config.Plan, error) {
	var (
		p   *config.Plan
		err error
	)

	switch file := viper.GetString("plan.file"); {
	case viper.GetBool("plan.interactive"):
		p, err = cli.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()).CollectPlan(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to collect plan: %w", err)
		}
		return p, nil
	case file != "":
		p, err = config.LoadPlanFile(file)
		if err != nil {
			return nil, common.NewUserError("Could not load "+file, err)
		}
	default:
		debts, err := config.DebtsFromViper(viper.GetViper())
		if err != nil {
			return nil, common.NewUserError("Could not read debts from the config", err)
		}
		if len(debts) == 0 {
			return nil, common.NewUserError("No debts to plan: pass --file, --interactive or list debts in the config", common.ErrNoDebtSource)
		}
		p = &config.Plan{Debts: debts}
	}

	if err := applyOverrides(p); err != nil {
		return nil, err
	}
	return p, nil
}

// applyOverrides lets flags, environment and config settings replace the
// plan's cash flow and horizon. A plan without a horizon gets the default.
func applyOverrides(p *config.Plan) error {
	if viper.IsSet("plan.cash_flow") {
		raw := viper.GetString("plan.cash_flow")
		if raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return common.NewUserError("Cash flow must be a number", fmt.Errorf("%w: %q", common.ErrInvalidConfig, raw))
			}
			p.CashFlow = amount
		}
	}
	if viper.IsSet("plan.months") || p.Horizon == 0 {
		p.Horizon = viper.GetInt("plan.months")
	}
	if p.Horizon == 0 {
		p.Horizon = config.DefaultHorizon
	}
	return nil
}

// validatePlan reports every problem with the plan at once.
func validatePlan(p *config.Plan) error {
	return errors.Join(
		model.ValidateDebts(p.Debts),
		model.ValidateCashFlow(p.CashFlow),
		model.ValidateHorizon(p.Horizon),
	)
}

// buildPlan validates p and computes its repayment plan.
func buildPlan(p *config.Plan) (*payoff.Plan, error) {
	if err := validatePlan(p); err != nil {
		return nil, common.NewUserError("The plan is invalid", err)
	}
	debts, err := model.BuildDebts(p.Debts)
	if err != nil {
		return nil, common.NewUserError("The plan is invalid", err)
	}
	plan, err := payoff.BuildPlan(debts, p.CashFlow, p.Horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to compute plan: %w", err)
	}
	return plan, nil
}

// loadAndBuildPlan is loadPlan followed by buildPlan.
func loadAndBuildPlan(cmd *cobra.Command) (*payoff.Plan, error) {
	p, err := loadPlan(cmd)
	if err != nil {
		return nil, err
	}
	return buildPlan(p)
}
