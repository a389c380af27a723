package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/snowball/internal/cli"
	"github.com/Veraticus/snowball/internal/common"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a plan for problems",
		Long: `Validate every debt, the cash flow and the horizon of a plan and report
all problems at once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	addSourceFlags(cmd)

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		viper.Set("plan.file", args[0])
	}

	p, err := loadPlan(cmd)
	if err != nil {
		return err
	}
	if err := validatePlan(p); err != nil {
		return common.NewUserError("The plan is invalid", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Plan is valid: %d debts, %s monthly cash flow, %d months",
		len(p.Debts), cli.FormatCurrency(p.CashFlow), p.Horizon)))
	return err
}
