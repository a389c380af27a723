package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/snowball/internal/cli"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute and display a repayment plan",
		Long: `Compute a month-by-month repayment plan.

Shows the debts as entered, the payoff order, every monthly payment within the
displayed horizon, progress per debt and how long it takes to pay off everything.`,
		Example: `  snowball plan --file debts.yaml
  snowball plan --file debts.csv --cash-flow 250 --months 24
  snowball plan --interactive --format json`,
		RunE: runPlan,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("format", cli.FormatTable, "Output format (table, json, csv)")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlag("plan.format", cmd.Flags().Lookup("format")); err != nil {
		return err
	}

	plan, err := loadAndBuildPlan(cmd)
	if err != nil {
		return err
	}
	return cli.WritePlan(cmd.OutOrStdout(), plan, viper.GetString("plan.format"))
}
