package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/snowball/internal/cli"
	"github.com/Veraticus/snowball/internal/common"
	"github.com/Veraticus/snowball/internal/model"
	"github.com/Veraticus/snowball/internal/payoff"
)

func rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Show the order debts are paid off in",
		Long: `Rank debts by cash flow recapture: the minimum payment as a percentage of
the balance. The debt that frees the most cash flow per dollar repaid comes first.`,
		RunE: runRank,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("format", cli.FormatTable, "Output format (table, json)")

	return cmd
}

func runRank(cmd *cobra.Command, _ []string) error {
	p, err := loadPlan(cmd)
	if err != nil {
		return err
	}
	debts, err := model.BuildDebts(p.Debts)
	if err != nil {
		return common.NewUserError("The debts are invalid", err)
	}
	ranked := payoff.Rank(debts)

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case cli.FormatTable:
		_, err = fmt.Fprintln(out, cli.RenderRanking(ranked))
		return err
	case cli.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	default:
		return fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, format)
	}
}
