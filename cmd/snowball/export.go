package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/snowball/internal/cli"
	"github.com/Veraticus/snowball/internal/common"
	"github.com/Veraticus/snowball/internal/config"
	"github.com/Veraticus/snowball/internal/export"
	"github.com/Veraticus/snowball/internal/payoff"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the repayment plan to XLSX or PDF",
		Example: `  snowball export --file debts.yaml --xlsx plan.xlsx
  snowball export --file debts.yaml --pdf plan.pdf --months 120`,
		RunE: runExport,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("xlsx", "", "Write a workbook with debts, schedule and summary sheets")
	cmd.Flags().String("pdf", "", "Write a PDF summary and schedule")

	return cmd
}

type exporter struct {
	build func(*payoff.Plan) ([]byte, error)
	flag  string
}

func runExport(cmd *cobra.Command, _ []string) error {
	exporters := []exporter{
		{flag: "xlsx", build: export.BuildPlanXLSX},
		{flag: "pdf", build: export.BuildPlanPDF},
	}

	targets := map[string]string{}
	for _, e := range exporters {
		if path, _ := cmd.Flags().GetString(e.flag); path != "" {
			targets[e.flag] = config.ExpandPath(path)
		}
	}
	if len(targets) == 0 {
		return common.NewUserError("Nothing to export: pass --xlsx and/or --pdf", common.ErrUnsupportedFormat)
	}

	plan, err := loadAndBuildPlan(cmd)
	if err != nil {
		return err
	}

	for _, e := range exporters {
		path, ok := targets[e.flag]
		if !ok {
			continue
		}
		data, err := e.build(plan)
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", e.flag, err)
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		slog.Debug("Exported plan", "format", e.flag, "path", path, "bytes", len(data))
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Wrote "+path)); err != nil {
			return err
		}
	}
	return nil
}
