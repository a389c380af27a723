package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/snowball/internal/tui"
	"github.com/Veraticus/snowball/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through the repayment plan month by month",
		RunE:  runBrowse,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin)")
	_ = viper.BindPFlag("browse.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	plan, err := loadAndBuildPlan(cmd)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), plan, tui.WithTheme(themes.ByName(viper.GetString("browse.theme"))))
}
