package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/config"
	"github.com/rgehrsitz/hecmproj/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hecm-tui [config-file]",
		Short:        "Interactive reverse mortgage projection explorer",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := args[0]
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				return fmt.Errorf("config file not found: %s", configPath)
			}

			limitsPath, _ := cmd.Flags().GetString("limits")
			horizon, _ := cmd.Flags().GetInt("horizon")
			if !cmd.Flags().Changed("horizon") {
				horizon = -1
			}

			limits, err := config.LoadLendingLimits(limitsPath)
			if err != nil {
				return err
			}
			engine, err := calculation.NewProjectionEngine(limits)
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.NewModel(configPath, engine, horizon), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("limits", "", "Lending limits YAML file (default: built-in table)")
	cmd.Flags().Int("horizon", 0, "Projection horizon in years (default: the input file's horizon_years)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
