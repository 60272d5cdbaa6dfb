package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hecmproj/internal/compare"
	"github.com/rgehrsitz/hecmproj/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the input against built-in what-if templates",
		Long: `Compare a base input against alternative scenarios.

Examples:
  hecm compare household.yaml --with delay_5yr,pay_off_mortgage
  hecm compare household.yaml --with appreciation_flat,appreciation_high --format csv
  hecm compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}

			templatesStr, _ := cmd.Flags().GetString("with")
			templates := transform.ParseTemplateList(templatesStr)
			if len(templates) == 0 {
				return fmt.Errorf("--with flag is required to specify templates to compare (or use --list-templates)")
			}

			r, err := prepare(cmd, args[0])
			if err != nil {
				return err
			}
			baseName, _ := cmd.Flags().GetString("base")
			if baseName == "" {
				baseName = r.config.Name
			}

			set, err := compare.NewCompareEngine(r.engine).Compare(cmd.Context(), r.input, compare.CompareOptions{
				BaseScenarioName: baseName,
				HorizonYears:     r.horizon,
				Templates:        templates,
				ConfigPath:       args[0],
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(set)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addEngineFlags(cmd)
	cmd.Flags().String("base", "", "Name for the base scenario (default: the input's name)")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	return cmd
}
