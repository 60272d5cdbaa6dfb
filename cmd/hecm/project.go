package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/config"
	"github.com/rgehrsitz/hecmproj/internal/output"
)

// formatExtensions maps canonical formatter names to file extensions
var formatExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"json":         "json",
	"html":         "html",
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Project reverse mortgage proceeds year by year",
		Long: `Project an input file over its horizon.

Examples:
  hecm project household.yaml
  hecm project household.yaml --format csv --horizon 20
  hecm project household.yaml --with delay_5yr --transform set_appreciation:rate=2
  hecm project household.yaml --format html   # writes hecm_projection_<time>.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := prepare(cmd, args[0])
			if err != nil {
				return err
			}

			templates, _ := cmd.Flags().GetString("with")
			specs, _ := cmd.Flags().GetStringArray("transform")
			if err := r.applyWhatIf(templates, specs); err != nil {
				return err
			}

			result, err := r.project(cmd.Context())
			if err != nil {
				return fmt.Errorf("projection failed: %w", err)
			}

			format, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			save, _ := cmd.Flags().GetBool("save")
			if save || f.Name() == "html" {
				filename, err := output.WriteFormatted(f, result, formatExtensions[f.Name()])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addEngineFlags(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, json, html)")
	cmd.Flags().String("with", "", "Comma-separated templates applied to the input before projecting")
	cmd.Flags().StringArray("transform", nil, "Transform spec applied after templates, e.g. delay_application:years=2 (repeatable)")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [input-file]",
		Short: "Print the month-by-month forward mortgage schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := prepare(cmd, args[0])
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetInt("from")
			if from == 0 {
				from = r.input.ApplicationYear
			}
			months, _ := cmd.Flags().GetInt("months")

			entries, err := r.engine.Schedule(r.input, from, months)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var data []byte
			switch output.NormalizeFormatName(format) {
			case "csv":
				data, err = output.ScheduleCSV(entries)
			case "json":
				data, err = json.MarshalIndent(entries, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown schedule format %q (valid: csv, json)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().Int("from", 0, "First calendar year of the schedule (default: application year)")
	cmd.Flags().Int("months", 12, "Number of months to print")
	cmd.Flags().StringP("format", "f", "csv", "Output format (csv, json)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file against the lending limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := prepare(cmd, args[0])
			if err != nil {
				return err
			}
			if err := r.engine.ValidateInput(r.input, r.horizon); err != nil {
				return err
			}
			if _, err := calculation.NewAmortizer(r.input.MortgageTerms(), r.input.ApplicationYear, r.input.Reconciliation()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
}

func exampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example [output-file]",
		Short: "Print or write an example input file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(config.ExampleYAML())
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			if err := config.WriteExample(args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
