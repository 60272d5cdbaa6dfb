package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/output"
)

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep one input parameter and report how proceeds respond",
		Long: `Perform a single-parameter sensitivity analysis.

Examples:
  hecm sensitivity household.yaml --parameter appreciation_rate
  hecm sensitivity household.yaml --parameter monthly_payment --min 500 --max 2500 --step 250
  hecm sensitivity household.yaml --parameter home_value --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSensitivityAnalysis,
	}
	addEngineFlags(cmd)
	cmd.Flags().String("parameter", domain.SensitivityAppreciationRate.Name, "Parameter to sweep")
	cmd.Flags().String("min", "", "Sweep minimum (default: the parameter's built-in range)")
	cmd.Flags().String("max", "", "Sweep maximum")
	cmd.Flags().String("step", "", "Sweep step")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	cmd.Flags().Bool("list-parameters", false, "List the parameters that can be swept")
	return cmd
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list-parameters"); list {
		fmt.Fprint(cmd.OutOrStdout(), parameterHelp())
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("input file required (use --list-parameters to see sweepable parameters)")
	}

	name, _ := cmd.Flags().GetString("parameter")
	param, ok := domain.SensitivityParameters[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q\n\n%s", name, parameterHelp())
	}
	for flag, target := range map[string]*decimal.Decimal{
		"min":  &param.MinValue,
		"max":  &param.MaxValue,
		"step": &param.Step,
	} {
		raw, _ := cmd.Flags().GetString(flag)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid --%s %q: %w", flag, raw, err)
		}
		*target = v
	}

	r, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}

	analysis, err := calculation.NewSensitivityAnalyzer(r.engine).
		AnalyzeParameter(cmd.Context(), r.config.Name, r.input, r.horizon, param)
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	out, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func parameterHelp() string {
	names := make([]string, 0, len(domain.SensitivityParameters))
	for name := range domain.SensitivityParameters {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Sweepable parameters:\n")
	for _, name := range names {
		p := domain.SensitivityParameters[name]
		fmt.Fprintf(&b, "  %-24s %s (%s to %s step %s %s)\n",
			name, p.Description, p.MinValue, p.MaxValue, p.Step, p.Unit)
	}
	return b.String()
}
