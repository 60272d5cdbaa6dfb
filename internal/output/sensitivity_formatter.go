package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	var buf bytes.Buffer
	param := analysis.Parameter

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintln(&buf, strings.Repeat("=", 86))
	if analysis.ScenarioName != "" {
		fmt.Fprintf(&buf, "Scenario: %s\n", analysis.ScenarioName)
	}
	fmt.Fprintf(&buf, "Base Case: %s\n", formatParamValue(param.BaseValue, param.Unit))
	fmt.Fprintf(&buf, "Range: %s to %s (step %s, %d points)\n",
		formatParamValue(param.MinValue, param.Unit),
		formatParamValue(param.MaxValue, param.Unit),
		formatParamValue(param.Step, param.Unit),
		len(analysis.Points))
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-20s %16s %22s %16s %8s  %s\n",
		"Value", "Net Proceeds", "Peak Proceeds", "Equity at End", "Payoff", "Status")
	fmt.Fprintln(&buf, strings.Repeat("-", 86))

	for _, p := range analysis.Points {
		value := formatParamValue(p.Value, param.Unit)
		if p.Value.Equal(param.BaseValue) {
			value += " ← BASE"
		}
		peak := "-"
		if p.MaxNetProceedsYear > 0 {
			peak = fmt.Sprintf("%s (%d)", FormatCurrency(p.MaxNetProceeds), p.MaxNetProceedsYear)
		}
		payoff := "-"
		if p.MortgagePayoffYear > 0 {
			payoff = strconv.Itoa(p.MortgagePayoffYear)
		}
		fmt.Fprintf(&buf, "%-20s %16s %22s %16s %8s  %s\n",
			value,
			FormatCurrency(p.ProceedsAtApplication),
			peak,
			FormatCurrency(p.EquityAtHorizon),
			payoff,
			statusLabel(p.ApplicationStatus))
	}
	fmt.Fprintln(&buf)

	s := analysis.Summary
	fmt.Fprintln(&buf, "SENSITIVITY:")
	fmt.Fprintf(&buf, "  Net proceeds range across the sweep: %s\n", FormatCurrency(s.ProceedsRange))
	fmt.Fprintf(&buf, "  Equity at horizon range:             %s\n", FormatCurrency(s.EquityRange))
	if len(s.ZeroProceedsAt) > 0 {
		values := make([]string, len(s.ZeroProceedsAt))
		for i, v := range s.ZeroProceedsAt {
			values[i] = formatParamValue(v, param.Unit)
		}
		fmt.Fprintf(&buf, "  No proceeds at application for:      %s\n", strings.Join(values, ", "))
	}
	fmt.Fprintln(&buf)

	if len(s.Recommendations) > 0 {
		fmt.Fprintln(&buf, "RECOMMENDATIONS:")
		for _, rec := range s.Recommendations {
			fmt.Fprintf(&buf, "  • %s\n", rec)
		}
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"parameter_name", "parameter_value", "proceeds_at_application", "max_net_proceeds",
		"max_net_proceeds_year", "equity_at_horizon", "mortgage_payoff_year", "application_status"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range analysis.Points {
		record := []string{
			analysis.Parameter.Name,
			p.Value.String(),
			p.ProceedsAtApplication.StringFixed(2),
			p.MaxNetProceeds.StringFixed(2),
			strconv.Itoa(p.MaxNetProceedsYear),
			p.EquityAtHorizon.StringFixed(2),
			strconv.Itoa(p.MortgagePayoffYear),
			string(p.ApplicationStatus),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}

func formatParamValue(v decimal.Decimal, unit string) string {
	switch unit {
	case "percent":
		return v.StringFixed(2) + "%"
	case "dollars":
		return FormatCurrency(v)
	default:
		return v.String()
	}
}
