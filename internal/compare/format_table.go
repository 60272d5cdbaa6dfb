package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("REVERSE MORTGAGE SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 92) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Horizon: %d years\n", compSet.HorizonYears))
	sb.WriteString("\n")

	// Column widths
	nameWidth := 28
	numWidth := 15

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Net Proceeds",
		numWidth, "Peak Proceeds",
		numWidth, "Equity at End",
		numWidth, "Mortgage Payoff"))
	sb.WriteString(strings.Repeat("-", 92) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 92) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 92) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 92) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Net Proceeds:     %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.ProceedsDiffFromBase),
				tf.formatDecimal(alt.ProceedsDiffFromBase.Abs()),
				alt.ProceedsPctFromBase.StringFixed(1)))

			if !alt.MaxProceedsDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Peak Proceeds:    %s$%s\n",
					tf.deltaSymbol(alt.MaxProceedsDiff),
					tf.formatDecimal(alt.MaxProceedsDiff.Abs())))
			}

			if !alt.EquityDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Home Equity:      %s$%s\n",
					tf.deltaSymbol(alt.EquityDiffFromBase),
					tf.formatDecimal(alt.EquityDiffFromBase.Abs())))
			}

			if alt.PayoffYearDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Mortgage Payoff:  %+d years\n", alt.PayoffYearDiff))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 92) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	proceeds := "$" + tf.formatDecimal(result.ProceedsAtApplication)
	if result.ApplicationStatus.IsProgramIneligible() {
		proceeds = "ineligible"
	}

	peak := "-"
	if result.MaxNetProceedsYear > 0 {
		peak = fmt.Sprintf("$%s (%d)", tf.formatDecimal(result.MaxNetProceeds), result.MaxNetProceedsYear)
	}

	payoff := "beyond horizon"
	if result.MortgagePayoffYear > 0 {
		payoff = fmt.Sprintf("%d", result.MortgagePayoffYear)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, proceeds,
		numWidth, peak,
		numWidth, "$"+tf.formatDecimal(result.EquityAtHorizon),
		numWidth, payoff)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		// Format in millions
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		// Format in thousands
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign prefix for a delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.ProceedsDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s", tf.formatDecimal(alt.ProceedsDiffFromBase))
		} else if alt.ProceedsDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s", tf.formatDecimal(alt.ProceedsDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
