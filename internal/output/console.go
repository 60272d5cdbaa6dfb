package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// ConsoleFormatter prints the projection summary only
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "REVERSE MORTGAGE PROJECTION SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	if result.Name != "" {
		fmt.Fprintf(&buf, "Scenario: %s\n", result.Name)
	}
	writeSummary(&buf, result)
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter prints inputs, assumptions, the year-by-year table and the summary
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	in := result.Input

	fmt.Fprintln(&buf, strings.Repeat("=", 118))
	fmt.Fprintln(&buf, "REVERSE MORTGAGE PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 118))
	if result.Name != "" {
		fmt.Fprintf(&buf, "Scenario: %s\n", result.Name)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INPUTS:")
	fmt.Fprintf(&buf, "  Application Year:     %d\n", in.ApplicationYear)
	if in.SpouseAge != nil {
		fmt.Fprintf(&buf, "  Borrower Ages:        %d / %d\n", in.CurrentAge, *in.SpouseAge)
	} else {
		fmt.Fprintf(&buf, "  Borrower Age:         %d\n", in.CurrentAge)
	}
	fmt.Fprintf(&buf, "  Home Value:           %s (%s appreciation)\n", FormatCurrency(in.CurrentHomeValue), FormatPercentage(in.HomeAppreciationRate))
	fmt.Fprintf(&buf, "  Property:             %s, primary residence: %t\n", in.PropertyType, in.IsPrimaryResidence)
	if in.CurrentMortgageBalance.IsPositive() {
		fmt.Fprintf(&buf, "  Forward Mortgage:     %s at %s, %d years from %d\n",
			FormatCurrency(in.CurrentMortgageBalance), FormatPercentage(in.MortgageInterestRate), in.LoanTermYears, in.MortgageStartYear)
		if in.MonthlyPayment.IsPositive() {
			fmt.Fprintf(&buf, "  Monthly Payment:      %s\n", FormatCurrency(in.MonthlyPayment))
		}
	} else {
		fmt.Fprintln(&buf, "  Forward Mortgage:     none")
	}
	fmt.Fprintln(&buf)

	if len(result.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range result.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "%-6s %-9s %16s %16s %16s %8s %16s %16s  %s\n",
		"Year", "Age", "Home Value", "Mortgage", "Equity", "Factor", "Principal Limit", "Net Proceeds", "Status")
	fmt.Fprintln(&buf, strings.Repeat("-", 118))
	for _, row := range result.Rows {
		ages := fmt.Sprintf("%d", row.Age)
		if row.SpouseAge != nil {
			ages = fmt.Sprintf("%d/%d", row.Age, *row.SpouseAge)
		}
		fmt.Fprintf(&buf, "%-6d %-9s %16s %16s %16s %8s %16s %16s  %s\n",
			row.Year,
			ages,
			FormatCurrency(row.HomeValue),
			FormatCurrency(row.RemainingMortgageBalance),
			FormatCurrency(row.HomeEquity),
			row.LendingLimitFactor.StringFixed(3),
			FormatCurrency(row.ReverseMortgagePrincipalLimit),
			FormatCurrency(row.ReverseMortgageNetProceeds),
			statusLabel(row.Status))
	}
	fmt.Fprintln(&buf, strings.Repeat("-", 118))
	fmt.Fprintln(&buf)

	writeSummary(&buf, result)
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, result *domain.ProjectionResult) {
	s := result.Summary
	fmt.Fprintf(buf, "Status at Application:  %s\n", s.ApplicationStatus.Description())
	fmt.Fprintf(buf, "Principal Limit:        %s\n", FormatCurrency(s.PrincipalLimitAtApplication))
	fmt.Fprintf(buf, "Net Proceeds:           %s\n", FormatCurrency(s.ProceedsAtApplication))
	if s.MaxNetProceedsYear > 0 {
		fmt.Fprintf(buf, "Peak Net Proceeds:      %s in %d\n", FormatCurrency(s.MaxNetProceeds), s.MaxNetProceedsYear)
	} else {
		fmt.Fprintln(buf, "Peak Net Proceeds:      none within horizon")
	}
	fmt.Fprintf(buf, "First Eligible Year:    %s\n", FormatYear(s.FirstEligibleYear))
	if result.Input.CurrentMortgageBalance.IsPositive() {
		payoff := FormatYear(s.MortgagePayoffYear)
		if s.MortgagePayoffYear == 0 && len(result.Rows) > 0 && result.Rows[0].RemainingMortgageBalance.IsZero() {
			payoff = "before application"
		}
		fmt.Fprintf(buf, "Mortgage Paid Off:      %s\n", payoff)
	}
	fmt.Fprintf(buf, "Home Value at Horizon:  %s\n", FormatCurrency(s.HomeValueAtHorizon))
	fmt.Fprintf(buf, "Equity at Horizon:      %s\n", FormatCurrency(s.EquityAtHorizon))
}
