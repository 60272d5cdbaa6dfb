package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Application Year",
		"Status",
		"Net Proceeds",
		"Peak Proceeds",
		"Peak Year",
		"First Eligible Year",
		"Mortgage Payoff Year",
		"Equity at Horizon",
		"Proceeds Diff from Base",
		"Proceeds % Change",
		"Peak Diff from Base",
		"Equity Diff from Base",
		"Payoff Year Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.ApplicationYear),
		string(result.ApplicationStatus),
		result.ProceedsAtApplication.StringFixed(2),
		result.MaxNetProceeds.StringFixed(2),
		strconv.Itoa(result.MaxNetProceedsYear),
		strconv.Itoa(result.FirstEligibleYear),
		strconv.Itoa(result.MortgagePayoffYear),
		result.EquityAtHorizon.StringFixed(2),
		result.ProceedsDiffFromBase.StringFixed(2),
		result.ProceedsPctFromBase.StringFixed(2),
		result.MaxProceedsDiff.StringFixed(2),
		result.EquityDiffFromBase.StringFixed(2),
		strconv.Itoa(result.PayoffYearDiff),
	}
}
