package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// CSVFormatter writes one row per projected year
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "Age", "SpouseAge", "HomeValue", "RemainingMortgageBalance", "HomeEquity",
		"LendingLimitFactor", "PrincipalLimit", "OriginationCost", "NetProceeds", "Status",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range result.Rows {
		record := []string{
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Age),
			"",
			row.HomeValue.StringFixed(2),
			row.RemainingMortgageBalance.StringFixed(2),
			row.HomeEquity.StringFixed(2),
			row.LendingLimitFactor.StringFixed(4),
			row.ReverseMortgagePrincipalLimit.StringFixed(2),
			row.OriginationCost.StringFixed(2),
			row.ReverseMortgageNetProceeds.StringFixed(2),
			string(row.Status),
		}
		if row.SpouseAge != nil {
			record[2] = strconv.Itoa(*row.SpouseAge)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ScheduleCSV writes the monthly forward mortgage schedule
func ScheduleCSV(entries []domain.ScheduleEntry) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "Month", "Payment", "Interest", "Principal", "Balance", "HomeValue"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		record := []string{
			strconv.Itoa(e.Year),
			strconv.Itoa(e.Month),
			e.Payment.StringFixed(2),
			e.Interest.StringFixed(2),
			e.Principal.StringFixed(2),
			e.Balance.StringFixed(2),
			e.HomeValue.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
