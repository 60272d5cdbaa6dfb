package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "Base Scenario",
		HorizonYears:     10,
		ConfigPath:       "/path/to/config.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:          "Base Scenario",
			ApplicationYear:       2025,
			ApplicationStatus:     domain.StatusEligible,
			ProceedsAtApplication: decimal.NewFromInt(90000),
			MaxNetProceeds:        decimal.NewFromInt(150000),
			MaxNetProceedsYear:    2035,
			FirstEligibleYear:     2025,
			MortgagePayoffYear:    2028,
			EquityAtHorizon:       decimal.NewFromInt(564000),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:          "Alternative 1",
				Description:           "Pay off the forward mortgage before applying",
				ApplicationYear:       2025,
				ApplicationStatus:     domain.StatusEligible,
				ProceedsAtApplication: decimal.NewFromInt(130000),
				MaxNetProceeds:        decimal.NewFromInt(150000),
				MaxNetProceedsYear:    2035,
				FirstEligibleYear:     2025,
				EquityAtHorizon:       decimal.NewFromInt(564000),
				ProceedsDiffFromBase:  decimal.NewFromInt(40000),
				ProceedsPctFromBase:   decimal.NewFromFloat(44.44),
			},
		},
		Recommendations: []string{
			"Most Proceeds: Alternative 1 nets $40000 more at application (2025) than the base scenario",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	for _, want := range []string{
		"REVERSE MORTGAGE SCENARIO COMPARISON",
		"Base Scenario: Base Scenario",
		"Configuration: /path/to/config.yaml",
		"Horizon: 10 years",
		"Base Scenario (base)",
		"Alternative 1",
		"COMPARISON TO BASE",
		"+$40.0K (44.4%)",
		"RECOMMENDATIONS",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := sampleComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	result := formatter.Format(compSet)

	if !strings.Contains(result, "Base Scenario") {
		t.Error("Expected base scenario in table")
	}
	if strings.Contains(result, "Alternative") || strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Should not have alternative scenarios in output")
	}
}

func TestTableFormatter_formatRow(t *testing.T) {
	formatter := &TableFormatter{}

	result := &ComparisonResult{
		ScenarioName:      "Test Scenario",
		ApplicationStatus: domain.StatusIneligibleAge,
		EquityAtHorizon:   decimal.NewFromInt(1500000),
	}

	row := formatter.formatRow(result, 28, 15, true)

	if !strings.Contains(row, "Test Scenario (base)") {
		t.Error("Expected base marker in row")
	}
	if !strings.Contains(row, "ineligible") {
		t.Error("Expected ineligible marker for program ineligible status")
	}
	if !strings.Contains(row, "$1.50M") {
		t.Error("Expected equity in millions")
	}
	if !strings.Contains(row, "beyond horizon") {
		t.Error("Expected payoff beyond horizon")
	}
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	formatter := &TableFormatter{}

	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(950), "950"},
		{decimal.NewFromInt(91455), "91.5K"},
		{decimal.NewFromInt(2500000), "2.50M"},
		{decimal.NewFromInt(-40000), "-40.0K"},
	}
	for _, tt := range tests {
		if got := formatter.formatDecimal(tt.in); got != tt.want {
			t.Errorf("formatDecimal(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := sampleComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{
		ScenarioName:         "Alternative 2",
		ProceedsDiffFromBase: decimal.NewFromInt(-5000),
	})

	got := formatter.FormatCompact(compSet)
	want := "Base: Base Scenario | Alternative 1: +$40.0K | Alternative 2: -$5.0K"
	if got != want {
		t.Errorf("FormatCompact = %q, want %q", got, want)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(records))
	}

	if records[0][0] != "Scenario" {
		t.Errorf("Expected CSV header, got %v", records[0])
	}
	if records[1][1] != "base" || records[2][1] != "alternative" {
		t.Errorf("Unexpected row types %s, %s", records[1][1], records[2][1])
	}
	if records[1][4] != "90000.00" {
		t.Errorf("Expected base proceeds 90000.00, got %s", records[1][4])
	}
	if records[2][10] != "40000.00" {
		t.Errorf("Expected proceeds diff 40000.00, got %s", records[2][10])
	}
	if records[1][3] != "eligible" {
		t.Errorf("Expected status eligible, got %s", records[1][3])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := &JSONFormatter{Pretty: true}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{
		"\"baseScenarioName\": \"Base Scenario\"",
		"\"alternativeResults\"",
		"\"recommendations\"",
		"\"proceedsAtApplication\": \"90000.00\"",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected JSON to contain %s", want)
		}
	}
}

func TestJSONFormatter_CentsAndDeltas(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.BaseResult.EquityAtHorizon = decimal.RequireFromString("564000.123456789012345")

	result, err := (&JSONFormatter{}).Format(compSet)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc struct {
		BaseResult struct {
			EquityAtHorizon string          `json:"equityAtHorizon"`
			VersusBase      json.RawMessage `json:"versusBase"`
		} `json:"baseResult"`
		AlternativeResults []struct {
			VersusBase struct {
				Proceeds        string `json:"proceeds"`
				ProceedsPercent string `json:"proceedsPercent"`
			} `json:"versusBase"`
		} `json:"alternativeResults"`
	}
	if err := json.Unmarshal([]byte(result), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if doc.BaseResult.EquityAtHorizon != "564000.12" {
		t.Errorf("Expected equity in cents, got %s", doc.BaseResult.EquityAtHorizon)
	}
	if doc.BaseResult.VersusBase != nil {
		t.Errorf("Base scenario should not carry deltas, got %s", doc.BaseResult.VersusBase)
	}
	if len(doc.AlternativeResults) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(doc.AlternativeResults))
	}
	if got := doc.AlternativeResults[0].VersusBase.Proceeds; got != "40000.00" {
		t.Errorf("Expected proceeds delta 40000.00, got %s", got)
	}
	if got := doc.AlternativeResults[0].VersusBase.ProceedsPercent; got != "44.44" {
		t.Errorf("Expected percent delta 44.44, got %s", got)
	}
}
