package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter formats comparison results as JSON. Dollar amounts are
// written in cents and percentages to two places.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

type jsonComparison struct {
	BaseScenarioName   string         `json:"baseScenarioName"`
	HorizonYears       int            `json:"horizonYears"`
	ConfigPath         string         `json:"configPath,omitempty"`
	BaseResult         *jsonScenario  `json:"baseResult"`
	AlternativeResults []jsonScenario `json:"alternativeResults"`
	Recommendations    []string       `json:"recommendations"`
}

type jsonScenario struct {
	ScenarioName          string                   `json:"scenarioName"`
	Description           string                   `json:"description,omitempty"`
	ApplicationYear       int                      `json:"applicationYear"`
	ApplicationStatus     domain.EligibilityStatus `json:"applicationStatus"`
	ProceedsAtApplication string                   `json:"proceedsAtApplication"`
	MaxNetProceeds        string                   `json:"maxNetProceeds"`
	MaxNetProceedsYear    int                      `json:"maxNetProceedsYear"`
	FirstEligibleYear     int                      `json:"firstEligibleYear"`
	MortgagePayoffYear    int                      `json:"mortgagePayoffYear"`
	EquityAtHorizon       string                   `json:"equityAtHorizon"`
	VersusBase            *jsonDelta               `json:"versusBase,omitempty"`
}

// jsonDelta is only written for alternatives
type jsonDelta struct {
	Proceeds        string `json:"proceeds"`
	ProceedsPercent string `json:"proceedsPercent"`
	MaxProceeds     string `json:"maxProceeds"`
	Equity          string `json:"equity"`
	PayoffYears     int    `json:"payoffYears"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{
		BaseScenarioName:   compSet.BaseScenarioName,
		HorizonYears:       compSet.HorizonYears,
		ConfigPath:         compSet.ConfigPath,
		AlternativeResults: make([]jsonScenario, 0, len(compSet.AlternativeResults)),
		Recommendations:    compSet.Recommendations,
	}
	if doc.Recommendations == nil {
		doc.Recommendations = []string{}
	}
	if compSet.BaseResult != nil {
		base := toJSONScenario(compSet.BaseResult)
		doc.BaseResult = &base
	}
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		s := toJSONScenario(alt)
		s.VersusBase = &jsonDelta{
			Proceeds:        cents(alt.ProceedsDiffFromBase),
			ProceedsPercent: alt.ProceedsPctFromBase.StringFixed(2),
			MaxProceeds:     cents(alt.MaxProceedsDiff),
			Equity:          cents(alt.EquityDiffFromBase),
			PayoffYears:     alt.PayoffYearDiff,
		}
		doc.AlternativeResults = append(doc.AlternativeResults, s)
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func toJSONScenario(r *ComparisonResult) jsonScenario {
	return jsonScenario{
		ScenarioName:          r.ScenarioName,
		Description:           r.Description,
		ApplicationYear:       r.ApplicationYear,
		ApplicationStatus:     r.ApplicationStatus,
		ProceedsAtApplication: cents(r.ProceedsAtApplication),
		MaxNetProceeds:        cents(r.MaxNetProceeds),
		MaxNetProceedsYear:    r.MaxNetProceedsYear,
		FirstEligibleYear:     r.FirstEligibleYear,
		MortgagePayoffYear:    r.MortgagePayoffYear,
		EquityAtHorizon:       cents(r.EquityAtHorizon),
	}
}

func cents(d decimal.Decimal) string {
	return d.StringFixed(2)
}
