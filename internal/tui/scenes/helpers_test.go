package scenes

import (
	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/compare"
)

func newCompareEngine(engine *calculation.ProjectionEngine) *compare.CompareEngine {
	return compare.NewCompareEngine(engine)
}

func compareOptions(name string, horizon int, templates ...string) compare.CompareOptions {
	return compare.CompareOptions{
		BaseScenarioName: name,
		HorizonYears:     horizon,
		Templates:        templates,
	}
}
