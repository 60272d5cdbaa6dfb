package output

import (
	"encoding/json"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// JSONFormatter writes the full result, decimals as strings
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
