// Package tuimsg holds the messages scenes send back to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/hecmproj/internal/compare"
	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProjectionRequestedMsg asks the root model to project an edited input
type ProjectionRequestedMsg struct {
	Name  string
	Input domain.ReverseMortgageInput
}

// ProjectionCompleteMsg carries a finished projection
type ProjectionCompleteMsg struct {
	Name   string
	Result *domain.ProjectionResult
	Err    error
}

// ComparisonRequestedMsg asks the root model to compare templates against the base input
type ComparisonRequestedMsg struct {
	Templates []string
}

// ComparisonCompleteMsg carries a finished comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// ParametersResetMsg signals the parameter scene returned to the loaded input
type ParametersResetMsg struct{}
