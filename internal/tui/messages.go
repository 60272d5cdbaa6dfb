package tui

import (
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneResults Scene = iota
	SceneParameters
	SceneCompare
	SceneHelp
)

// String returns a display name for the scene
func (s Scene) String() string {
	switch s {
	case SceneResults:
		return "Results"
	case SceneParameters:
		return "Parameters"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ConfigLoadedMsg signals the input file has been loaded and validated
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// Scene messages shared with the scenes package
type (
	ErrorMsg               = tuimsg.ErrorMsg
	ProjectionCompleteMsg  = tuimsg.ProjectionCompleteMsg
	ComparisonCompleteMsg  = tuimsg.ComparisonCompleteMsg
	ProjectionRequestedMsg = tuimsg.ProjectionRequestedMsg
	ComparisonRequestedMsg = tuimsg.ComparisonRequestedMsg
)
