package transform

import (
	"fmt"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// ScenarioTransform defines the interface for all scenario transformations.
// Transforms are composable operations that derive a new projection input from
// a base input, enabling scenario comparison and interactive what-if analysis.
type ScenarioTransform interface {
	// Apply returns a modified copy of base. The base input is never changed.
	Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error)

	// Name returns a short identifier for this transform (e.g., "delay_application").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid for base without applying it.
	Validate(base domain.ReverseMortgageInput) error
}

// ApplyTransforms applies a sequence of transforms to a base input.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.ReverseMortgageInput, transforms []ScenarioTransform) (domain.ReverseMortgageInput, error) {
	current := base.Clone()

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
