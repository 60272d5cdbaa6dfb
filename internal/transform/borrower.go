package transform

import (
	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// SingleBorrower removes the spouse so eligibility keys to the primary borrower alone.
type SingleBorrower struct{}

func (sb *SingleBorrower) Name() string {
	return "single_borrower"
}

func (sb *SingleBorrower) Description() string {
	return "Apply with the primary borrower only"
}

func (sb *SingleBorrower) Validate(base domain.ReverseMortgageInput) error {
	if !base.HasSpouse() {
		return NewTransformError(sb.Name(), "validate", "input has no spouse to remove", nil)
	}
	return nil
}

func (sb *SingleBorrower) Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error) {
	modified := base.Clone()
	modified.SpouseAge = nil
	return modified, nil
}
