package calculation

import (
	"errors"
	"fmt"
)

// ErrInputRange is matched by every InputRangeError via errors.Is
var ErrInputRange = errors.New("input out of range")

// InputRangeError reports a nonsensical or inconsistent input detected by a
// single calculation. The engine never clamps such values; the whole run fails.
type InputRangeError struct {
	Operation string
	Field     string
	Value     string
	Reason    string
}

func (e *InputRangeError) Error() string {
	return fmt.Sprintf("%s: %s=%s: %s", e.Operation, e.Field, e.Value, e.Reason)
}

func (e *InputRangeError) Unwrap() error {
	return ErrInputRange
}

// newRangeError creates a new InputRangeError.
func newRangeError(operation, field string, value any, reason string) error {
	return &InputRangeError{
		Operation: operation,
		Field:     field,
		Value:     fmt.Sprint(value),
		Reason:    reason,
	}
}
