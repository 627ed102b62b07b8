package survey

import "fmt"

// ValidationError reports a mission or camera parameter outside its allowed
// range. Callers are expected to surface Field and Value to the user and not
// regenerate the plan until the input is corrected.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %g (%s)", e.Field, e.Value, e.Reason)
}

func validationErr(field string, value float64, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
