package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected generator input. The engine itself
// never fails on well-typed input; these are raised by the validation
// layer in the CLI and server before generation runs.
var (
	ErrBPMOutOfRange = errors.New("bpm must be between 60 and 200")
	ErrBarsInvalid   = errors.New("bars must be 1, 2, 4 or 8")
	ErrRangeInvalid  = errors.New("value must be between 0 and 1")
	ErrEmptyPattern  = errors.New("pattern contains no hits")
)

// ValidationError reports which settings field was rejected.
type ValidationError struct {
	Field string
	Value string
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, cause error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Cause: cause}
}
