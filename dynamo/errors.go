package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for filter construction and stepping.
var (
	// ErrFrequency indicates a frequency that is not strictly positive and finite.
	ErrFrequency = errors.New("dynamo: frequency must be positive and finite")

	// ErrDamping indicates a negative or non-finite damping ratio.
	ErrDamping = errors.New("dynamo: damping ratio must be non-negative and finite")

	// ErrResponse indicates a non-finite initial response.
	ErrResponse = errors.New("dynamo: initial response must be finite")

	// ErrZeroStep indicates a zero time step while the target rate is estimated.
	ErrZeroStep = errors.New("dynamo: zero time step with estimated target rate")
)

// ParamError wraps a parameter error with the offending name and value.
type ParamError struct {
	Name    string
	Value   float32
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s (%s=%g)", e.Wrapped.Error(), e.Name, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
