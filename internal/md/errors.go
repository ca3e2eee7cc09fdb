package md

import (
	"errors"
	"fmt"
)

// Domain errors for lattice, thermostat and ensemble operations.
var (
	// ErrInvalidGeometry indicates a degenerate or non-real unit cell.
	ErrInvalidGeometry = errors.New("md: invalid geometry")

	// ErrInvalidInput indicates mismatched lengths, non-positive masses or
	// out-of-range parameters.
	ErrInvalidInput = errors.New("md: invalid input")

	// ErrDegenerateVelocity indicates a zero-speed particle was selected for
	// resampling under a policy that refuses to skip it.
	ErrDegenerateVelocity = errors.New("md: degenerate velocity (zero speed selected for resampling)")

	// ErrUnstable indicates the integration produced NaN or Inf values.
	ErrUnstable = errors.New("md: simulation unstable (state diverged)")

	// ErrUnknownSpecies indicates a species missing from a parameter table.
	ErrUnknownSpecies = errors.New("md: unknown species")

	// ErrUnknownKind indicates an unrecognised lattice, thermostat or ensemble name.
	ErrUnknownKind = errors.New("md: unknown kind")
)

// StepError wraps an error with the step at which the ensemble loop failed.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
