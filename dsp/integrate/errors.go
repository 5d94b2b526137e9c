package integrate

import (
	"errors"
	"fmt"
)

// ErrNoConvergence is returned when the error estimate cannot be brought
// below the tolerance within the configured subdivision depth.
var ErrNoConvergence = errors.New("integrate: quadrature did not converge")

var (
	errNilFunc        = errors.New("integrate: integrand must not be nil")
	errNonFiniteBound = errors.New("integrate: interval bounds must be finite")
)

// ConvergenceError describes the sub-interval on which quadrature failed.
type ConvergenceError struct {
	A, B   float64 // failing sub-interval
	AbsErr float64 // error estimate on [A, B]
	Tol    float64 // tolerance allotted to [A, B]
	Reason string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("integrate: %s on [%g, %g] (error estimate %g, tolerance %g)",
		e.Reason, e.A, e.B, e.AbsErr, e.Tol)
}

// Unwrap returns [ErrNoConvergence].
func (e *ConvergenceError) Unwrap() error { return ErrNoConvergence }
