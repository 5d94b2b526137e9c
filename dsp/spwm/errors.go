package spwm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration reports parameters that cannot produce a table.
	ErrInvalidConfiguration = errors.New("spwm: invalid configuration")
	// ErrNumericInstability reports a quadrature or range failure for one slot.
	ErrNumericInstability = errors.New("spwm: numeric instability")
)

// ConfigError carries the rejected parameters.
type ConfigError struct {
	ClockFreq   float64
	OutputFreq  int
	SampleCount int
	Reason      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("spwm: invalid configuration (clock=%g Hz, output=%d Hz, samples=%d): %s",
		e.ClockFreq, e.OutputFreq, e.SampleCount, e.Reason)
}

// Unwrap returns [ErrInvalidConfiguration].
func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// InstabilityError names the sample slot whose value could not be computed.
type InstabilityError struct {
	Index      int
	Start, End float64 // phase bounds in radians
	Err        error
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("spwm: sample %d on [%.9g, %.9g] rad: %v", e.Index, e.Start, e.End, e.Err)
}

// Is matches [ErrNumericInstability].
func (e *InstabilityError) Is(target error) bool { return target == ErrNumericInstability }

// Unwrap returns the underlying cause.
func (e *InstabilityError) Unwrap() error { return e.Err }
