package lut

import (
	"errors"
	"fmt"
)

var (
	// ErrValueOutOfRange reports a table entry the element width cannot hold.
	ErrValueOutOfRange = errors.New("lut: value out of range")
	// ErrInvalidWidth reports an unsupported element width.
	ErrInvalidWidth = errors.New("lut: invalid element width")
	// ErrTruncatedData reports encoded data whose length is not a multiple
	// of the element size.
	ErrTruncatedData = errors.New("lut: truncated data")
)

// RangeError names the first table entry that does not fit Width.
type RangeError struct {
	Index int
	Value int
	Width Width
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("lut: entry %d = %d does not fit %s [%d, %d]",
		e.Index, e.Value, e.Width, e.Width.Min(), e.Width.Max())
}

// Unwrap returns [ErrValueOutOfRange].
func (e *RangeError) Unwrap() error { return ErrValueOutOfRange }
