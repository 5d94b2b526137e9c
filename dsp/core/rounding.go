package core

import (
	"fmt"
	"math"
	"strings"
)

// RoundingMode selects how a real value is mapped to the nearest integer
// when it lies exactly halfway between two integers.
type RoundingMode int

const (
	// RoundHalfEven rounds ties to the even neighbour (2.5 -> 2, 3.5 -> 4).
	RoundHalfEven RoundingMode = iota
	// RoundHalfAwayFromZero rounds ties away from zero (2.5 -> 3, -2.5 -> -3).
	RoundHalfAwayFromZero
)

// String returns the short flag name of the mode.
func (m RoundingMode) String() string {
	switch m {
	case RoundHalfEven:
		return "even"
	case RoundHalfAwayFromZero:
		return "away"
	default:
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
}

// Valid reports whether m is a known rounding mode.
func (m RoundingMode) Valid() bool {
	return m == RoundHalfEven || m == RoundHalfAwayFromZero
}

// ParseRoundingMode accepts "even" / "half-even" and "away" / "half-away".
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "even", "half-even", "bankers":
		return RoundHalfEven, nil
	case "away", "half-away", "half-up":
		return RoundHalfAwayFromZero, nil
	default:
		return 0, fmt.Errorf("core: unknown rounding mode %q", s)
	}
}

// Round rounds x to the nearest integer using mode.
func Round(x float64, mode RoundingMode) float64 {
	if mode == RoundHalfAwayFromZero {
		return math.Round(x)
	}

	return math.RoundToEven(x)
}

// RoundWithin rounds x like [Round] but treats x as an exact tie when it
// lies within band of a half-integer. band is widened to a few ulps of x so
// that values computed with roundoff still resolve their ties by mode.
func RoundWithin(x, band float64, mode RoundingMode) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	band = math.Max(band, 4*(math.Nextafter(math.Abs(x), math.Inf(1))-math.Abs(x)))

	half := math.Floor(x) + 0.5
	if math.Abs(x-half) <= band {
		x = half
	}

	return Round(x, mode)
}
