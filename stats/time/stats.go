// Package time computes time-domain statistics of sampled signals.
package time

import "math"

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	CrestFactor   float64 // peak / RMS (linear)
	ZeroCrossings int
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	s := Stats{
		Length: n,
		Max:    signal[0],
		Min:    signal[0],
	}

	var sum, c, sumSq float64

	for i, x := range signal {
		// Kahan summation keeps the mean exact enough for DC checks on long
		// captures.
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += x * x

		if x > s.Max {
			s.Max, s.MaxPos = x, i
		}

		if x < s.Min {
			s.Min, s.MinPos = x, i
		}

		if i > 0 && signal[i-1]*x < 0 {
			s.ZeroCrossings++
		}
	}

	nf := float64(n)
	s.DC = sum / nf
	s.RMS = math.Sqrt(sumSq / nf)
	s.Peak = math.Max(math.Abs(s.Max), math.Abs(s.Min))

	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Ints converts integer samples, such as table entries, to float64.
func Ints(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}

	return out
}
