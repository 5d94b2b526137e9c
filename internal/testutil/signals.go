package testutil

import "math"

// SlotMeans returns the closed-form mean of sin(θ) over each of n equal
// slots of one period: n/2π · (cos a - cos b).
func SlotMeans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if 2*i+1 == n {
			// Centred on π: the mean is exactly zero.
			continue
		}

		a := float64(i) / float64(n) * 2 * math.Pi
		b := float64(i+1) / float64(n) * 2 * math.Pi
		out[i] = (math.Cos(a) - math.Cos(b)) * float64(n) / (2 * math.Pi)
	}
	return out
}

// ReferenceTicks quantizes SlotMeans(n) to cps ticks with half-to-even
// rounding, independent of any quadrature.
func ReferenceTicks(n, cps int) []int {
	out := make([]int, n)
	for i, m := range SlotMeans(n) {
		out[i] = int(math.RoundToEven((m + 1) / 2 * float64(cps)))
	}
	return out
}
