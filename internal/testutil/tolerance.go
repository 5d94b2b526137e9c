package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want), "length mismatch")

	for i := range got {
		require.InDeltaf(t, want[i], got[i], eps, "index %d", i)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d: non-finite value %v", i, v)
	}
}

// RequireIntsWithin fails t if got and want differ in length or if any
// element pair differs by more than tol.
func RequireIntsWithin(t *testing.T, got, want []int, tol int) {
	t.Helper()
	require.Len(t, got, len(want), "length mismatch")

	for i := range got {
		require.InDeltaf(t, want[i], got[i], float64(tol), "index %d: got %v", i, got)
	}
}

// RequireBytesEqual fails t if got and want differ, printing got in hex.
func RequireBytesEqual(t *testing.T, got, want []byte) {
	t.Helper()
	require.Equalf(t, want, got, "% x", got)
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}

	return maxDiff, nil
}
