package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		lo, hi  int
		want    int
		clamped bool
	}{
		{name: "inside", value: 5, lo: 0, hi: 10, want: 5},
		{name: "edge", value: 10, lo: 0, hi: 10, want: 10},
		{name: "below", value: -1, lo: 0, hi: 10, want: 0, clamped: true},
		{name: "above", value: 11, lo: 0, hi: 10, want: 10, clamped: true},
		{name: "swapped", value: 11, lo: 10, hi: 0, want: 10, clamped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := ClampInt(tt.value, tt.lo, tt.hi)
			if got != tt.want || clamped != tt.clamped {
				t.Fatalf("ClampInt() = (%d, %v), want (%d, %v)", got, clamped, tt.want, tt.clamped)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(0) || !IsFinite(-1e300) {
		t.Fatal("expected finite values to be reported finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("expected NaN and Inf to be reported non-finite")
	}
}
