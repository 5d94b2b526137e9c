package spwm

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Levels of the reconstructed pulse train.
const (
	LevelHigh int8 = 1
	LevelLow  int8 = -1
)

// Reconstruct expands t into its tick-level pulse train: for every slot,
// Ticks[i] ticks at [LevelHigh] followed by ClockPerSample-Ticks[i] ticks at
// [LevelLow]. The result has Len()*ClockPerSample entries.
func Reconstruct(t DutyTable) []int8 {
	cps := t.ClockPerSample
	if cps <= 0 || len(t.Ticks) == 0 {
		return nil
	}

	out := make([]int8, len(t.Ticks)*cps)

	for i, on := range t.Ticks {
		slot := out[i*cps : (i+1)*cps]
		on = max(0, min(on, cps))

		for k := range slot {
			if k < on {
				slot[k] = LevelHigh
			} else {
				slot[k] = LevelLow
			}
		}
	}

	return out
}

// Averaged returns the mean level of every slot, 2*Ticks[i]/ClockPerSample-1,
// which is what a load much slower than one slot sees.
func Averaged(t DutyTable) []float64 {
	out := t.Fractions()
	for i, f := range out {
		out[i] = 2*f - 1
	}

	return out
}

// Series is a plottable view of a table against the ideal sine.
type Series struct {
	Phase []float64 // radians, one period
	Ideal []float64 // sin(Phase)
	Level []float64 // pulse level at Phase, ±1
	Mean  []float64 // mean level of the slot containing Phase
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Phase) }

// Trace samples the pulse train of t at tick resolution, keeping every
// stride-th tick so that at most maxPoints points are returned.
// maxPoints <= 0 keeps every tick.
func Trace(t DutyTable, maxPoints int) Series {
	cps := t.ClockPerSample
	if cps <= 0 || len(t.Ticks) == 0 {
		return Series{}
	}

	total := len(t.Ticks) * cps

	stride := 1
	if maxPoints > 0 && total > maxPoints {
		stride = (total + maxPoints - 1) / maxPoints
	}

	count := (total + stride - 1) / stride
	s := Series{
		Phase: make([]float64, count),
		Ideal: make([]float64, count),
		Level: make([]float64, count),
		Mean:  make([]float64, count),
	}

	scale := 2 * math.Pi / float64(total)
	invCPS := 1 / float64(cps)

	for j := range count {
		k := j * stride
		slot, offset := k/cps, k%cps
		on := t.Ticks[slot]

		phase := float64(k) * scale
		s.Phase[j] = phase
		s.Ideal[j] = math.Sin(phase)
		s.Mean[j] = 2*float64(on)*invCPS - 1

		if offset < on {
			s.Level[j] = float64(LevelHigh)
		} else {
			s.Level[j] = float64(LevelLow)
		}
	}

	return s
}

// WriteCSV writes the series as "phase,ideal,level,mean" rows with a header.
func (s Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	err := cw.Write([]string{"phase", "ideal", "level", "mean"})
	if err != nil {
		return fmt.Errorf("spwm: write trace header: %w", err)
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	for i := range s.Phase {
		err = cw.Write([]string{format(s.Phase[i]), format(s.Ideal[i]), format(s.Level[i]), format(s.Mean[i])})
		if err != nil {
			return fmt.Errorf("spwm: write trace row %d: %w", i, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
