package spwm

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spwm/dsp/core"
	"github.com/cwbudde/algo-spwm/dsp/integrate"
	"github.com/cwbudde/algo-spwm/dsp/lut"
)

// roundoffFloor bounds the evaluation error of one Kronrod rule per unit of
// interval length for an integrand bounded by 1.
const roundoffFloor = 64 * 0x1p-52

// DutyTable holds the on-time of every sample slot of one sine period.
type DutyTable struct {
	Ticks          []int // on-time per slot, in [0, ClockPerSample]
	ClockPerSample int   // counter period of one slot
	Clamped        int   // slots whose rounded value had to be clamped
}

// Len returns the number of sample slots.
func (t DutyTable) Len() int { return len(t.Ticks) }

// Fractions returns each entry as a duty fraction in [0, 1].
func (t DutyTable) Fractions() []float64 {
	out := make([]float64, len(t.Ticks))
	if t.ClockPerSample <= 0 {
		return out
	}

	scale := 1 / float64(t.ClockPerSample)
	for i, v := range t.Ticks {
		out[i] = float64(v) * scale
	}

	return out
}

// Encode serializes the table with [lut.Encode].
func (t DutyTable) Encode(w lut.Width) ([]byte, error) {
	return lut.Encode(t.Ticks, w)
}

// Quantize computes the duty table for sampleCount slots of clockPerSample
// ticks each.
func Quantize(sampleCount, clockPerSample int, opts ...Option) (DutyTable, error) {
	if sampleCount <= 0 || clockPerSample <= 0 {
		return DutyTable{}, fmt.Errorf("%w: quantize needs sample count and clock per sample > 0, got %d and %d",
			ErrInvalidConfiguration, sampleCount, clockPerSample)
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return DutyTable{}, err
	}

	q := quantizer{
		cfg: cfg,
		n:   sampleCount,
		cps: clockPerSample,
	}

	ticks := make([]int, sampleCount)

	clamped, err := q.run(ticks)
	if err != nil {
		return DutyTable{}, err
	}

	if clamped > 0 {
		cfg.logger.Warn("spwm: duty values clamped",
			zap.Int("clamped", clamped),
			zap.Int("samples", sampleCount),
			zap.Int("clock_per_sample", clockPerSample))
	}

	return DutyTable{
		Ticks:          ticks,
		ClockPerSample: clockPerSample,
		Clamped:        clamped,
	}, nil
}

type quantizer struct {
	cfg config
	n   int
	cps int
}

// run fills ticks and returns the number of clamped slots. Workers own
// disjoint index ranges, so the result does not depend on scheduling.
func (q *quantizer) run(ticks []int) (int, error) {
	workers := min(q.cfg.workers, q.n)
	if workers <= 1 {
		return q.fill(context.Background(), ticks, 0, q.n)
	}

	g, ctx := errgroup.WithContext(context.Background())
	counts := make([]int, workers)
	chunk := (q.n + workers - 1) / workers

	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, q.n)

		if lo >= hi {
			continue
		}

		g.Go(func() error {
			c, err := q.fill(ctx, ticks, lo, hi)
			counts[w] = c

			return err
		})
	}

	err := g.Wait()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	return total, nil
}

func (q *quantizer) fill(ctx context.Context, ticks []int, lo, hi int) (int, error) {
	clamped := 0

	for i := lo; i < hi; i++ {
		if ctx.Err() != nil {
			return clamped, ctx.Err()
		}

		v, wasClamped, err := q.sample(i)
		if err != nil {
			return clamped, err
		}

		if wasClamped {
			clamped++
		}

		ticks[i] = v
	}

	return clamped, nil
}

// sample integrates slot i and converts its mean to a tick count.
func (q *quantizer) sample(i int) (int, bool, error) {
	n := float64(q.n)
	start := float64(i) / n * 2 * math.Pi
	end := float64(i+1) / n * 2 * math.Pi

	res, err := integrate.Adaptive(q.cfg.integrand, start, end,
		integrate.WithAbsTolerance(q.cfg.absTol),
		integrate.WithRelTolerance(q.cfg.relTol))
	if err != nil {
		return 0, false, &InstabilityError{Index: i, Start: start, End: end, Err: err}
	}

	avg := res.Value * n / (2 * math.Pi)
	duty := (avg + 1) / 2
	cps := float64(q.cps)

	// A slot mean of exactly zero, as on the slot centred on π for odd n,
	// is a half-tick tie when cps is odd. Anything inside the integral's
	// error band of a half tick is resolved by the rounding mode.
	band := (res.AbsErr + roundoffFloor*(end-start)) * n / (2 * math.Pi) * cps / 2
	raw := core.RoundWithin(duty*cps, band, q.cfg.rounding)

	if !core.IsFinite(raw) {
		return 0, false, &InstabilityError{Index: i, Start: start, End: end,
			Err: fmt.Errorf("non-finite duty %v", duty)}
	}

	// Clamp in float space first so the int conversion cannot overflow.
	bounded := core.Clamp(raw, -1, float64(q.cps)+1)

	v, clamped := core.ClampInt(int(bounded), 0, q.cps)
	if !clamped {
		return v, false, nil
	}

	if q.cfg.strict {
		return 0, false, &InstabilityError{Index: i, Start: start, End: end,
			Err: fmt.Errorf("duty %g ticks outside [0, %d]", raw, q.cps)}
	}

	q.cfg.logger.Warn("spwm: duty value clamped",
		zap.Int("index", i),
		zap.Float64("raw_ticks", raw),
		zap.Int("ticks", v),
		zap.Int("clock_per_sample", q.cps))

	return v, true, nil
}
