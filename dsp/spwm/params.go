package spwm

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spwm/dsp/core"
	"github.com/cwbudde/algo-spwm/dsp/lut"
)

// maxClockPerSample keeps tick counts within the widest table element and
// within int on 32-bit hosts.
const maxClockPerSample = min(math.MaxUint32, math.MaxInt)

// Params describes one duty table.
type Params struct {
	ClockFreq   float64   // timer clock in Hz
	OutputFreq  int       // sine frequency in Hz
	SampleCount int       // table entries per sine period
	Width       lut.Width // element type of the serialized table
}

// Resolve returns the counter period of one sample slot in ticks,
// floor(clockFreq / (outputFreq * sampleCount)).
func Resolve(clockFreq float64, outputFreq, sampleCount int) (int, error) {
	fail := func(format string, args ...any) (int, error) {
		return 0, &ConfigError{
			ClockFreq:   clockFreq,
			OutputFreq:  outputFreq,
			SampleCount: sampleCount,
			Reason:      fmt.Sprintf(format, args...),
		}
	}

	switch {
	case !core.IsFinite(clockFreq) || clockFreq <= 0:
		return fail("clock frequency must be > 0 and finite")
	case outputFreq <= 0:
		return fail("output frequency must be > 0")
	case sampleCount <= 0:
		return fail("sample count must be > 0")
	}

	cps := math.Floor(clockFreq / (float64(outputFreq) * float64(sampleCount)))

	switch {
	case cps < 1:
		return fail("clock per sample is %g, counter period would be degenerate", cps)
	case cps > maxClockPerSample:
		return fail("clock per sample %g exceeds %d", cps, int64(maxClockPerSample))
	}

	return int(cps), nil
}

// ClockPerSample resolves p's counter period.
func (p Params) ClockPerSample() (int, error) {
	return Resolve(p.ClockFreq, p.OutputFreq, p.SampleCount)
}

// Validate resolves p and checks that every possible duty value,
// 0 through ClockPerSample, fits p.Width.
func (p Params) Validate() (int, error) {
	cps, err := p.ClockPerSample()
	if err != nil {
		return 0, err
	}

	if !p.Width.Valid() {
		return 0, &ConfigError{
			ClockFreq:   p.ClockFreq,
			OutputFreq:  p.OutputFreq,
			SampleCount: p.SampleCount,
			Reason:      fmt.Sprintf("unsupported output width %s", p.Width),
		}
	}

	if !p.Width.Contains(cps) {
		return 0, &ConfigError{
			ClockFreq:   p.ClockFreq,
			OutputFreq:  p.OutputFreq,
			SampleCount: p.SampleCount,
			Reason:      fmt.Sprintf("clock per sample %d does not fit %s (max %d)", cps, p.Width, p.Width.Max()),
		}
	}

	return cps, nil
}
