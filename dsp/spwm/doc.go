// Package spwm generates quantized sine-weighted PWM duty tables.
//
// A hardware counter clocked at ClockFreq plays one table entry per sample
// slot of ClockPerSample ticks, holding its output high for the entry's
// tick count and low for the rest of the slot. Averaged by the load, the
// pulse train approximates a sine at OutputFreq.
//
// Each entry is derived from the mean of sin(θ) over its slot, obtained by
// adaptive quadrature rather than point sampling, since the counter holds
// the level for the whole slot:
//
//	avg   = N/2π · ∫ sin θ dθ over [2πi/N, 2π(i+1)/N]
//	duty  = (avg + 1) / 2
//	ticks = round(duty · ClockPerSample)
//
// Rounding is half-to-even by default ([core.RoundHalfEven]); firmware timing
// depends on exact tick counts, so the mode is part of the output contract
// and can only be changed explicitly with [WithRounding].
//
// Typical use:
//
//	p := spwm.Params{ClockFreq: 72e6, OutputFreq: 50, SampleCount: 100, Width: lut.Uint16}
//	table, err := spwm.Generate(p)
//	data, err := table.Encode(p.Width)
//
// [Reconstruct], [Averaged] and [Trace] expand a table back into waveforms
// for inspection. They never modify the table.
package spwm
