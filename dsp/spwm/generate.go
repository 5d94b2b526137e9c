package spwm

import "go.uber.org/zap"

// Generate validates p and computes its duty table.
func Generate(p Params, opts ...Option) (DutyTable, error) {
	cps, err := p.Validate()
	if err != nil {
		return DutyTable{}, err
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return DutyTable{}, err
	}

	cfg.logger.Debug("spwm: resolved parameters",
		zap.Float64("clock_hz", p.ClockFreq),
		zap.Int("output_hz", p.OutputFreq),
		zap.Int("samples", p.SampleCount),
		zap.Int("clock_per_sample", cps),
		zap.Stringer("width", p.Width),
		zap.Stringer("rounding", cfg.rounding))

	return Quantize(p.SampleCount, cps, opts...)
}
