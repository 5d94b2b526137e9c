package spwm

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-spwm/dsp/core"
)

const (
	defaultAbsTol  = 1e-10
	defaultRelTol  = 1e-10
	defaultWorkers = 1
)

type config struct {
	logger    *zap.Logger
	rounding  core.RoundingMode
	absTol    float64
	relTol    float64
	workers   int
	strict    bool
	integrand func(float64) float64
}

func defaultConfig() config {
	return config{
		logger:    zap.NewNop(),
		rounding:  core.RoundHalfEven,
		absTol:    defaultAbsTol,
		relTol:    defaultRelTol,
		workers:   defaultWorkers,
		integrand: math.Sin,
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

// Option configures [Quantize] and [Generate].
type Option func(*config) error

// WithLogger sets the logger used to report clamped samples.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = zap.NewNop()
		}

		cfg.logger = l

		return nil
	}
}

// WithRounding selects the tie-breaking rule for tick counts
// (default [core.RoundHalfEven]).
func WithRounding(mode core.RoundingMode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("spwm: invalid rounding mode: %v", mode)
		}

		cfg.rounding = mode

		return nil
	}
}

// WithTolerance sets the absolute and relative quadrature tolerance
// (default 1e-10 each).
func WithTolerance(abs, rel float64) Option {
	return func(cfg *config) error {
		if !(abs >= 0) || !(rel >= 0) || (abs == 0 && rel == 0) {
			return fmt.Errorf("spwm: tolerances must be >= 0 and not both zero: abs=%g rel=%g", abs, rel)
		}

		cfg.absTol = abs
		cfg.relTol = rel

		return nil
	}
}

// WithWorkers spreads slot integration over n goroutines (default 1).
// The table is identical for any n.
func WithWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("spwm: workers must be >= 1: %d", n)
		}

		cfg.workers = n

		return nil
	}
}

// WithStrictRange fails with [ErrNumericInstability] instead of clamping a
// tick count that falls outside [0, ClockPerSample].
func WithStrictRange() Option {
	return func(cfg *config) error {
		cfg.strict = true
		return nil
	}
}
