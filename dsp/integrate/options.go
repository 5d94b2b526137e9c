package integrate

import "fmt"

const (
	defaultAbsTol   = 1e-10
	defaultRelTol   = 1e-10
	defaultMaxDepth = 50
	maxMaxDepth     = 200
)

type config struct {
	absTol   float64
	relTol   float64
	maxDepth int
}

func defaultConfig() config {
	return config{
		absTol:   defaultAbsTol,
		relTol:   defaultRelTol,
		maxDepth: defaultMaxDepth,
	}
}

// Option configures [Adaptive].
type Option func(*config) error

// WithAbsTolerance sets the absolute error target (default 1e-10).
func WithAbsTolerance(tol float64) Option {
	return func(cfg *config) error {
		if !(tol >= 0) {
			return fmt.Errorf("integrate: absolute tolerance must be >= 0: %g", tol)
		}

		cfg.absTol = tol

		return nil
	}
}

// WithRelTolerance sets the relative error target (default 1e-10).
// The interval is accepted when the estimate is below max(abs, rel*|value|).
func WithRelTolerance(tol float64) Option {
	return func(cfg *config) error {
		if !(tol >= 0) {
			return fmt.Errorf("integrate: relative tolerance must be >= 0: %g", tol)
		}

		cfg.relTol = tol

		return nil
	}
}

// WithMaxDepth limits the number of bisection levels (default 50).
// A depth of 0 evaluates the whole interval with a single rule pair.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) error {
		if depth < 0 || depth > maxMaxDepth {
			return fmt.Errorf("integrate: max depth must be in [0, %d]: %d", maxMaxDepth, depth)
		}

		cfg.maxDepth = depth

		return nil
	}
}
