package integrate

import (
	"math"
)

// Gauss-Kronrod 7/15 abscissae on [-1, 1]. Odd indices are the Gauss nodes,
// index 7 is the shared centre.
var xgk = [8]float64{
	0.991455371120812639206854697526329,
	0.949107912342758524526189684047851,
	0.864864423359769072789712788640926,
	0.741531185599394439863864773280788,
	0.586087235467691130294144845693013,
	0.405845151377397166906606412076961,
	0.207784955007898467600689403773245,
	0,
}

// Kronrod weights matching xgk.
var wgk = [8]float64{
	0.022935322010529224963732008058970,
	0.063092092629978553290700663189204,
	0.104790010322250183839876322541518,
	0.140653259715525918745189590510238,
	0.169004726639267902826583426598550,
	0.190350578064785409913256402421014,
	0.204432940075298892414161999234649,
	0.209482141084727828012999174891714,
}

// Gauss weights for xgk[1], xgk[3], xgk[5] and the centre.
var wg = [4]float64{
	0.129484966168869693270611432679082,
	0.279705391489276667901467771423780,
	0.381830050505118944950369775488975,
	0.417959183673469387755102040816327,
}

// Result holds the outcome of a quadrature.
type Result struct {
	Value       float64 // integral estimate
	AbsErr      float64 // accumulated error estimate
	Evaluations int     // integrand evaluations
	Intervals   int     // accepted sub-intervals
}

// Adaptive integrates f over [a, b].
//
// Reversed bounds yield the negated integral of the ordered interval; equal
// bounds yield zero without evaluating f. A non-finite integrand value or a
// sub-interval that cannot meet its tolerance returns a [*ConvergenceError].
func Adaptive(f func(float64) float64, a, b float64, opts ...Option) (Result, error) {
	if f == nil {
		return Result{}, errNilFunc
	}

	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Result{}, errNonFiniteBound
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return Result{}, err
		}
	}

	if a == b {
		return Result{}, nil
	}

	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}

	s := solver{f: f, cfg: cfg}

	whole, wholeErr := s.rule(a, b)
	tol := math.Max(cfg.absTol, cfg.relTol*math.Abs(whole))

	err := s.refine(a, b, whole, wholeErr, tol, 0)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Value:       sign * s.sum,
		AbsErr:      s.absErr,
		Evaluations: s.evals,
		Intervals:   s.intervals,
	}, nil
}

type solver struct {
	f         func(float64) float64
	cfg       config
	sum       float64
	comp      float64 // Kahan compensation for sum
	absErr    float64
	evals     int
	intervals int
}

// refine accepts [a, b] when its estimate fits tol, otherwise bisects and
// hands each half half of the tolerance.
func (s *solver) refine(a, b, value, estErr, tol float64, depth int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ConvergenceError{A: a, B: b, AbsErr: estErr, Tol: tol, Reason: "non-finite integrand"}
	}

	if estErr <= tol {
		s.accept(value, estErr)
		return nil
	}

	mid := a + (b-a)/2
	if depth >= s.cfg.maxDepth || mid <= a || mid >= b {
		return &ConvergenceError{A: a, B: b, AbsErr: estErr, Tol: tol, Reason: "subdivision limit reached"}
	}

	left, leftErr := s.rule(a, mid)
	right, rightErr := s.rule(mid, b)

	err := s.refine(a, mid, left, leftErr, tol/2, depth+1)
	if err != nil {
		return err
	}

	return s.refine(mid, b, right, rightErr, tol/2, depth+1)
}

func (s *solver) accept(value, estErr float64) {
	y := value - s.comp
	t := s.sum + y
	s.comp = (t - s.sum) - y
	s.sum = t
	s.absErr += estErr
	s.intervals++
}

// rule evaluates the 15-point Kronrod estimate on [a, b] and returns it with
// the difference to the embedded 7-point Gauss estimate.
func (s *solver) rule(a, b float64) (float64, float64) {
	center := 0.5 * (a + b)
	half := 0.5 * (b - a)

	fc := s.f(center)
	resG := fc * wg[3]
	resK := fc * wgk[7]

	for j := range 3 {
		k := 2*j + 1
		dx := half * xgk[k]
		sum := s.f(center-dx) + s.f(center+dx)
		resG += wg[j] * sum
		resK += wgk[k] * sum
	}

	for j := range 4 {
		k := 2 * j
		dx := half * xgk[k]
		resK += wgk[k] * (s.f(center-dx) + s.f(center+dx))
	}

	s.evals += 15

	return resK * half, math.Abs((resK - resG) * half)
}
