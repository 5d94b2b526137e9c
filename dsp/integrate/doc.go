// Package integrate provides numerical quadrature for smooth real functions.
//
// [Adaptive] implements globally adaptive Gauss-Kronrod quadrature using the
// 7-point Gauss / 15-point Kronrod pair. Each interval is evaluated with both
// rules; the difference between them is taken as the error estimate. Intervals
// whose estimate exceeds their share of the tolerance are bisected until the
// estimate is met or the depth limit is reached.
//
//	res, err := integrate.Adaptive(math.Sin, 0, math.Pi)
//	// res.Value ~ 2
//
// For analytic integrands over short intervals (the common case when
// averaging a periodic function over one sample slot) a single 15-point
// evaluation already reaches machine precision.
package integrate
