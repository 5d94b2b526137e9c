// Package thd measures harmonic distortion of period-aligned captures.
package thd

import (
	"math"
	"slices"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spwm/dsp/window"
)

// Method names the spectrum backend used for a result.
type Method string

const (
	MethodFFT Method = "fft"
	MethodDFT Method = "dft"
)

// Config holds THD calculation parameters.
type Config struct {
	// MaxHarmonics limits the harmonics evaluated, starting at H2.
	// Zero evaluates every harmonic below Nyquist.
	MaxHarmonics int
	// WindowType tapers the capture. The zero value, rectangular, is exact
	// for captures holding a whole number of periods.
	WindowType window.Type
	// CaptureBins is the half-width, in bins, of the region around the
	// fundamental excluded from the residual. Zero selects the window's
	// main-lobe half-width minus one (0 for rectangular).
	CaptureBins int
}

// Result holds THD measurement results. Distortion figures are ratios to
// the fundamental amplitude; harmonic sums are root-sum-square.
//
//nolint:revive
type Result struct {
	Method           Method
	Cycles           int
	FundamentalLevel float64 // peak amplitude of the fundamental
	THD              float64
	THDN             float64
	THD_dB           float64
	THDN_dB          float64
	OddHD            float64
	EvenHD           float64
	Noise            float64
	Harmonics        []float64 // H2, H3, ... relative to the fundamental
	SINAD            float64
}

// Calculator performs THD analysis.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a new THD calculator.
func NewCalculator(cfg Config) *Calculator {
	if cfg.MaxHarmonics < 0 {
		cfg.MaxHarmonics = 0
	}

	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = max(window.Info(cfg.WindowType).FirstMinimumBins-1, 0)
	}

	return &Calculator{cfg: cfg}
}

// AnalyzePeriodic is a one-shot analysis of a capture that holds exactly
// cycles periods of the fundamental.
func AnalyzePeriodic(signal []float64, cycles int, cfg Config) Result {
	return NewCalculator(cfg).AnalyzePeriodic(signal, cycles)
}

// AnalyzePeriod is a one-shot analysis of a capture holding one period.
func AnalyzePeriod(period []float64, cfg Config) Result {
	return NewCalculator(cfg).AnalyzePeriod(period)
}

// AnalyzePeriodic measures the capture, whose fundamental falls on bin
// cycles. Power-of-two lengths go through an FFT plan, other lengths through
// single-bin DFTs with the residual taken from Parseval's theorem. An empty
// Result is returned when the capture cannot resolve the fundamental.
func (c *Calculator) AnalyzePeriodic(signal []float64, cycles int) Result {
	return c.analyze(signal, cycles, false)
}

// AnalyzePeriod measures a capture holding exactly one period. The period
// is repeated [MinCycles] times so that tapered windows resolve the
// fundamental.
func (c *Calculator) AnalyzePeriod(period []float64) Result {
	cycles := max(MinCycles(c.cfg.WindowType), c.cfg.CaptureBins+1)

	return c.analyze(slices.Repeat(period, cycles), cycles, false)
}

// MinCycles returns the fewest periods a capture needs for the fundamental
// to clear the main lobe of t.
func MinCycles(t window.Type) int {
	return max(window.Info(t).FirstMinimumBins, 1)
}

func (c *Calculator) analyze(signal []float64, cycles int, forceDFT bool) Result {
	n := len(signal)
	lastBin := (n - 1) / 2
	capture := c.cfg.CaptureBins

	if cycles < 1 || cycles > lastBin || cycles <= capture {
		return Result{}
	}

	coeffs := window.Generate(c.cfg.WindowType, n, window.WithPeriodic())

	gain, err := window.CoherentGain(coeffs)
	if err != nil || gain <= 0 {
		return Result{}
	}

	enbw, err := window.EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return Result{}
	}

	sumW := gain * float64(n)
	sumW2 := enbw * sumW * sumW / float64(n)

	mean := 0.0
	for _, v := range signal {
		mean += v
	}

	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range signal {
		centered[i] = v - mean
	}

	x, err := window.ApplyCoefficients(centered, coeffs)
	if err != nil {
		return Result{}
	}

	var spec spectrum
	if !forceDFT && isPowerOf2(n) {
		spec = newFFTSpectrum(x)
	}

	if spec == nil {
		spec = newDFTSpectrum(x)
	}

	// A bin-centred tone of amplitude A has |X| = A*sumW/2 and spreads
	// A²*n*sumW2/4 of power over the one-sided bins.
	amp := func(p float64) float64 { return 2 * math.Sqrt(math.Max(p, 0)) / sumW }
	powerToAmpSq := 4 / (float64(n) * sumW2)

	fundamental := amp(spec.power(cycles))
	if fundamental <= 0 {
		return Result{Method: spec.method(), Cycles: cycles}
	}

	residual := spec.oneSided()
	for b := 1; b <= lastBin; b++ {
		if b <= capture || (b >= cycles-capture && b <= cycles+capture) {
			residual -= spec.power(b)
		}
	}

	var (
		harmSq, oddSq, evenSq float64
		harmonics             = make([]float64, 0, 8)
	)

	for k := 2; ; k++ {
		if c.cfg.MaxHarmonics > 0 && len(harmonics) >= c.cfg.MaxHarmonics {
			break
		}

		bin := k * cycles
		if bin > lastBin {
			break
		}

		h := amp(spec.power(bin)) / fundamental
		harmonics = append(harmonics, h)
		harmSq += h * h

		if k%2 == 0 {
			evenSq += h * h
		} else {
			oddSq += h * h
		}
	}

	thdn := math.Sqrt(math.Max(residual, 0)*powerToAmpSq) / fundamental
	thd := math.Sqrt(harmSq)
	noise := math.Sqrt(math.Max(thdn*thdn-harmSq, 0))

	sinad := math.Inf(1)
	if thdn > 0 {
		sinad = 20 * math.Log10(1/thdn)
	}

	return Result{
		Method:           spec.method(),
		Cycles:           cycles,
		FundamentalLevel: fundamental,
		THD:              thd,
		THDN:             thdn,
		THD_dB:           ratioToDB(thd),
		THDN_dB:          ratioToDB(thdn),
		OddHD:            math.Sqrt(oddSq),
		EvenHD:           math.Sqrt(evenSq),
		Noise:            noise,
		Harmonics:        harmonics,
		SINAD:            sinad,
	}
}

// spectrum yields squared bin magnitudes |X[b]|² of a real capture.
type spectrum interface {
	method() Method
	power(bin int) float64
	// oneSided returns the summed power of bins 1..(n-1)/2.
	oneSided() float64
}

type fftSpectrum struct {
	pow []float64
}

func newFFTSpectrum(x []float64) spectrum {
	n := len(x)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)

	err = plan.Forward(out, in)
	if err != nil {
		return nil
	}

	half := n/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)

	for i := range half {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	pow := make([]float64, half)
	vecmath.Power(pow, re, im)

	return &fftSpectrum{pow: pow}
}

func (s *fftSpectrum) method() Method { return MethodFFT }

func (s *fftSpectrum) power(bin int) float64 {
	if bin < 0 || bin >= len(s.pow) {
		return 0
	}

	return s.pow[bin]
}

func (s *fftSpectrum) oneSided() float64 {
	n := 2 * (len(s.pow) - 1)

	sum := 0.0
	for b := 1; b <= (n-1)/2; b++ {
		sum += s.pow[b]
	}

	return sum
}

// dftSpectrum evaluates bins on demand and caches them.
type dftSpectrum struct {
	x      []float64
	energy float64
	cache  map[int]float64
}

func newDFTSpectrum(x []float64) spectrum {
	energy := 0.0
	for _, v := range x {
		energy += v * v
	}

	return &dftSpectrum{x: x, energy: energy, cache: make(map[int]float64)}
}

func (s *dftSpectrum) method() Method { return MethodDFT }

func (s *dftSpectrum) power(bin int) float64 {
	if p, ok := s.cache[bin]; ok {
		return p
	}

	p := dftBinPower(s.x, bin)
	s.cache[bin] = p

	return p
}

// oneSided uses Parseval: the n bins sum to n·Σx², bins b and n-b are equal,
// and DC and (for even n) Nyquist are unpaired.
func (s *dftSpectrum) oneSided() float64 {
	n := len(s.x)

	total := float64(n)*s.energy - s.power(0)
	if n%2 == 0 {
		total -= s.power(n / 2)
	}

	return total / 2
}

// dftBinPower returns |X[bin]|². The phase index bin*i is reduced modulo n
// before scaling so long captures keep full phase precision.
func dftBinPower(x []float64, bin int) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}

	bin %= n
	step := 2 * math.Pi / float64(n)

	var re, im float64

	k := 0
	for _, v := range x {
		sin, cos := math.Sincos(step * float64(k))
		re += v * cos
		im -= v * sin

		k += bin
		if k >= n {
			k -= n
		}
	}

	return re*re + im*im
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func isPowerOf2(n int) bool {
	return n > 1 && n&(n-1) == 0
}
