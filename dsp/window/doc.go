// Package window generates cosine-sum analysis windows.
//
// Windows taper a capture before spectral analysis. For captures that hold
// an exact integer number of periods, [TypeRectangular] is leakage-free and
// is the default of the harmonic analyzer; the tapered types trade main-lobe
// width for sidelobe suppression when the capture is not period-aligned.
package window
