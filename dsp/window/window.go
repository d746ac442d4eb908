// Package window provides the window functions used by spectral estimation,
// with the gain metadata needed for correctly scaled power spectra.
package window

import "math"

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeFlatTop
)

// cosine-sum coefficients per type; rectangular is the degenerate single term.
var cosineCoeffs = map[Type][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, 0.5},
	TypeHamming:     {0.54, 0.46},
	TypeBlackman:    {0.42, 0.5, 0.08},
	TypeFlatTop:     {0.21557895, 0.41663158, 0.277263158, 0.083578947, 0.006947368},
}

// String returns the conventional window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	case TypeFlatTop:
		return "flat-top"
	default:
		return "unknown"
	}
}

// Generate returns the symmetric window coefficients for t.
// Unknown types fall back to Hann. Returns nil for length <= 0.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	coeffs, ok := cosineCoeffs[t]
	if !ok {
		coeffs = cosineCoeffs[TypeHann]
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	for n := range out {
		x := 2 * math.Pi * float64(n) / float64(length-1)
		v := 0.0
		sign := 1.0
		for k, c := range coeffs {
			v += sign * c * math.Cos(float64(k)*x)
			sign = -sign
		}
		out[n] = v
	}
	return out
}

// CoherentGain returns the mean of the coefficients, the amplitude scaling
// factor of the window.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs))
}

// PowerGain returns the mean squared coefficient, the power scaling factor
// used to normalize Welch spectra.
func PowerGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c * c
	}
	return sum / float64(len(coeffs))
}

// Apply multiplies samples by coeffs into a new slice.
func Apply(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}
	out := make([]float64, len(samples))
	for i := range samples {
		out[i] = samples[i] * coeffs[i]
	}
	return out, nil
}

// ApplyInPlace multiplies samples by coeffs in place.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}
	for i := range samples {
		samples[i] *= coeffs[i]
	}
	return nil
}
