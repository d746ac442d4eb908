package harmonics

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig marks configurations rejected before any computation.
	ErrInvalidConfig = errors.New("invalid extraction config")

	// ErrInvalidSpectrum marks spectra with a broken frequency axis or
	// non-finite power values.
	ErrInvalidSpectrum = errors.New("invalid spectrum")
)

func validateConfig(cfg Config) error {
	if cfg.FreqTolerance <= 0.5 {
		return fmt.Errorf("%w: freq tolerance must be > 0.5 bins: %g", ErrInvalidConfig, cfg.FreqTolerance)
	}
	if cfg.MaxDivisor < 1 {
		return fmt.Errorf("%w: max divisor must be >= 1: %d", ErrInvalidConfig, cfg.MaxDivisor)
	}
	if cfg.ThresholdBins < 1 {
		return fmt.Errorf("%w: threshold bins must be >= 1: %d", ErrInvalidConfig, cfg.ThresholdBins)
	}
	if cfg.MinGroupSize < 1 {
		return fmt.Errorf("%w: min group size must be >= 1: %d", ErrInvalidConfig, cfg.MinGroupSize)
	}
	if cfg.MaxFreq <= cfg.MinFreq {
		return fmt.Errorf("%w: fundamental range [%g, %g] is empty", ErrInvalidConfig, cfg.MinFreq, cfg.MaxFreq)
	}
	return nil
}

// validateSpectrum checks the frequency axis and power values and returns
// the bin spacing. cfg.FrequencyResolution, when set, must match the axis.
func validateSpectrum(freqs, power []float64, cfg Config) (float64, error) {
	if len(freqs) != len(power) {
		return 0, fmt.Errorf("%w: axis length %d != power length %d", ErrInvalidSpectrum, len(freqs), len(power))
	}
	if len(freqs) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 bins, got %d", ErrInvalidSpectrum, len(freqs))
	}

	res := freqs[1] - freqs[0]
	if res <= 0 {
		return 0, fmt.Errorf("%w: frequency axis not increasing", ErrInvalidSpectrum)
	}
	for i := 1; i < len(freqs); i++ {
		d := freqs[i] - freqs[i-1]
		if d <= 0 {
			return 0, fmt.Errorf("%w: frequency axis not increasing at bin %d", ErrInvalidSpectrum, i)
		}
		if math.Abs(d-res) > 1e-6*res {
			return 0, fmt.Errorf("%w: frequency axis not evenly spaced at bin %d", ErrInvalidSpectrum, i)
		}
	}

	if cfg.FrequencyResolution > 0 && math.Abs(res-cfg.FrequencyResolution) > 1e-3*cfg.FrequencyResolution {
		return 0, fmt.Errorf("%w: bin spacing %g Hz does not match configured resolution %g Hz",
			ErrInvalidSpectrum, res, cfg.FrequencyResolution)
	}

	for i, p := range power {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return 0, fmt.Errorf("%w: non-finite power at bin %d", ErrInvalidSpectrum, i)
		}
	}
	return res, nil
}
