package harmonics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// thresholdMode is the per-call resolution of the explicit-vs-estimated
// threshold choice.
type thresholdMode int

const (
	autoEstimate thresholdMode = iota
	explicit
)

func resolveThresholdMode(cfg Config) thresholdMode {
	if cfg.LowThreshold != 0 && cfg.HighThreshold != 0 {
		return explicit
	}
	return autoEstimate
}

// thresholds returns the (low, high) detection thresholds for the given
// power values. Thresholds are noise-floor-relative heights in dB: the low
// threshold is the hysteresis margin confirming peaks and troughs, the high
// threshold the peak-over-trough height that marks a peak significant.
func thresholds(power []float64, cfg Config) (float64, float64) {
	if resolveThresholdMode(cfg) == explicit {
		return cfg.LowThreshold, cfg.HighThreshold
	}
	return estimateThresholds(power, cfg)
}

// estimateThresholds derives thresholds from the spectrum's power histogram.
// The histogram's dominant mode approximates the noise floor; its spread is
// estimated from the lower flank, since spectral peaks only add mass above
// the mode. The thresholds scale that spread by the configured factors.
func estimateThresholds(power []float64, cfg Config) (float64, float64) {
	sorted := append([]float64(nil), power...)
	sort.Float64s(sorted)

	lo := sorted[0]
	hi := sorted[len(sorted)-1]
	if hi <= lo {
		// flat spectrum, fixed-width band
		return cfg.LowThresholdFactor, cfg.HighThresholdFactor
	}

	dividers := make([]float64, cfg.ThresholdBins+1)
	floats.Span(dividers, lo, math.Nextafter(hi, math.Inf(1)))
	// Span's endpoint can round back down to hi, violating Histogram's
	// requirement that the highest divider exceed the maximum value; pin it
	// to the bound requested above.
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	modeBin := 0
	populated := 0
	for i, c := range counts {
		if c > 0 {
			populated++
		}
		if c > counts[modeBin] {
			modeBin = i
		}
	}
	mode := (dividers[modeBin] + dividers[modeBin+1]) / 2

	sigma := lowerFlankSigma(power, mode)
	if sigma <= 0 || populated <= 1 {
		// degenerate histogram, keep a fixed-width acceptance band open
		sigma = 1
	}

	return cfg.LowThresholdFactor * sigma, cfg.HighThresholdFactor * sigma
}

// lowerFlankSigma estimates the standard deviation of the population around
// mode using only values at or below it, mirrored.
func lowerFlankSigma(power []float64, mode float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range power {
		if v <= mode {
			d := v - mode
			sum += d * d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}
