package harmonics

import (
	"math"
	"testing"
)

func TestEstimateThresholdsFromNoiseSpread(t *testing.T) {
	cfg := DefaultConfig()

	// narrow noise band around -60 dB with a few strong outliers
	power := make([]float64, 1000)
	for i := range power {
		power[i] = -60 + 0.5*math.Sin(float64(i))
	}
	power[100] = -10
	power[200] = -15

	low, high := estimateThresholds(power, cfg)
	if low <= 0 || high <= low {
		t.Fatalf("thresholds must be positive and ordered: %f %f", low, high)
	}
	// spread of the noise band is well under 1 dB; the outliers must not
	// inflate the estimate
	if low > cfg.LowThresholdFactor {
		t.Fatalf("low threshold inflated by signal peaks: %f", low)
	}

	ratio := high / low
	want := cfg.HighThresholdFactor / cfg.LowThresholdFactor
	if math.Abs(ratio-want) > 1e-9 {
		t.Fatalf("thresholds must scale with the configured factors: %f", ratio)
	}
}

func TestEstimateThresholdsFlatSpectrum(t *testing.T) {
	cfg := DefaultConfig()

	power := make([]float64, 64)
	for i := range power {
		power[i] = -42
	}

	low, high := estimateThresholds(power, cfg)
	if low != cfg.LowThresholdFactor || high != cfg.HighThresholdFactor {
		t.Fatalf("flat spectrum should fall back to the fixed band: %f %f", low, high)
	}
}

func TestEstimateThresholdsDegenerateHistogram(t *testing.T) {
	cfg := DefaultConfig()

	// two values, all mass in one histogram bin apart from a single outlier
	power := make([]float64, 128)
	for i := range power {
		power[i] = -50
	}
	power[7] = -10

	low, high := estimateThresholds(power, cfg)
	if low <= 0 || high <= low {
		t.Fatalf("degenerate histogram must keep the band open: %f %f", low, high)
	}
}

func TestThresholdModeResolution(t *testing.T) {
	cfg := DefaultConfig()
	if resolveThresholdMode(cfg) != autoEstimate {
		t.Fatal("zero thresholds should auto-estimate")
	}

	cfg.LowThreshold = 4
	if resolveThresholdMode(cfg) != autoEstimate {
		t.Fatal("a single explicit threshold should still auto-estimate")
	}

	cfg.HighThreshold = 9
	if resolveThresholdMode(cfg) != explicit {
		t.Fatal("both thresholds set should bypass estimation")
	}

	low, high := thresholds([]float64{-60, -59, -58}, cfg)
	if low != 4 || high != 9 {
		t.Fatalf("explicit thresholds must pass through: %f %f", low, high)
	}
}
