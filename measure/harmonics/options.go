package harmonics

// Config holds harmonic-group extraction parameters. Start from
// DefaultConfig and override fields; a zero Config is rejected by
// NewExtractor. Zero values mean "automatic" or "disabled" only where noted.
type Config struct {
	// FrequencyResolution is the bin spacing of the input spectrum in Hz.
	// 0 derives it from the frequency axis.
	FrequencyResolution float64

	// LowThreshold and HighThreshold are explicit detection thresholds in
	// dB. When both are non-zero they are used unchanged; otherwise both
	// are estimated from the spectrum's power histogram.
	LowThreshold  float64
	HighThreshold float64

	// Histogram estimation parameters for automatic thresholds.
	ThresholdBins       int
	LowThresholdFactor  float64
	HighThresholdFactor float64

	// MainsFreq is the power-line frequency whose harmonics are excluded
	// from peak detection; 0 disables the exclusion. MainsFreqTolerance is
	// the exclusion half-width in Hz.
	MainsFreq          float64
	MainsFreqTolerance float64

	// MinGroupSize is the minimum number of bound harmonic slots a
	// hypothesis needs to be retained.
	MinGroupSize int

	// MaxDivisor bounds the harmonic order a seed peak may be assumed to
	// have relative to the true fundamental.
	MaxDivisor int

	// FreqTolerance is the slot matching tolerance in units of
	// FrequencyResolution; it must be strictly greater than 0.5.
	FreqTolerance float64

	// MinFreq and MaxFreq bound the accepted fundamental range in Hz.
	MinFreq float64
	MaxFreq float64

	// MaxRelativePowerWeight caps the score penalty, in dB, taken from the
	// relative power of the MinGroupSize-th bound harmonic.
	MaxRelativePowerWeight float64

	// MaxRelativePower rejects a group outright when a harmonic at or
	// beyond order MinGroupSize exceeds the fundamental by more than this
	// many dB; 0 disables the rejection.
	MaxRelativePower float64

	// MaxHarmonics truncates each reported group's harmonic list; 0 keeps
	// the full series.
	MaxHarmonics int

	// MaxGroups truncates the ranked result list; 0 keeps all groups.
	MaxGroups int
}

// DefaultConfig returns extraction defaults suited to wave-type EOD
// recordings.
func DefaultConfig() Config {
	return Config{
		FrequencyResolution:    0.5,
		ThresholdBins:          100,
		LowThresholdFactor:     6,
		HighThresholdFactor:    10,
		MainsFreq:              60,
		MainsFreqTolerance:     1,
		MinGroupSize:           4,
		MaxDivisor:             4,
		FreqTolerance:          1,
		MinFreq:                20,
		MaxFreq:                2000,
		MaxRelativePowerWeight: 10,
		MaxRelativePower:       10,
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithThresholds sets explicit low/high detection thresholds in dB,
// bypassing the histogram estimation.
func WithThresholds(low, high float64) Option {
	return func(cfg *Config) {
		cfg.LowThreshold = low
		cfg.HighThreshold = high
	}
}

// WithMains sets the power-line frequency and exclusion tolerance in Hz.
func WithMains(freq, tolerance float64) Option {
	return func(cfg *Config) {
		cfg.MainsFreq = freq
		if tolerance > 0 {
			cfg.MainsFreqTolerance = tolerance
		}
	}
}

// WithFundamentalRange bounds the accepted fundamental frequencies in Hz.
func WithFundamentalRange(minFreq, maxFreq float64) Option {
	return func(cfg *Config) {
		cfg.MinFreq = minFreq
		cfg.MaxFreq = maxFreq
	}
}

// WithMaxGroups caps the number of reported groups; 0 keeps all.
func WithMaxGroups(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.MaxGroups = n
		}
	}
}

// WithMaxHarmonics caps each reported group's harmonic list; 0 keeps all.
func WithMaxHarmonics(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.MaxHarmonics = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
