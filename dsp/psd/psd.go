package psd

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-eod/dsp/core"
	"github.com/cwbudde/algo-eod/dsp/window"
)

const minFFTSize = 16

// Config holds spectral estimation parameters.
type Config struct {
	SampleRate          float64
	FrequencyResolution float64 // desired bin spacing in Hz
	Window              window.Type
	Overlap             float64 // segment overlap fraction, 0 => 0.5
	MinAverages         int     // minimum segment count; FFT size shrinks to satisfy it
	MaxWindows          int     // cap on averaged segments, 0 => no cap
}

// DefaultConfig returns the estimation defaults used for EOD recordings.
func DefaultConfig() Config {
	return Config{
		SampleRate:          44100,
		FrequencyResolution: 0.5,
		Window:              window.TypeHann,
		Overlap:             0.5,
		MinAverages:         3,
	}
}

// Spectrum is a one-sided decibel power spectrum on an evenly spaced
// frequency axis.
type Spectrum struct {
	Freqs      []float64
	Power      []float64 // dB relative to the strongest bin
	Resolution float64   // actual bin spacing in Hz
}

// Welch estimates the decibel power spectrum of samples using Welch's method.
func Welch(samples []float64, cfg Config) (Spectrum, error) {
	cfg = normalizeConfig(cfg)
	if err := validate(samples, cfg); err != nil {
		return Spectrum{}, err
	}

	nfft := fftSizeFor(cfg.FrequencyResolution, cfg.SampleRate)
	for nfft > len(samples) {
		nfft >>= 1
	}
	if nfft < minFFTSize {
		return Spectrum{}, fmt.Errorf("%w: %d samples at %g Hz", ErrShortSignal, len(samples), cfg.SampleRate)
	}

	// Shrink the segment length until the recording yields enough averages.
	for nfft > minFFTSize && segmentCount(len(samples), nfft, cfg.Overlap) < cfg.MinAverages {
		nfft >>= 1
	}

	coeffs := window.Generate(cfg.Window, nfft)
	powerGain := window.PowerGain(coeffs)
	if powerGain <= 0 {
		return Spectrum{}, fmt.Errorf("window %v has zero power gain", cfg.Window)
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return Spectrum{}, fmt.Errorf("fft plan: %w", err)
	}

	step := stepFor(nfft, cfg.Overlap)
	segments := segmentCount(len(samples), nfft, cfg.Overlap)
	if cfg.MaxWindows > 0 && segments > cfg.MaxWindows {
		segments = cfg.MaxWindows
	}

	bins := nfft/2 + 1
	acc := make([]float64, bins)
	segPower := make([]float64, bins)
	re := make([]float64, bins)
	im := make([]float64, bins)
	in := make([]complex128, nfft)
	out := make([]complex128, nfft)

	for s := 0; s < segments; s++ {
		off := s * step
		for i := 0; i < nfft; i++ {
			in[i] = complex(samples[off+i]*coeffs[i], 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return Spectrum{}, fmt.Errorf("fft: %w", err)
		}
		for i := 0; i < bins; i++ {
			re[i] = real(out[i])
			im[i] = imag(out[i])
		}
		vecmath.Power(segPower, re, im)
		floats.Add(acc, segPower)
	}

	// One-sided density scaling; interior bins carry both spectral halves.
	norm := 1 / (float64(segments) * cfg.SampleRate * float64(nfft) * powerGain)
	floats.Scale(norm, acc)
	for i := 1; i < bins-1; i++ {
		acc[i] *= 2
	}

	core.PowerToDBSlice(acc)

	resolution := cfg.SampleRate / float64(nfft)
	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * resolution
	}

	return Spectrum{Freqs: freqs, Power: acc, Resolution: resolution}, nil
}

// MultiResolution estimates the spectrum at `resolutions` doublings of the
// configured frequency resolution, finest first.
func MultiResolution(samples []float64, cfg Config, resolutions int) ([]Spectrum, error) {
	if resolutions < 1 {
		return nil, fmt.Errorf("resolutions must be >= 1: %d", resolutions)
	}

	specs := make([]Spectrum, 0, resolutions)
	res := cfg.FrequencyResolution
	if res <= 0 {
		res = DefaultConfig().FrequencyResolution
	}
	for r := 0; r < resolutions; r++ {
		c := cfg
		c.FrequencyResolution = res * float64(int(1)<<r)
		spec, err := Welch(samples, c)
		if err != nil {
			return nil, fmt.Errorf("resolution %g Hz: %w", c.FrequencyResolution, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.FrequencyResolution <= 0 {
		cfg.FrequencyResolution = def.FrequencyResolution
	}
	if cfg.Overlap <= 0 || cfg.Overlap >= 1 {
		cfg.Overlap = def.Overlap
	}
	if cfg.MinAverages < 1 {
		cfg.MinAverages = def.MinAverages
	}
	return cfg
}

func validate(samples []float64, cfg Config) error {
	if len(samples) == 0 {
		return ErrEmptySignal
	}
	if cfg.FrequencyResolution >= cfg.SampleRate/2 {
		return fmt.Errorf("frequency resolution %g Hz too coarse for sample rate %g Hz",
			cfg.FrequencyResolution, cfg.SampleRate)
	}
	return nil
}

// fftSizeFor returns the power-of-two FFT length whose bin spacing is at
// least as fine as the requested resolution.
func fftSizeFor(resolution, sampleRate float64) int {
	n := 1
	for sampleRate/float64(n) > resolution {
		n <<= 1
	}
	return n
}

func stepFor(nfft int, overlap float64) int {
	step := int(float64(nfft) * (1 - overlap))
	if step < 1 {
		step = 1
	}
	return step
}

func segmentCount(samples, nfft int, overlap float64) int {
	if samples < nfft {
		return 0
	}
	return 1 + (samples-nfft)/stepFor(nfft, overlap)
}
