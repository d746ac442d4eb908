// Package signal generates deterministic test signals, including mimics of
// wave-type and pulse-type electric-organ discharges.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-eod/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with
// signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Wavefish generates a wave-type EOD mimic: a sine at freqHz plus harmonics
// with decaying amplitudes, plus gaussian background noise. amplitudes[k] is
// the relative amplitude of harmonic k+1; pass nil for a default 4-harmonic
// series. noise is the standard deviation of the additive noise.
func (g *Generator) Wavefish(freqHz float64, amplitudes []float64, noise float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("wavefish samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("wavefish sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if freqHz <= 0 {
		return nil, fmt.Errorf("wavefish frequency must be > 0: %f", freqHz)
	}
	if noise < 0 {
		return nil, fmt.Errorf("wavefish noise must be >= 0: %f", noise)
	}
	if amplitudes == nil {
		amplitudes = []float64{1.0, 0.3, 0.1, 0.03}
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		v := 0.0
		for k, a := range amplitudes {
			v += a * math.Sin(2*math.Pi*float64(k+1)*freqHz*t)
		}
		if noise > 0 {
			v += noise * rng.NormFloat64()
		}
		out[i] = v
	}
	return out, nil
}

// Pulsefish generates a pulse-type EOD mimic: a biphasic gaussian pulse
// repeated at freqHz over a noisy baseline. width is the pulse duration in
// seconds; noise is the standard deviation of the baseline noise.
func (g *Generator) Pulsefish(freqHz, width, noise float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("pulsefish samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("pulsefish sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if freqHz <= 0 {
		return nil, fmt.Errorf("pulsefish frequency must be > 0: %f", freqHz)
	}
	if width <= 0 {
		return nil, fmt.Errorf("pulsefish width must be > 0: %f", width)
	}
	if noise < 0 {
		return nil, fmt.Errorf("pulsefish noise must be >= 0: %f", noise)
	}

	pulse := biphasicPulse(g.cfg.SampleRate, width)
	period := int(g.cfg.SampleRate / freqHz)
	if period < 1 {
		period = 1
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	if noise > 0 {
		for i := range out {
			out[i] = noise * rng.NormFloat64()
		}
	}
	for s := period / 2; s < samples; s += period {
		for i, p := range pulse {
			if s+i >= samples {
				break
			}
			out[s+i] += p
		}
	}
	return out, nil
}

// biphasicPulse returns a positive gaussian lobe followed by a weaker
// negative one, the canonical pulse-fish discharge shape.
func biphasicPulse(sampleRate, width float64) []float64 {
	n := int(sampleRate * width)
	if n < 3 {
		n = 3
	}
	pulse := make([]float64, n)
	half := n / 2
	peakStd := float64(n) / 8
	troughStd := float64(n) / 6
	for i := range pulse {
		dp := float64(i-half/2) / peakStd
		dt := float64(i-half-half/2) / troughStd
		pulse[i] = 2*math.Exp(-0.5*dp*dp) - 1.2*math.Exp(-0.5*dt*dt)
	}
	return pulse
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	out := make([]float64, len(data))
	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		copy(out, data)
		return out, nil
	}
	scale := targetPeak / peak
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// Mix sums multiple signals sample by sample; all inputs must share a length.
func Mix(signals ...[]float64) ([]float64, error) {
	if len(signals) == 0 {
		return nil, fmt.Errorf("mix needs at least one signal")
	}
	n := len(signals[0])
	for i, s := range signals {
		if len(s) != n {
			return nil, fmt.Errorf("mix length mismatch at signal %d: %d != %d", i, len(s), n)
		}
	}
	out := make([]float64, n)
	for _, s := range signals {
		for i, v := range s {
			out[i] += v
		}
	}
	return out, nil
}
