package harmonics

import (
	"math"
	"sort"
)

// Extractor runs harmonic-group extraction with a fixed configuration.
// It is stateless between calls and safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor validates the configuration and returns an extractor.
func NewExtractor(cfg Config, opts ...Option) (*Extractor, error) {
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Extractor{cfg: cfg}, nil
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Extract is a one-shot extraction with the given configuration.
func Extract(freqs, power []float64, cfg Config) ([]Group, error) {
	ex, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	return ex.Extract(freqs, power)
}

// Extract identifies the harmonic groups in a decibel power spectrum and
// returns them ranked by score, best first. An empty result is a valid
// outcome for spectra without harmonic structure.
func (e *Extractor) Extract(freqs, power []float64) ([]Group, error) {
	res, err := validateSpectrum(freqs, power, e.cfg)
	if err != nil {
		return nil, err
	}

	low, high := thresholds(power, e.cfg)
	peaks := detectPeaks(freqs, power, low, high, e.cfg)
	if len(peaks) == 0 {
		return nil, nil
	}

	tol := e.cfg.FreqTolerance * res
	fmax := freqs[len(freqs)-1]

	var candidates []Group
	for _, seed := range peaks {
		for d := 1; d <= e.cfg.MaxDivisor; d++ {
			g, ok := buildGroup(peaks, seed, d, fmax, tol, e.cfg)
			if !ok {
				continue
			}
			fillGaps(&g, freqs, power, res)
			if !scoreGroup(&g, e.cfg) {
				continue
			}
			if g.Fundamental < e.cfg.MinFreq || g.Fundamental > e.cfg.MaxFreq {
				continue
			}
			candidates = append(candidates, g)
		}
	}

	groups := dedupGroups(candidates, tol)

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Score > groups[j].Score
	})

	if e.cfg.MaxGroups > 0 && len(groups) > e.cfg.MaxGroups {
		groups = groups[:e.cfg.MaxGroups]
	}
	if e.cfg.MaxHarmonics > 0 {
		for i := range groups {
			if len(groups[i].Harmonics) > e.cfg.MaxHarmonics {
				groups[i].Harmonics = groups[i].Harmonics[:e.cfg.MaxHarmonics]
			}
		}
	}

	return groups, nil
}

// Thresholds returns the (low, high) detection thresholds in dB that an
// extraction over power would use.
func (e *Extractor) Thresholds(power []float64) (float64, float64) {
	return thresholds(power, e.cfg)
}

// fillGaps samples the spectrum at each unbound slot so reported groups
// carry a power value for every harmonic position.
func fillGaps(g *Group, freqs, power []float64, res float64) {
	for i := range g.Harmonics {
		if g.Harmonics[i].Bound {
			continue
		}
		bin := int(math.Round((g.Harmonics[i].Freq - freqs[0]) / res))
		if bin >= 0 && bin < len(power) {
			g.Harmonics[i].Power = power[bin]
		}
	}
}

// scoreGroup scores g and reports whether it survives the relative-power
// acceptance rule. The score is the fundamental power minus a penalty for an
// overtone-heavy series: the positive relative power of the MinGroupSize-th
// bound harmonic, capped at MaxRelativePowerWeight.
func scoreGroup(g *Group, cfg Config) bool {
	fund := fundamentalPower(g)

	penalty := 0.0
	nbound := 0
	for _, h := range g.Harmonics {
		if !h.Bound {
			continue
		}
		nbound++
		if nbound == cfg.MinGroupSize {
			if rel := h.Power - fund; rel > 0 {
				penalty = math.Min(rel, cfg.MaxRelativePowerWeight)
			}
			break
		}
	}
	g.Score = fund - penalty

	if cfg.MaxRelativePower != 0 {
		for _, h := range g.Harmonics {
			if h.Bound && h.Order >= cfg.MinGroupSize && h.Power-fund > cfg.MaxRelativePower {
				return false
			}
		}
	}
	return true
}

// fundamentalPower returns the power of slot 1, bound or sampled.
func fundamentalPower(g *Group) float64 {
	if len(g.Harmonics) > 0 && g.Harmonics[0].Order == 1 {
		return g.Harmonics[0].Power
	}
	return 0
}

// dedupGroups collapses hypotheses whose fundamentals lie within tol of each
// other, keeping the highest-scoring representative. On equal scores the
// earlier candidate survives; candidates arrive ordered by seed peak
// frequency, then divisor, so the lower divisor wins a tie.
func dedupGroups(groups []Group, tol float64) []Group {
	var kept []Group
	for _, g := range groups {
		matched := false
		for i := range kept {
			if math.Abs(kept[i].Fundamental-g.Fundamental) < tol {
				matched = true
				if g.Score > kept[i].Score {
					kept[i] = g
				}
				break
			}
		}
		if !matched {
			kept = append(kept, g)
		}
	}
	return kept
}
