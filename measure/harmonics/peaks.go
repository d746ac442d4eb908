package harmonics

import (
	"math"
	"sort"
)

// Peak is a spectral sample confirmed as a local maximum by the hysteresis
// scan.
type Peak struct {
	Freq  float64
	Power float64
	Index int

	// Significant marks peaks whose height above the preceding trough
	// exceeds the high threshold.
	Significant bool
}

// scanState is the hysteresis detector mode.
type scanState int

const (
	seekingPeak scanState = iota
	seekingTrough
)

// detectPeaks sweeps the spectrum once, confirming a peak when the value has
// fallen below the running maximum by at least the low threshold, and a
// trough symmetrically. The hysteresis suppresses noise-induced multiple
// detections on a single real peak. Peaks on power-line harmonics are
// discarded.
func detectPeaks(freqs, power []float64, low, high float64, cfg Config) []Peak {
	var peaks []Peak

	state := seekingPeak
	maxVal, maxIdx := power[0], 0
	minVal := power[0]
	troughVal := power[0]

	for i := 1; i < len(power); i++ {
		v := power[i]
		switch state {
		case seekingPeak:
			if v > maxVal {
				maxVal, maxIdx = v, i
			} else if v < maxVal-low {
				pk := Peak{
					Freq:        freqs[maxIdx],
					Power:       maxVal,
					Index:       maxIdx,
					Significant: maxVal-troughVal > high,
				}
				if !nearMainsHarmonic(pk.Freq, cfg) {
					peaks = append(peaks, pk)
				}
				state = seekingTrough
				minVal = v
			}
		case seekingTrough:
			if v < minVal {
				minVal = v
			} else if v > minVal+low {
				troughVal = minVal
				state = seekingPeak
				maxVal, maxIdx = v, i
			}
		}
	}

	return peaks
}

// Interference from power lines fades with harmonic order; excluding higher
// multiples would mask genuine EOD harmonics that happen to land on them.
const maxMainsHarmonic = 3

// nearMainsHarmonic reports whether freq lies within the exclusion band of
// one of the first mains-frequency multiples.
func nearMainsHarmonic(freq float64, cfg Config) bool {
	if cfg.MainsFreq <= 0 {
		return false
	}
	n := math.Round(freq / cfg.MainsFreq)
	if n < 1 || n > maxMainsHarmonic {
		return false
	}
	return math.Abs(freq-n*cfg.MainsFreq) <= cfg.MainsFreqTolerance
}

// nearestPeak returns the peak closest to target within tol, if any.
// peaks must be in ascending frequency order.
func nearestPeak(peaks []Peak, target, tol float64) (Peak, bool) {
	i := sort.Search(len(peaks), func(i int) bool {
		return peaks[i].Freq >= target-tol
	})

	best := -1
	bestDist := tol
	for ; i < len(peaks) && peaks[i].Freq <= target+tol; i++ {
		if d := math.Abs(peaks[i].Freq - target); d <= bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return Peak{}, false
	}
	return peaks[best], true
}
