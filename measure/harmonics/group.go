package harmonics

// Harmonic is one slot of a harmonic series. Slot n is expected near
// n times the fundamental; unbound slots are gaps where no peak matched.
type Harmonic struct {
	Order int
	Freq  float64
	Power float64
	Bound bool
}

// Group is one harmonic-series hypothesis: a refined fundamental estimate,
// the divisor that formed it, its score, and the harmonic slots in order.
type Group struct {
	Fundamental float64
	Divisor     int
	Score       float64
	Harmonics   []Harmonic
}

// BoundCount returns the number of slots bound to a detected peak.
func (g Group) BoundCount() int {
	n := 0
	for _, h := range g.Harmonics {
		if h.Bound {
			n++
		}
	}
	return n
}

// buildGroup assembles a harmonic series for the hypothesis that seed is the
// divisor-th harmonic of an unknown fundamental. The fundamental estimate is
// refined as slots bind, averaging slot.Freq/order over all bound slots to
// reduce cumulative drift. Extension stops after two consecutive gaps or at
// the spectrum's upper bound. Returns false when the fundamental falls
// outside the accepted range or too few slots bind.
func buildGroup(peaks []Peak, seed Peak, divisor int, fmax, tol float64, cfg Config) (Group, bool) {
	f0 := seed.Freq / float64(divisor)
	if f0 < cfg.MinFreq || f0 > cfg.MaxFreq {
		return Group{}, false
	}

	est := f0
	sumRatio := 0.0
	bound := 0
	gaps := 0
	var slots []Harmonic

	for n := 1; ; n++ {
		target := float64(n) * est
		if target > fmax+tol {
			break
		}
		if pk, ok := nearestPeak(peaks, target, tol); ok {
			slots = append(slots, Harmonic{Order: n, Freq: pk.Freq, Power: pk.Power, Bound: true})
			sumRatio += pk.Freq / float64(n)
			bound++
			est = sumRatio / float64(bound)
			gaps = 0
		} else {
			slots = append(slots, Harmonic{Order: n, Freq: target, Bound: false})
			gaps++
			if gaps >= 2 {
				break
			}
		}
	}

	// trailing gaps carry no information
	for len(slots) > 0 && !slots[len(slots)-1].Bound {
		slots = slots[:len(slots)-1]
	}

	if bound < cfg.MinGroupSize {
		return Group{}, false
	}

	return Group{Fundamental: est, Divisor: divisor, Harmonics: slots}, true
}
