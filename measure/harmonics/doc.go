// Package harmonics extracts harmonic groups from decibel power spectra of
// electric-organ-discharge recordings.
//
// A harmonic group is a fundamental frequency together with its detected
// integer-multiple overtones. The extractor locates spectral peaks with a
// hysteresis scan, excludes power-line interference, assembles harmonic
// series hypotheses for every peak and every plausible divisor, scores the
// hypotheses, and returns the accepted groups ranked best first.
//
// Each extraction call is a pure function of one spectrum and one
// configuration: no state persists between calls, and independent calls may
// run concurrently without coordination.
//
// # Usage
//
//	ex, err := harmonics.NewExtractor(harmonics.DefaultConfig())
//	if err != nil {
//	    // invalid configuration
//	}
//	groups, err := ex.Extract(spec.Freqs, spec.Power)
//	for _, g := range groups {
//	    fmt.Printf("%.1f Hz, score %.1f dB\n", g.Fundamental, g.Score)
//	}
//
// An empty result is a valid outcome: pure-noise spectra yield no groups.
package harmonics
