// Package psd estimates decibel power spectra from time-domain recordings.
//
// The estimator follows Welch's method: the signal is split into
// overlapping, windowed segments, each segment is transformed, and the
// squared magnitudes are averaged into a one-sided power spectral density.
// The result is converted to decibels relative to the strongest bin, the
// scale the harmonic-group extractor operates on.
//
// The FFT length is derived from the requested frequency resolution and
// reduced automatically when the recording is too short to provide the
// configured minimum number of averages.
//
// # Usage
//
//	spec, err := psd.Welch(samples, psd.Config{
//	    SampleRate:          44100,
//	    FrequencyResolution: 0.5,
//	})
//
// For analyses that compare results across several resolutions:
//
//	specs, err := psd.MultiResolution(samples, cfg, 3)
//	// specs[0] at cfg.FrequencyResolution, specs[1] at twice that, ...
package psd
