// Command eodfinder detects the fundamental frequencies of wave-type
// electric fish in a recording.
//
// Usage:
//
//	eodfinder [flags] file.wav
//
// It estimates power spectra at several frequency resolutions, extracts
// harmonic groups from each, and reports the fundamentals that appear
// consistently across all resolutions.
//
// Examples:
//
//	eodfinder recording.wav
//	eodfinder -fres 1 -resolutions 2 recording.wav
//	eodfinder -mains 50 recording.wav
//	eodfinder -demo -rate 44100
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-eod/dsp/core"
	"github.com/cwbudde/algo-eod/dsp/psd"
	"github.com/cwbudde/algo-eod/dsp/signal"
	"github.com/cwbudde/algo-eod/internal/wavio"
	"github.com/cwbudde/algo-eod/measure/harmonics"
)

func main() {
	demo := flag.Bool("demo", false, "analyze a synthetic two-fish signal instead of a file")
	rate := flag.Float64("rate", 44100, "sample rate for -demo in Hz")
	fres := flag.Float64("fres", 0.5, "finest frequency resolution in Hz")
	resolutions := flag.Int("resolutions", 3, "number of spectra with doubling resolution")
	mains := flag.Float64("mains", 60, "mains frequency to exclude in Hz, 0 disables")
	minFreq := flag.Float64("minfreq", 20, "lowest accepted fundamental in Hz")
	maxFreq := flag.Float64("maxfreq", 2000, "highest accepted fundamental in Hz")
	maxGroups := flag.Int("groups", 0, "report at most this many fish, 0 = all")
	verbose := flag.Bool("v", false, "verbose progress logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eodfinder [flags] file.wav\n\n")
		fmt.Fprintf(os.Stderr, "Detects electric-fish fundamental frequencies in a recording.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "eodfinder: %v\n", err)
			os.Exit(1)
		}
		log = dev
	}
	defer log.Sync()

	samples, sampleRate, err := loadSignal(*demo, *rate, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "eodfinder: %v\n", err)
		os.Exit(1)
	}
	log.Info("loaded signal",
		zap.Int("samples", len(samples)),
		zap.Float64("sampleRate", sampleRate))

	specCfg := psd.DefaultConfig()
	specCfg.SampleRate = sampleRate
	specCfg.FrequencyResolution = *fres
	spectra, err := psd.MultiResolution(samples, specCfg, *resolutions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eodfinder: spectrum: %v\n", err)
		os.Exit(1)
	}

	cfg := harmonics.ApplyOptions(
		harmonics.WithMains(*mains, 1),
		harmonics.WithFundamentalRange(*minFreq, *maxFreq),
	)
	lists := make([][]harmonics.Group, 0, len(spectra))
	for _, spec := range spectra {
		specConfig := cfg
		specConfig.FrequencyResolution = spec.Resolution
		groups, err := harmonics.Extract(spec.Freqs, spec.Power, specConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "eodfinder: extract: %v\n", err)
			os.Exit(1)
		}
		log.Info("extracted groups",
			zap.Float64("resolution", spec.Resolution),
			zap.Int("groups", len(groups)))
		lists = append(lists, groups)
	}

	tol := cfg.FreqTolerance * *fres
	fish := harmonics.ConsistentGroups(lists, tol)
	if *maxGroups > 0 && len(fish) > *maxGroups {
		fish = fish[:*maxGroups]
	}

	if len(fish) == 0 {
		fmt.Println("no harmonic groups found")
		return
	}
	printGroups(fish)
}

func loadSignal(demo bool, rate float64, args []string) ([]float64, float64, error) {
	if demo {
		gen := signal.NewGenerator(core.WithSampleRate(rate))
		a, err := gen.Wavefish(423.5, nil, 0.01, int(rate*8))
		if err != nil {
			return nil, 0, err
		}
		b, err := gen.Wavefish(610.2, []float64{0.6, 0.2, 0.05}, 0.01, int(rate*8))
		if err != nil {
			return nil, 0, err
		}
		mixed, err := signal.Mix(a, b)
		if err != nil {
			return nil, 0, err
		}
		return mixed, rate, nil
	}
	if len(args) != 1 {
		return nil, 0, fmt.Errorf("expected exactly one input file, got %d", len(args))
	}
	return wavio.ReadFile(args[0])
}

func printGroups(fish []harmonics.Group) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tfundamental [Hz]\tharmonics\tscore [dB]")
	for i, g := range fish {
		fmt.Fprintf(w, "%d\t%.2f\t%d\t%.1f\n", i+1, g.Fundamental, g.BoundCount(), g.Score)
	}
	w.Flush()
}
