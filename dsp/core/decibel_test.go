package core

import (
	"math"
	"testing"
)

func TestPowerToDB(t *testing.T) {
	if got := PowerToDB(1, 1); got != 0 {
		t.Fatalf("unit power should be 0 dB, got %f", got)
	}
	if got := PowerToDB(0.1, 1); math.Abs(got+10) > 1e-12 {
		t.Fatalf("0.1 power should be -10 dB, got %f", got)
	}
	if got := PowerToDB(0, 1); got != MinPowerDB {
		t.Fatalf("zero power should clamp to %f, got %f", MinPowerDB, got)
	}
	if got := PowerToDB(1e-30, 1); got != MinPowerDB {
		t.Fatalf("tiny power should clamp to %f, got %f", MinPowerDB, got)
	}
}

func TestPowerToDBSlice(t *testing.T) {
	p := []float64{1, 0.1, 0}
	PowerToDBSlice(p)

	if p[0] != 0 {
		t.Fatalf("max bin should be 0 dB, got %f", p[0])
	}
	if math.Abs(p[1]+10) > 1e-12 {
		t.Fatalf("second bin should be -10 dB, got %f", p[1])
	}
	if p[2] != MinPowerDB {
		t.Fatalf("zero bin should clamp, got %f", p[2])
	}

	allZero := []float64{0, 0}
	PowerToDBSlice(allZero)
	if allZero[0] != MinPowerDB || allZero[1] != MinPowerDB {
		t.Fatalf("all-zero spectrum should clamp throughout: %+v", allZero)
	}
}

func TestDBToPowerRoundTrip(t *testing.T) {
	for _, db := range []float64{-60, -10, 0, 3} {
		back := PowerToDB(DBToPower(db, 1), 1)
		if math.Abs(back-db) > 1e-9 {
			t.Fatalf("round trip mismatch at %f dB: got %f", db, back)
		}
	}
}

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(2048))
	if cfg.SampleRate != 96000 || cfg.BlockSize != 2048 {
		t.Fatalf("options not applied: %+v", cfg)
	}

	cfg = ApplyProcessorOptions(WithSampleRate(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("invalid option should keep defaults: %+v", cfg)
	}
}
