package core

import "math"

// MinPowerDB is the floor applied when converting vanishing power values to
// decibels, keeping log-scale spectra finite.
const MinPowerDB = -120.0

// PowerToDB converts a linear power value to decibels relative to ref.
// Non-positive power or ref values clamp to MinPowerDB.
func PowerToDB(power, ref float64) float64 {
	if power <= 0 || ref <= 0 {
		return MinPowerDB
	}
	db := 10 * math.Log10(power/ref)
	if db < MinPowerDB {
		return MinPowerDB
	}
	return db
}

// PowerToDBSlice converts a linear power slice to decibels in place, relative
// to the slice maximum. A spectrum with no positive power maps to MinPowerDB
// throughout.
func PowerToDBSlice(power []float64) {
	ref := 0.0
	for _, v := range power {
		if v > ref {
			ref = v
		}
	}
	for i, v := range power {
		power[i] = PowerToDB(v, ref)
	}
}

// DBToPower converts a decibel value back to linear power relative to ref.
func DBToPower(db, ref float64) float64 {
	return ref * math.Pow(10, db/10)
}
