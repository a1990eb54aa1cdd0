// Package units converts between user facing kilograms and the integer grams
// that are stored and compared everywhere else.
package units

import "math"

const GramsPerKg = 1000

// KgToGrams rounds to the nearest gram, half away from zero.
func KgToGrams(kg float64) int64 {
	return int64(math.Round(kg * GramsPerKg))
}

func GramsToKg(grams int64) float64 {
	return float64(grams) / GramsPerKg
}
