// Package core holds small numeric helpers shared by the transform, the
// windowing engine and the command line.
package core

import "math"

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB and limits the result to at
// least floor. Zero, negative and NaN amplitudes map to floor.
func LinearToDB(linear, floor float64) float64 {
	if !(linear > 0) {
		return floor
	}

	return math.Max(20*log10(linear), floor)
}

// NearlyEqual reports whether a and b agree within eps, absolutely or
// relative to the larger magnitude.
func NearlyEqual(a, b, eps float64) bool {
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	return diff <= eps*math.Max(math.Abs(a), math.Abs(b))
}
