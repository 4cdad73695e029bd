package testutil

import (
	"math"
	"math/rand"
)

// Taps returns n zero samples with the given index/value pairs set.
// Indices outside [0, n) are ignored.
func Taps(n int, taps map[int]float64) []float64 {
	out := make([]float64, n)
	for i, v := range taps {
		if i >= 0 && i < n {
			out[i] = v
		}
	}

	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude) with
// a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// DecayingIR returns a synthetic impulse response: zeros before peak, a unit
// sample at peak and exponentially decaying noise after it with time
// constant tau samples. Every sample after the peak is strictly smaller
// than 1 in magnitude, so peak is always the absolute maximum.
func DecayingIR(seed int64, length, peak int, tau float64) []float64 {
	out := make([]float64, length)
	if peak < 0 || peak >= length {
		return out
	}

	noise := DeterministicNoise(seed, 0.9, length-peak)
	out[peak] = 1

	for i := peak + 1; i < length; i++ {
		out[i] = noise[i-peak] * math.Exp(-float64(i-peak)/tau)
	}

	return out
}

// Tone returns a complex exponential of the given number of cycles per
// length samples.
func Tone(cycles float64, length int) []complex128 {
	out := make([]complex128, length)
	step := 2 * math.Pi * cycles / float64(length)

	for i := range out {
		s, c := math.Sincos(step * float64(i))
		out[i] = complex(c, s)
	}

	return out
}
