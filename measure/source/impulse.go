package source

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-windowing/dsp/transform"
)

// FromImpulse builds a Data source from a sampled impulse response.
//
// The samples are placed in a power-of-two buffer so that the absolute peak
// sits at index N/2-1, which is time zero. The frequency response is the
// unscaled DFT of that buffer referenced to time zero, with coherence 1.
func FromImpulse(name string, samples []float64, sampleRate float64) (*Data, error) {
	if len(samples) == 0 {
		return nil, ErrEmpty
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	peak := peakIndex(samples)

	n := 2
	for n/2-1 < peak || n-(n/2-1) < len(samples)-peak {
		n <<= 1
	}

	zero := n/2 - 1
	shift := zero - peak
	dt := 1000 / sampleRate

	impulse := make([]ImpulsePoint, n)
	for j := range impulse {
		impulse[j].Time = float64(j-zero) * dt
		if i := j - shift; i >= 0 && i < len(samples) {
			impulse[j].Value = samples[i]
		}
	}

	frequency, err := spectrum(impulse, zero, sampleRate)
	if err != nil {
		return nil, err
	}

	d := NewData(name)
	d.frequency = frequency
	d.impulse = impulse

	return d, nil
}

func spectrum(impulse []ImpulsePoint, zero int, sampleRate float64) ([]FrequencyPoint, error) {
	n := len(impulse)

	tr := transform.New()
	tr.SetSize(n)
	tr.SetSampleRate(sampleRate)
	tr.SetNorm(transform.NormLinear)

	if err := tr.Prepare(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	for j, p := range impulse {
		tr.Set((j-zero+n)%n, complex(p.Value, 0))
	}

	if err := tr.Forward(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	freqs := tr.Frequencies()
	points := make([]FrequencyPoint, len(freqs))

	for k, f := range freqs {
		x := tr.At(k) * complex(float64(n), 0)
		mag := cmplx.Abs(x)

		phase := complex(1, 0)
		if mag > 0 {
			phase = x / complex(mag, 0)
		}

		points[k] = FrequencyPoint{Frequency: f, Magnitude: mag, Phase: phase, Coherence: 1}
	}

	return points, nil
}

func peakIndex(samples []float64) int {
	peak := 0
	for i, v := range samples {
		if math.Abs(v) > math.Abs(samples[peak]) {
			peak = i
		}
	}

	return peak
}

// FromPoints builds a Data source from parallel frequency, magnitude and
// phase slices. Coherence defaults to 1 when coherence is nil.
func FromPoints(name string, frequency, magnitude []float64, phase []complex128, coherence []float64) (*Data, error) {
	n := len(frequency)
	if len(magnitude) != n || len(phase) != n || (coherence != nil && len(coherence) != n) {
		return nil, ErrLengthMismatch
	}

	points := make([]FrequencyPoint, n)
	for i := range points {
		points[i] = FrequencyPoint{Frequency: frequency[i], Magnitude: magnitude[i], Phase: phase[i], Coherence: 1}
		if coherence != nil {
			points[i].Coherence = coherence[i]
		}
	}

	d := NewData(name)
	d.frequency = points

	return d, nil
}
