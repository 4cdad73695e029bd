package windowing

import (
	"math"
	"math/cmplx"
)

// bracketPoint is one upstream frequency sample after band gating.
type bracketPoint struct {
	frequency float64
	magnitude float64
	phase     complex128
	coherence float64
}

func (w *Windowing) point(i int, p Values) bracketPoint {
	b := bracketPoint{
		frequency: w.src.Frequency(i),
		magnitude: w.src.Magnitude(i),
		phase:     w.src.Phase(i),
		coherence: w.src.Coherence(i),
	}

	if !p.InBand(b.frequency) {
		b.magnitude, b.phase = 0, 0
	}

	return b
}

// fromFrequency resamples the upstream spectrum onto the transform bins and
// inverse-transforms it into the impulse output. Log modes cannot be fed from
// the frequency domain and deactivate the engine instead.
func (w *Windowing) fromFrequency(p Values) {
	if w.used.Log() {
		w.after(func() { w.SetActive(false) })
		return
	}

	n := w.size
	upstream := w.src.Size()
	last, j := 0, 0
	inList := false

	for i := range w.bins {
		f := w.bins[i].Frequency

		for f > w.src.Frequency(j) {
			last = j

			if j+1 >= upstream {
				inList = false
				break
			}

			j++
			inList = true
		}

		var (
			g  float64
			ph complex128
			c  float64
		)

		if p.InBand(f) {
			lo, hi := w.point(last, p), w.point(j, p)
			if inList {
				g, ph, c = interpolate(f, lo, hi)
			} else {
				g, ph, c = hi.magnitude, hi.phase, hi.coherence
			}
		}

		if g < gateHigh || c < CoherenceCutoff {
			g, ph, c = 0, 0, 0
		}

		b := &w.bins[i]
		b.Magnitude = g
		b.Phase = ph
		b.Coherence = c
		b.Module = g
		b.MeanSquared = g * g
		b.PeakSquared = 0

		v := ph * complex(g, 0)
		if i == 0 {
			v = 0
		}

		w.ft.Set(i, v)
		w.ft.Set(n-1-i, cmplx.Conj(v))
	}

	if err := w.ft.Inverse(); err != nil {
		w.log.WithError(err).Error("windowing: inverse transform failed")
		return
	}

	norm := 1 / math.Sqrt(float64(n))

	timeAxis(n, w.rate, func(i, j int, ms float64) {
		w.impulse[j] = ImpulseSample{Time: ms, Value: norm * real(w.ft.At(i))}
	})
}

// interpolate evaluates the straight line through lo and hi at f. Targets on
// an endpoint return that endpoint's values unchanged.
func interpolate(f float64, lo, hi bracketPoint) (float64, complex128, float64) {
	switch {
	case f == hi.frequency || hi.frequency == lo.frequency:
		return hi.magnitude, hi.phase, hi.coherence
	case f == lo.frequency:
		return lo.magnitude, lo.phase, lo.coherence
	}

	t := (f - lo.frequency) / (hi.frequency - lo.frequency)

	return lo.magnitude + t*(hi.magnitude-lo.magnitude),
		lo.phase + complex(t, 0)*(hi.phase-lo.phase),
		lo.coherence + t*(hi.coherence-lo.coherence)
}
