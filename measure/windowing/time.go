package windowing

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-windowing/dsp/window"
)

// fromTime extracts a Tukey-tapered segment of the upstream impulse response
// around its centre and transforms it into the frequency output.
func (w *Windowing) fromTime(p Values) {
	n := w.size
	fs := float64(w.rate)
	available := w.src.ImpulseSize()

	center := available/2 + int(math.Round(p.Offset*fs/1000))
	from := center - n/2
	span := window.CenteredTukey(float64(center), p.Wide*fs/1000, TukeyAlpha)

	k := 0.0
	if norm := w.window.Norm(); norm != 0 {
		k = w.window.Gain() / norm
	}

	logMode := w.used.Log()

	for j := 0; j < n; j++ {
		i := from + j

		var v float64
		if i >= 0 && i < available {
			v = w.src.ImpulseValue(i) * w.window.At(j) * k * span.At(float64(i))
		}

		w.impulse[j].Value = v

		if logMode {
			w.ft.Add(v)
		} else {
			w.ft.Set((n/2+1+j)%n, complex(v, 0))
		}
	}

	w.transform(p)
}

// transform runs the forward or log transform and fills the frequency bins.
// Coherence ramps up from 0 at 1000/wide Hz to 1 at twice that frequency and
// is then scaled by the two-level module gate.
func (w *Windowing) transform(p Values) {
	norm := 1.0

	var err error
	if w.used.Log() {
		err = w.ft.Log()
	} else {
		err = w.ft.Forward()
		norm = 1 / math.Sqrt(float64(w.size))
	}

	if err != nil {
		w.log.WithError(err).Error("windowing: forward transform failed")
		return
	}

	critical := 1000 / p.Wide

	for i := range w.bins {
		b := &w.bins[i]
		x := w.ft.At(i)
		abs := cmplx.Abs(x)

		b.Coherence = rollOff(b.Frequency, critical)
		b.Magnitude = abs / norm
		b.Module = b.Magnitude
		b.MeanSquared = b.Magnitude * b.Magnitude
		b.PeakSquared = 0

		b.Phase = 1
		if abs != 0 {
			b.Phase = x / complex(abs, 0)
		}

		b.Coherence *= moduleGate(b.Module)
	}
}

// rollOff is 0 below fc, 1 above 2*fc and a linear ramp in between.
func rollOff(f, fc float64) float64 {
	switch {
	case f < fc:
		return 0
	case f > 2*fc:
		return 1
	default:
		return (f - fc) / fc
	}
}

// moduleGate is 0 below GateLowDB, 1 from GateHighDB up and linear in
// between.
func moduleGate(module float64) float64 {
	switch {
	case module < gateLow:
		return 0
	case module < gateHigh:
		return (module - gateLow) / (gateHigh - gateLow)
	default:
		return 1
	}
}
