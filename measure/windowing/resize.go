package windowing

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-windowing/dsp/transform"
	"github.com/cwbudde/algo-windowing/measure/source"
)

// resize reconfigures the buffers when the mode changed or a resize was
// forced. It reports false when the transform could not be prepared, in
// which case the previous buffers are kept. w.mu and the upstream lock must
// be held.
func (w *Windowing) resize(p Values) bool {
	if w.size != 0 && w.used == p.Mode && !w.force {
		return true
	}

	rate := deriveSampleRate(w.src)
	size := p.Mode.Size()

	ft := w.ft
	ft.SetSize(size)
	ft.SetSampleRate(float64(rate))
	ft.SetAlign(transform.AlignCenter)

	if p.Mode.Log() {
		ft.SetType(transform.Log)
		ft.SetNorm(transform.NormLinear)
		ft.SetLogWindowDenominator(p.Mode.LogDenominator())
	} else {
		ft.SetType(transform.Fast)
		ft.SetNorm(transform.NormSqrt)
	}

	fields := logrus.Fields{"mode": p.Mode.String(), "size": size, "sampleRate": rate}

	if err := ft.Prepare(); err != nil {
		w.log.WithFields(fields).WithError(err).Error("windowing: transform preparation failed")
		return false
	}

	freqs := ft.Frequencies()
	bins := make([]FrequencyBin, len(freqs))

	for i, f := range freqs {
		bins[i] = FrequencyBin{Frequency: f, Coherence: 1}
	}

	impulse := make([]ImpulseSample, size)
	timeAxis(size, rate, func(_, j int, ms float64) {
		impulse[j].Time = ms
	})

	w.window.SetSize(size)
	w.rate = rate
	w.size = size
	w.used = p.Mode
	w.force = false
	w.bins, w.impulse = bins, impulse

	w.log.WithFields(fields).WithField("bins", len(bins)).Debug("windowing: resized")

	return true
}

// deriveSampleRate rounds the upstream's impulse sample spacing to the nearest
// 100 Hz, falling back to FallbackSampleRate when that degenerates.
func deriveSampleRate(src source.Source) int {
	if src.ImpulseSize() < 2 {
		return FallbackSampleRate
	}

	r := math.Round(10/(src.ImpulseTime(1)-src.ImpulseTime(0))) * 100
	if !(r > 0) || r > math.MaxInt32 {
		return FallbackSampleRate
	}

	return int(r)
}

// timeAxis visits every transform slot i of an n-sample buffer with its
// circular position j and time in ms. Slot 0 is time zero at j = n/2-1; slots
// up to n/2 count forward, the rest wrap to negative times.
func timeAxis(n, rate int, fn func(i, j int, ms float64)) {
	kt := 1000 / float64(rate)

	for i := 0; i < n; i++ {
		t := i
		if t > n/2 {
			t -= n
		}

		fn(i, (n/2-1+i)%n, float64(t)*kt)
	}
}
