package windowing

import (
	"testing"

	"github.com/cwbudde/algo-windowing/dsp/window"
)

func BenchmarkUpdate(b *testing.B) {
	taps := map[int]float64{}
	for i := 0; i < 8192; i++ {
		taps[i] = 1 / float64(1+i%97)
	}

	src := impulseSource("ir", 8192, 48000, taps)

	for _, m := range []Mode{FFT10, FFT13, FFT16} {
		for _, d := range []Domain{Time, Frequency} {
			b.Run(m.String()+"/"+d.String(), func(b *testing.B) {
				v := timeValues(m, 20, window.TypeHann)
				v.Domain = d

				w := New(WithValues(v))
				defer w.Close()

				w.SetSource(src)
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					w.Update()
				}
			})
		}
	}
}
