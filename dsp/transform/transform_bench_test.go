package transform

import (
	"strconv"
	"testing"
)

func BenchmarkForward(b *testing.B) {
	for _, backend := range []Backend{BackendAlgoFFT, BackendGonum} {
		for _, n := range []int{1024, 16384, 65536} {
			b.Run(backend.String()+"/"+strconv.Itoa(n), func(b *testing.B) {
				tr := New(WithBackend(backend))
				tr.SetSize(n)
				tr.SetSampleRate(48000)

				if err := tr.Prepare(); err != nil {
					b.Fatal(err)
				}

				tr.Set(0, 1)
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_ = tr.Forward()
				}
			})
		}
	}
}

func BenchmarkLog(b *testing.B) {
	for _, denom := range []float64{1, 10, 25} {
		b.Run("denominator/"+strconv.FormatFloat(denom, 'f', -1, 64), func(b *testing.B) {
			tr := New()
			tr.SetType(Log)
			tr.SetSize(65536)
			tr.SetSampleRate(48000)
			tr.SetLogWindowDenominator(denom)

			if err := tr.Prepare(); err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				for n := 0; n < 65536; n++ {
					tr.Add(0)
				}

				_ = tr.Log()
			}
		})
	}
}
