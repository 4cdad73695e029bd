package transform

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	// LogPointsPerOctave is the Log transform bin density.
	LogPointsPerOctave = 24

	// LogWindowCycles is the window length, in periods of the bin
	// frequency, at a denominator of 1.
	LogWindowCycles = 400.0
)

// logBin is one Log transform output: its frequency and window half-length.
type logBin struct {
	frequency float64
	half      int
}

func (t *Transform) prepareLog() {
	t.engine = nil
	t.in = nil
	t.samples = make([]float64, t.size)
	t.cursor = 0
	t.weights = make(map[int][]float64)

	start := t.sampleRate / float64(t.size)
	nyquist := t.sampleRate / 2
	cycles := LogWindowCycles / t.denominator
	maxHalf := t.maxHalf()

	t.bins = t.bins[:0]
	t.freqs = t.freqs[:0]

	for k := 0; ; k++ {
		f := start * math.Exp2(float64(k)/LogPointsPerOctave)
		if f >= nyquist {
			break
		}

		half := int(math.Round(t.sampleRate * cycles / (2 * f)))
		if half > maxHalf {
			half = maxHalf
		}

		if half < 1 {
			half = 1
		}

		t.bins = append(t.bins, logBin{frequency: f, half: half})
		t.freqs = append(t.freqs, f)
	}

	t.out = make([]complex128, len(t.bins))
}

// maxHalf is the largest window half-length that fits around the origin.
func (t *Transform) maxHalf() int {
	if t.align == AlignLeft {
		return t.size - 1
	}

	return t.size/2 - 1
}

func (t *Transform) origin() int {
	if t.align == AlignLeft {
		return 0
	}

	return t.size/2 - 1
}

// Log evaluates every Log bin over the samples written with Add and rewinds
// the input cursor.
func (t *Transform) Log() error {
	if err := t.ready(Log); err != nil {
		return err
	}

	scale := 1.0
	if t.norm == NormSqrt {
		scale = 1 / math.Sqrt(float64(t.size))
	}

	origin := t.origin()

	for k, bin := range t.bins {
		from, weights := t.window(bin.half)
		segment := t.samples[origin+from : origin+from+len(weights)]

		if cap(t.scratch) < len(weights) {
			t.scratch = make([]float64, len(weights))
		}

		windowed := t.scratch[:len(weights)]
		vecmath.MulBlock(windowed, segment, weights)

		t.out[k] = complex(scale, 0) * dftAt(windowed, from, bin.frequency/t.sampleRate)
	}

	t.cursor = 0

	return nil
}

// window returns the offset of the first weight relative to the origin and
// the cached peak-normalised Hann weights for a half-length.
func (t *Transform) window(half int) (int, []float64) {
	w, ok := t.weights[half]
	if !ok {
		if t.align == AlignLeft {
			w = make([]float64, half+1)
			for m := range w {
				w[m] = 0.5 * (1 + math.Cos(math.Pi*float64(m)/float64(half+1)))
			}
		} else {
			w = make([]float64, 2*half+1)
			for m := range w {
				w[m] = 0.5 * (1 + math.Cos(math.Pi*float64(m-half)/float64(half+1)))
			}
		}

		t.weights[half] = w
	}

	if t.align == AlignLeft {
		return 0, w
	}

	return -half, w
}

// dftAt evaluates sum x[m]*exp(-j*2*pi*f*(m+from)) at normalised frequency f
// using a rotating phasor.
func dftAt(x []float64, from int, f float64) complex128 {
	omega := 2 * math.Pi * f
	sin0, cos0 := math.Sincos(-omega * float64(from))
	sinStep, cosStep := math.Sincos(-omega)

	pRe, pIm := cos0, sin0

	var re, im float64

	for _, v := range x {
		re += v * pRe
		im += v * pIm
		pRe, pIm = pRe*cosStep-pIm*sinStep, pRe*sinStep+pIm*cosStep
	}

	return complex(re, im)
}
