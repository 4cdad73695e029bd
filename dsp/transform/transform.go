package transform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type selects the transform algorithm.
type Type int

const (
	// Fast is a linear-frequency power-of-two FFT.
	Fast Type = iota
	// Log evaluates logarithmically spaced bins with frequency-dependent windows.
	Log
)

func (t Type) String() string {
	switch t {
	case Fast:
		return "fast"
	case Log:
		return "log"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Norm selects output scaling.
//
// For Fast, NormSqrt scales both directions by 1/sqrt(N) and NormLinear
// scales the forward direction by 1/N and leaves the inverse unscaled.
// For Log, whose windows are peak-normalised, NormSqrt scales by 1/sqrt(N)
// and NormLinear leaves the bins unscaled.
type Norm int

const (
	NormSqrt Norm = iota
	NormLinear
)

// Align selects the time origin used by the Log transform: the sample at
// N/2-1 for AlignCenter, sample 0 for AlignLeft.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
)

// Option configures a Transform at construction.
type Option func(*Transform)

// WithBackend selects the FFT backend for the Fast transform.
func WithBackend(b Backend) Option {
	return func(t *Transform) {
		t.backend = b
	}
}

// Transform is a configurable forward/inverse spectral transform.
//
// Configuration setters invalidate the prepared state; Prepare must run
// before samples are written or a transform is executed. A Transform is not
// safe for concurrent use.
type Transform struct {
	backend     Backend
	size        int
	typ         Type
	norm        Norm
	align       Align
	sampleRate  float64
	denominator float64

	prepared bool
	engine   fftEngine
	in       []complex128
	out      []complex128
	freqs    []float64

	// log transform state
	samples []float64
	cursor  int
	bins    []logBin
	weights map[int][]float64
	scratch []float64
}

// New returns an unprepared Fast transform with square-root normalisation
// and centre alignment.
func New(opts ...Option) *Transform {
	t := &Transform{
		denominator: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t
}

// SetSize sets the transform length in samples.
func (t *Transform) SetSize(n int) {
	if n != t.size {
		t.size = n
		t.prepared = false
	}
}

// SetType selects the algorithm.
func (t *Transform) SetType(typ Type) {
	if typ != t.typ {
		t.typ = typ
		t.prepared = false
	}
}

// SetNorm selects the output scaling.
func (t *Transform) SetNorm(n Norm) {
	if n != t.norm {
		t.norm = n
		t.prepared = false
	}
}

// SetAlign selects the Log time origin.
func (t *Transform) SetAlign(a Align) {
	if a != t.align {
		t.align = a
		t.prepared = false
	}
}

// SetSampleRate sets the sample rate in Hz used for bin frequencies.
func (t *Transform) SetSampleRate(rate float64) {
	if rate != t.sampleRate {
		t.sampleRate = rate
		t.prepared = false
	}
}

// SetLogWindowDenominator sets the Log window shrink factor. Larger values
// give shorter windows and therefore finer time resolution.
func (t *Transform) SetLogWindowDenominator(d float64) {
	if d != t.denominator {
		t.denominator = d
		t.prepared = false
	}
}

// Size returns the configured transform length.
func (t *Transform) Size() int { return t.size }

// Type returns the configured algorithm.
func (t *Transform) Type() Type { return t.typ }

// Norm returns the configured scaling.
func (t *Transform) Norm() Norm { return t.norm }

// Align returns the configured alignment.
func (t *Transform) Align() Align { return t.align }

// SampleRate returns the configured sample rate.
func (t *Transform) SampleRate() float64 { return t.sampleRate }

// LogWindowDenominator returns the configured Log window shrink factor.
func (t *Transform) LogWindowDenominator() float64 { return t.denominator }

// Prepared reports whether the configuration has been applied.
func (t *Transform) Prepared() bool { return t.prepared }

// Prepare validates the configuration and allocates buffers, plans and the
// frequency enumeration.
func (t *Transform) Prepare() error {
	if t.size < 2 || t.size&(t.size-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, t.size)
	}

	if !(t.sampleRate > 0) || math.IsInf(t.sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, t.sampleRate)
	}

	t.prepared = false

	switch t.typ {
	case Log:
		if !(t.denominator > 0) {
			return fmt.Errorf("%w: %v", ErrInvalidDenominator, t.denominator)
		}

		t.prepareLog()
	default:
		engine, err := newEngine(t.backend, t.size)
		if err != nil {
			return err
		}

		t.engine = engine
		t.in = make([]complex128, t.size)
		t.out = make([]complex128, t.size)
		t.freqs = make([]float64, t.size/2)

		df := t.sampleRate / float64(t.size)
		for k := range t.freqs {
			t.freqs[k] = float64(k) * df
		}
	}

	t.prepared = true

	return nil
}

// Frequencies returns a copy of the bin frequencies in Hz, ascending.
func (t *Transform) Frequencies() []float64 {
	return append([]float64(nil), t.freqs...)
}

// Bins returns the number of frequency bins.
func (t *Transform) Bins() int { return len(t.freqs) }

// Set writes value v at input slot i of the Fast transform. Out-of-range
// slots are ignored.
func (t *Transform) Set(i int, v complex128) {
	if i < 0 || i >= len(t.in) {
		return
	}

	t.in[i] = v
}

// Add appends a real sample to the Log transform's circular input buffer.
func (t *Transform) Add(v float64) {
	if len(t.samples) == 0 {
		return
	}

	t.samples[t.cursor] = v

	t.cursor++
	if t.cursor == len(t.samples) {
		t.cursor = 0
	}
}

// Forward runs the Fast forward transform over the input slots.
func (t *Transform) Forward() error {
	if err := t.ready(Fast); err != nil {
		return err
	}

	if err := t.engine.forward(t.out, t.in); err != nil {
		return fmt.Errorf("transform: forward FFT failed: %w", err)
	}

	scale := 1 / math.Sqrt(float64(t.size))
	if t.norm == NormLinear {
		scale = 1 / float64(t.size)
	}

	t.scaleOut(scale)

	return nil
}

// Inverse runs the Fast inverse transform over the input slots.
func (t *Transform) Inverse() error {
	if err := t.ready(Fast); err != nil {
		return err
	}

	if err := t.engine.inverse(t.out, t.in); err != nil {
		return fmt.Errorf("transform: inverse FFT failed: %w", err)
	}

	if t.norm == NormSqrt {
		t.scaleOut(1 / math.Sqrt(float64(t.size)))
	}

	return nil
}

// At returns output i of the last executed transform, or 0 when out of range.
func (t *Transform) At(i int) complex128 {
	if i < 0 || i >= len(t.out) {
		return 0
	}

	return t.out[i]
}

// Magnitudes writes |At(i)| for i < len(dst) and returns the count written.
func (t *Transform) Magnitudes(dst []float64) int {
	n := len(dst)
	if n > len(t.out) {
		n = len(t.out)
	}

	if n == 0 {
		return 0
	}

	re := make([]float64, n)
	im := make([]float64, n)

	for i := range n {
		re[i] = real(t.out[i])
		im[i] = imag(t.out[i])
	}

	vecmath.Magnitude(dst[:n], re, im)

	return n
}

// Reset clears input slots, the Log cursor and outputs.
func (t *Transform) Reset() {
	clear(t.in)
	clear(t.out)
	clear(t.samples)
	t.cursor = 0
}

func (t *Transform) ready(typ Type) error {
	if !t.prepared {
		return ErrNotPrepared
	}

	if t.typ != typ {
		return fmt.Errorf("%w: %s", ErrWrongType, t.typ)
	}

	return nil
}

func (t *Transform) scaleOut(scale float64) {
	s := complex(scale, 0)
	for i := range t.out {
		t.out[i] *= s
	}
}
