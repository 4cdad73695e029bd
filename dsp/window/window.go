package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Type identifies a window shape.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackmanHarris
	TypeFlatTop
	TypeHFT90D
	TypeHFT144D
	TypeHFT248D
	TypeCosine
	TypeTriangle
)

var typeNames = map[Type]string{
	TypeRectangular:    "Rectangular",
	TypeHann:           "Hann",
	TypeHamming:        "Hamming",
	TypeBlackmanHarris: "Blackman-Harris",
	TypeFlatTop:        "Flat-Top",
	TypeHFT90D:         "HFT90D",
	TypeHFT144D:        "HFT144D",
	TypeHFT248D:        "HFT248D",
	TypeCosine:         "Cosine",
	TypeTriangle:       "Triangle",
}

// Cosine-sum coefficients, w(x) = sum c[k]*cos(2*pi*k*x) for x in [0, 1].
var (
	hannCoeffs           = []float64{0.5, -0.5}
	hammingCoeffs        = []float64{0.54, -0.46}
	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	flatTopCoeffs        = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}

	// Heinzel flat-top family, scaled to unit peak.
	hft90DCoeffs  = unitPeak([]float64{1, -1.942604, 1.340318, -0.440811, 0.043097})
	hft144DCoeffs = unitPeak([]float64{
		1, -1.96760033, 1.57983607, -0.81123644, 0.22583558, -0.02773848, 0.00090360,
	})
	hft248DCoeffs = unitPeak([]float64{
		1, -1.985844164102, 1.791176438506, -1.282075284005, 0.667777530266,
		-0.240160796576, 0.056656381764, -0.008134974479, 0.000624544650,
		-0.000019808998, 0.000000132974,
	})
)

// Types returns every supported window shape in declaration order.
func Types() []Type {
	return []Type{
		TypeRectangular, TypeHann, TypeHamming, TypeBlackmanHarris, TypeFlatTop,
		TypeHFT90D, TypeHFT144D, TypeHFT248D, TypeCosine, TypeTriangle,
	}
}

// Name returns the display name of t or ErrUnknownType.
func Name(t Type) (string, error) {
	name, ok := typeNames[t]
	if !ok {
		return "", unknownType(t)
	}

	return name, nil
}

func (t Type) String() string {
	if name, err := Name(t); err == nil {
		return name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a window name. Matching ignores case, spaces,
// hyphens and underscores, so "blackman_harris" selects TypeBlackmanHarris.
func ParseType(s string) (Type, error) {
	key := canonicalName(s)
	for t, name := range typeNames {
		if canonicalName(name) == key {
			return t, nil
		}
	}

	return TypeRectangular, unknownName(s)
}

// Generate returns symmetric window coefficients of the given length.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length))
	}

	return out
}

// Function is a sized window of one shape with its amplitude and noise
// normalisation factors. The zero value is an empty rectangular window.
type Function struct {
	typ    Type
	coeffs []float64
	gain   float64
	norm   float64
}

// New returns a window function of type t and the given size.
func New(t Type, size int) *Function {
	f := &Function{typ: t}
	f.generate(size)

	return f
}

// SetType switches the window shape, regenerating coefficients on change.
func (f *Function) SetType(t Type) {
	if t == f.typ && f.coeffs != nil {
		return
	}

	f.typ = t
	f.generate(len(f.coeffs))
}

// SetSize resizes the window, regenerating coefficients on change.
func (f *Function) SetSize(size int) {
	if size == len(f.coeffs) {
		return
	}

	f.generate(size)
}

// Type returns the window shape.
func (f *Function) Type() Type { return f.typ }

// Size returns the number of coefficients.
func (f *Function) Size() int { return len(f.coeffs) }

// At returns coefficient i, or 0 when i is out of range.
func (f *Function) At(i int) float64 {
	if i < 0 || i >= len(f.coeffs) {
		return 0
	}

	return f.coeffs[i]
}

// Gain is the amplitude correction N / sum(w).
func (f *Function) Gain() float64 { return f.gain }

// Norm is the noise correction sqrt(N / sum(w^2)).
func (f *Function) Norm() float64 { return f.norm }

// ENBW returns the equivalent noise bandwidth in bins.
func (f *Function) ENBW() float64 {
	if f.norm == 0 {
		return 0
	}

	return f.gain * f.gain / (f.norm * f.norm)
}

// Coefficients returns a copy of the window coefficients.
func (f *Function) Coefficients() []float64 {
	return append([]float64(nil), f.coeffs...)
}

// Apply multiplies buf in place by the window.
func (f *Function) Apply(buf []float64) error {
	if len(buf) != len(f.coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(buf, f.coeffs)

	return nil
}

func (f *Function) generate(size int) {
	f.coeffs = Generate(f.typ, size)
	f.gain, f.norm = 0, 0

	if len(f.coeffs) == 0 {
		return
	}

	n := float64(len(f.coeffs))

	if sum := floats.Sum(f.coeffs); sum != 0 {
		f.gain = n / sum
	}

	if sumSq := floats.Dot(f.coeffs, f.coeffs); sumSq > 0 {
		f.norm = math.Sqrt(n / sumSq)
	}
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackmanHarris:
		return cosineFromCoeffs(x, blackmanHarrisCoeffs)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	case TypeHFT90D:
		return cosineFromCoeffs(x, hft90DCoeffs)
	case TypeHFT144D:
		return cosineFromCoeffs(x, hft144DCoeffs)
	case TypeHFT248D:
		return cosineFromCoeffs(x, hft248DCoeffs)
	case TypeCosine:
		return math.Sin(math.Pi * x)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

// samplePosition maps index n to [0, 1] using the symmetric (N-1) form.
func samplePosition(n, size int) float64 {
	if size <= 1 {
		return 0.5
	}

	return float64(n) / float64(size-1)
}

// unitPeak rescales alternating cosine coefficients so w(0.5) == 1.
func unitPeak(coeffs []float64) []float64 {
	peak := 0.0
	for _, c := range coeffs {
		peak += math.Abs(c)
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = c / peak
	}

	return out
}

func canonicalName(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// tukeyAt evaluates a Tukey taper at normalised position x in [0, 1]. The
// first and last alpha/2 of the range follow a raised cosine.
func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	a := alpha / 2

	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}
