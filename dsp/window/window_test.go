package window

import (
	"errors"
	"math"
	"testing"

	gonumwindow "gonum.org/v1/gonum/dsp/window"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}

			// symmetric form
			for i := range w {
				if !almostEqual(w[i], w[len(w)-1-i], 1e-12) {
					t.Fatalf("coefficient[%d]=%v differs from mirror %v", i, w[i], w[len(w)-1-i])
				}
			}
		})
	}
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hammingExpected := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}
	bhExpected := []float64{
		0.00006, 0.03339172347815117, 0.332833504298565,
		0.8893697722232837, 0.8893697722232838, 0.3328335042985652,
		0.0333917234781512, 0.00006,
	}
	flatTopExpected := []float64{
		-0.0004210510000000013, -0.03684077608132298, 0.01070371671636002,
		0.7808739149387524, 0.7808739149387525, 0.010703716716360296,
		-0.03684077608132292, -0.0004210510000000013,
	}

	checkGolden(t, Generate(TypeHann, 8), hannExpected, 1e-10)
	checkGolden(t, Generate(TypeHamming, 8), hammingExpected, 1e-10)
	checkGolden(t, Generate(TypeBlackmanHarris, 8), bhExpected, 1e-10)
	checkGolden(t, Generate(TypeFlatTop, 8), flatTopExpected, 1e-8)
}

func TestMatchesGonum(t *testing.T) {
	const n = 257

	ones := func() []float64 {
		seq := make([]float64, n)
		for i := range seq {
			seq[i] = 1
		}
		return seq
	}

	checkGolden(t, Generate(TypeHann, n), gonumwindow.Hann(ones()), 1e-12)
	checkGolden(t, Generate(TypeHamming, n), gonumwindow.Hamming(ones()), 1e-12)
	checkGolden(t, Generate(TypeBlackmanHarris, n), gonumwindow.BlackmanHarris(ones()), 1e-12)
}

func TestFlatTopFamilyUnitPeak(t *testing.T) {
	for _, typ := range []Type{TypeHFT90D, TypeHFT144D, TypeHFT248D} {
		w := Generate(typ, 33)
		if !almostEqual(w[16], 1, 1e-12) {
			t.Fatalf("%v peak=%v, want 1", typ, w[16])
		}
	}
}

func TestFunctionGainNorm(t *testing.T) {
	rect := New(TypeRectangular, 1024)
	if rect.Gain() != 1 || rect.Norm() != 1 {
		t.Fatalf("rectangular gain=%v norm=%v, want 1 1", rect.Gain(), rect.Norm())
	}

	if !almostEqual(rect.ENBW(), 1, 1e-12) {
		t.Fatalf("rectangular ENBW=%v, want 1", rect.ENBW())
	}

	hann := New(TypeHann, 2048)
	if !almostEqual(hann.Gain(), 2, 0.01) {
		t.Fatalf("hann gain=%v, want ~2", hann.Gain())
	}

	if !almostEqual(hann.ENBW(), 1.5, 0.01) {
		t.Fatalf("hann ENBW=%v, want ~1.5", hann.ENBW())
	}
}

func TestFunctionSetTypeAndSize(t *testing.T) {
	f := New(TypeRectangular, 16)
	if f.At(0) != 1 {
		t.Fatalf("rectangular At(0)=%v", f.At(0))
	}

	f.SetType(TypeHann)
	if f.Type() != TypeHann || f.At(0) != 0 {
		t.Fatalf("after SetType: type=%v At(0)=%v", f.Type(), f.At(0))
	}

	f.SetSize(32)
	if f.Size() != 32 {
		t.Fatalf("size=%d, want 32", f.Size())
	}

	if f.At(-1) != 0 || f.At(32) != 0 {
		t.Fatal("out-of-range coefficients must be 0")
	}

	coeffs := f.Coefficients()
	coeffs[5] = 42

	if f.At(5) == 42 {
		t.Fatal("Coefficients must return a copy")
	}
}

func TestZeroValueFunction(t *testing.T) {
	var f Function
	if f.Size() != 0 || f.Gain() != 0 || f.ENBW() != 0 {
		t.Fatalf("zero value: size=%d gain=%v", f.Size(), f.Gain())
	}

	f.SetSize(4)
	if f.At(2) != 1 {
		t.Fatalf("zero value resized should be rectangular, At(2)=%v", f.At(2))
	}
}

func TestFunctionApply(t *testing.T) {
	f := New(TypeHann, 8)
	buf := []float64{1, 1, 1, 1, 1, 1, 1, 1}

	if err := f.Apply(buf); err != nil {
		t.Fatal(err)
	}

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}

	if err := f.Apply(buf[:3]); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestParseTypeAndName(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"hann", TypeHann},
		{"Blackman-Harris", TypeBlackmanHarris},
		{"blackman_harris", TypeBlackmanHarris},
		{" flat top ", TypeFlatTop},
		{"HFT248D", TypeHFT248D},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", tt.in, err)
		}

		if got != tt.want {
			t.Fatalf("ParseType(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseType("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("ParseType(kaiser) err=%v, want ErrUnknownType", err)
	}

	if _, err := Name(Type(99)); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Name(99) err=%v, want ErrUnknownType", err)
	}

	if got := Type(99).String(); got != "Type(99)" {
		t.Fatalf("String()=%q", got)
	}
}

func TestGenerateEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	if got := Generate(TypeHann, 1); len(got) != 1 || got[0] != 1 {
		t.Fatalf("single-sample hann = %v, want [1]", got)
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
