package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestTaps(t *testing.T) {
	s := Taps(8, map[int]float64{0: 1, 5: -0.5, 9: 3, -1: 2})
	want := []float64{1, 0, 0, 0, 0, -0.5, 0, 0}

	RequireSliceNearlyEqual(t, s, want, 0)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 64)
	b := DeterministicNoise(42, 0.5, 64)
	c := DeterministicNoise(43, 0.5, 64)

	RequireSliceNearlyEqual(t, a, b, 0)

	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}

	for i, v := range a {
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("a[%d] = %v out of range", i, v)
		}
	}
}

func TestDecayingIR(t *testing.T) {
	ir := DecayingIR(1, 256, 40, 20)
	RequireFinite(t, ir)

	for i := 0; i < 40; i++ {
		if ir[i] != 0 {
			t.Fatalf("ir[%d] = %v before peak", i, ir[i])
		}
	}

	if ir[40] != 1 {
		t.Fatalf("peak = %v, want 1", ir[40])
	}

	for i := 41; i < len(ir); i++ {
		if bound := math.Exp(-float64(i-40) / 20); math.Abs(ir[i]) >= bound {
			t.Fatalf("ir[%d] = %v exceeds envelope %v", i, ir[i], bound)
		}
	}
}

func TestDecayingIRPeakOutOfRange(t *testing.T) {
	for i, v := range DecayingIR(1, 16, 16, 4) {
		if v != 0 {
			t.Fatalf("ir[%d] = %v, want zeros", i, v)
		}
	}
}

func TestTone(t *testing.T) {
	s := Tone(2, 8)

	if cmplx.Abs(s[0]-1) > 1e-15 || cmplx.Abs(s[1]-1i) > 1e-15 || cmplx.Abs(s[2]+1) > 1e-15 {
		t.Fatalf("tone = %v", s[:3])
	}

	for i, v := range s {
		if math.Abs(cmplx.Abs(v)-1) > 1e-15 {
			t.Fatalf("|s[%d]| = %v", i, cmplx.Abs(v))
		}
	}
}
