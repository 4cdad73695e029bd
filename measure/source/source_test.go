package source

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-windowing/internal/testutil"
	"github.com/cwbudde/algo-windowing/measure/notify"
)

func TestDataAccessors(t *testing.T) {
	d := NewData("mic")
	d.SetFrequencyData([]FrequencyPoint{
		{Frequency: 100, Magnitude: 2, Phase: 1i, Coherence: 0.5},
	})
	d.SetImpulseData([]ImpulsePoint{{Time: -1, Value: 0.25}, {Time: 0, Value: 1}})

	d.Lock()
	defer d.Unlock()

	if d.Name() != "mic" {
		t.Fatalf("Name=%q", d.Name())
	}

	if d.Size() != 1 || d.Frequency(0) != 100 || d.Magnitude(0) != 2 || d.Phase(0) != 1i || d.Coherence(0) != 0.5 {
		t.Fatalf("unexpected frequency data")
	}

	if d.ImpulseSize() != 2 || d.ImpulseTime(0) != -1 || d.ImpulseValue(1) != 1 {
		t.Fatalf("unexpected impulse data")
	}

	if d.Frequency(5) != 0 || d.Magnitude(-1) != 0 || d.Phase(1) != 0 || d.Coherence(9) != 0 ||
		d.ImpulseTime(2) != 0 || d.ImpulseValue(-1) != 0 {
		t.Fatal("out-of-range accessors must return zero")
	}
}

func TestSettersEmitDataReady(t *testing.T) {
	d := NewData("x")

	var calls int
	d.Subscribe(notify.DataReady, nil, func() { calls++ })

	d.SetFrequencyData(nil)
	d.SetImpulseData(nil)
	d.SetData(nil, nil)

	if calls != 3 {
		t.Fatalf("DataReady emitted %d times, want 3", calls)
	}
}

func TestSettersCopyInput(t *testing.T) {
	d := NewData("x")
	in := []ImpulsePoint{{Value: 1}}
	d.SetImpulseData(in)
	in[0].Value = 7

	if got := d.ImpulsePoints()[0].Value; got != 1 {
		t.Fatalf("stored value %v changed with caller slice", got)
	}
}

func TestNameWhileLocked(t *testing.T) {
	d := NewData("a")
	d.Lock()
	d.SetName("b")
	name := d.Name()
	d.SetNotes("n")
	d.Unlock()

	if name != "b" || d.Notes() != "n" {
		t.Fatalf("name=%q notes=%q", name, d.Notes())
	}
}

func TestDestroy(t *testing.T) {
	d := NewData("x")

	var destroyed, ready int
	d.Subscribe(notify.Destroying, nil, func() {
		// the lock must be free while Destroying is delivered
		d.Lock()
		destroyed++
		d.Unlock()
	})
	d.Subscribe(notify.DataReady, nil, func() { ready++ })

	d.Destroy()
	d.SetImpulseData(nil)

	if destroyed != 1 {
		t.Fatalf("Destroying delivered %d times", destroyed)
	}

	if ready != 0 {
		t.Fatal("subscriptions survived Destroy")
	}
}

func TestFromImpulsePlacesPeakAtTimeZero(t *testing.T) {
	samples := []float64{0, 0.1, -0.2, 1, 0.5, 0.25, 0.1}

	d, err := FromImpulse("ir", samples, 48000)
	if err != nil {
		t.Fatalf("FromImpulse: %v", err)
	}

	d.Lock()
	defer d.Unlock()

	n := d.ImpulseSize()
	if n&(n-1) != 0 {
		t.Fatalf("impulse size %d not a power of two", n)
	}

	zero := n/2 - 1
	if d.ImpulseValue(zero) != 1 || d.ImpulseTime(zero) != 0 {
		t.Fatalf("peak at zero: value=%v time=%v", d.ImpulseValue(zero), d.ImpulseTime(zero))
	}

	if d.ImpulseValue(zero-1) != -0.2 || d.ImpulseValue(zero+3) != 0.1 {
		t.Fatal("neighbouring samples misplaced")
	}

	dt := d.ImpulseTime(zero+1) - d.ImpulseTime(zero)
	if math.Abs(dt-1000.0/48000) > 1e-12 {
		t.Fatalf("sample spacing %v ms", dt)
	}

	if d.Size() != n/2 {
		t.Fatalf("Size=%d, want %d", d.Size(), n/2)
	}
}

func TestFromImpulseUnitSpectrum(t *testing.T) {
	d, err := FromImpulse("dirac", []float64{0, 0, 1, 0, 0, 0}, 44100)
	if err != nil {
		t.Fatalf("FromImpulse: %v", err)
	}

	d.Lock()
	defer d.Unlock()

	for k := 0; k < d.Size(); k++ {
		if math.Abs(d.Magnitude(k)-1) > 1e-12 {
			t.Fatalf("bin %d magnitude %v, want 1", k, d.Magnitude(k))
		}

		if cmplx.Abs(d.Phase(k)-1) > 1e-12 {
			t.Fatalf("bin %d phase %v, want 1", k, d.Phase(k))
		}

		if d.Coherence(k) != 1 {
			t.Fatalf("bin %d coherence %v", k, d.Coherence(k))
		}
	}

	if math.Abs(d.Frequency(1)-44100/float64(2*d.Size())) > 1e-9 {
		t.Fatalf("bin spacing %v", d.Frequency(1))
	}
}

func TestFromImpulseKeepsSamples(t *testing.T) {
	ir := testutil.DecayingIR(11, 300, 20, 30)

	d, err := FromImpulse("room", ir, 48000)
	if err != nil {
		t.Fatalf("FromImpulse: %v", err)
	}

	points := d.ImpulsePoints()
	zero := len(points)/2 - 1

	got := make([]float64, len(ir))
	for i := range ir {
		got[i] = points[zero-20+i].Value
	}

	testutil.RequireSliceNearlyEqual(t, got, ir, 0)

	mags := make([]float64, 0, d.Size())
	for _, p := range d.FrequencyPoints() {
		mags = append(mags, p.Magnitude)
	}

	testutil.RequireFinite(t, mags)

	// DC bin is the plain sum of the samples.
	sum := 0.0
	for _, v := range ir {
		sum += v
	}

	if math.Abs(mags[0]-math.Abs(sum)) > 1e-9 {
		t.Fatalf("DC magnitude %v, want %v", mags[0], math.Abs(sum))
	}
}

func TestFromImpulseErrors(t *testing.T) {
	if _, err := FromImpulse("x", nil, 48000); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err=%v, want ErrEmpty", err)
	}

	if _, err := FromImpulse("x", []float64{1}, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err=%v, want ErrInvalidSampleRate", err)
	}
}

func TestFromPoints(t *testing.T) {
	d, err := FromPoints("p", []float64{10, 20}, []float64{1, 2}, []complex128{1, 1i}, nil)
	if err != nil {
		t.Fatalf("FromPoints: %v", err)
	}

	if pts := d.FrequencyPoints(); len(pts) != 2 || pts[1].Coherence != 1 || pts[1].Phase != 1i {
		t.Fatalf("points=%v", pts)
	}

	if _, err := FromPoints("p", []float64{1}, nil, nil, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v, want ErrLengthMismatch", err)
	}
}
