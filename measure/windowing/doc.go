// Package windowing derives windowed views of a measurement source.
//
// A Windowing engine is bound to an upstream source.Source and recomputes
// its output whenever a parameter changes or the upstream reports new data.
// In the Time domain it cuts a Tukey-tapered segment out of the upstream
// impulse response, applies the configured window function and transforms
// it forward; coherence is rolled off below the window's critical frequency
// and gated on the bin level. In the Frequency domain it resamples the
// upstream spectrum onto the transform bins with band limits and a noise
// gate, then transforms back to an impulse response.
//
// The engine's parameters (mode, domain, wide, offset, band limits, window
// shape) live in a Settings value implementing Parameters. A Windowing is a
// source.Source itself, so engines can be chained:
//
//	ir, _ := source.FromImpulse("mic", samples, 48000)
//
//	w := windowing.New()
//	defer w.Close()
//
//	w.SetWindowFunctionType(window.TypeHann)
//	w.SetSource(ir)
//
//	for _, bin := range w.FrequencyBins() {
//		fmt.Println(bin.Frequency, bin.Magnitude)
//	}
//
// Recompute and rebind are serialised by one internal mutex. Update holds it
// outside the upstream lock; SetSource takes the old upstream's lock first and
// only tries the mutex, backing off on contention. Upstream DataReady is
// delivered on the engine's own notify.Loop and Destroying synchronously.
package windowing
