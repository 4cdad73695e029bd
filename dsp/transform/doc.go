// Package transform is the spectral transform engine behind impulse-response
// windowing.
//
// A [Transform] is configured with a size, an algorithm ([Fast] or [Log]),
// a normalisation and an alignment, then prepared once. Fast runs a
// power-of-two FFT on either the algo-fft or the gonum backend; Log
// evaluates a logarithmically spaced set of bins, each over a Hann window
// whose length shrinks with frequency.
//
// # Usage
//
//	t := transform.New()
//	t.SetSize(1024)
//	t.SetSampleRate(48000)
//	if err := t.Prepare(); err != nil { ... }
//	t.Set(0, 1)
//	_ = t.Forward()
//	bin := t.At(1)
package transform
