package window

// TukeySpan is a Tukey envelope positioned on an absolute sample axis.
//
// The span covers [From, From+Width). Within Alpha*Width/2 samples of either
// edge the envelope follows a raised cosine measured from the nearest edge;
// in between it is flat at 1. Outside the span it is exactly 0.
type TukeySpan struct {
	From  float64
	Width float64
	Alpha float64
}

// CenteredTukey returns a span of width samples centred on center.
func CenteredTukey(center, width, alpha float64) TukeySpan {
	return TukeySpan{From: center - width/2, Width: width, Alpha: alpha}
}

// End returns the first sample position past the span.
func (s TukeySpan) End() float64 { return s.From + s.Width }

// Border returns the taper length in samples.
func (s TukeySpan) Border() float64 { return s.Alpha * s.Width / 2 }

// Contains reports whether sample position i lies in the span.
func (s TukeySpan) Contains(i float64) bool {
	return i >= s.From && i < s.End()
}

// At returns the envelope value at sample position i. The span is mapped
// onto the unit interval and shaped by the same taper as the window shapes.
func (s TukeySpan) At(i float64) float64 {
	if !s.Contains(i) {
		return 0
	}

	return tukeyAt((i-s.From)/s.Width, s.Alpha)
}
