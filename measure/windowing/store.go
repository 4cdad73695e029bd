package windowing

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cwbudde/algo-windowing/dsp/window"
	"github.com/cwbudde/algo-windowing/measure/source"
)

var notesPrinter = message.NewPrinter(language.English)

// Store returns a frozen snapshot of the current output, named after the
// engine, with notes describing how it was derived.
func (w *Windowing) Store() *source.Data {
	v := w.Values()

	w.mu.Lock()
	src := w.src
	rate := w.rate

	freq := make([]source.FrequencyPoint, len(w.bins))
	for i, b := range w.bins {
		freq[i] = source.FrequencyPoint{
			Frequency: b.Frequency,
			Magnitude: b.Magnitude,
			Phase:     b.Phase,
			Coherence: b.Coherence,
		}
	}

	impulse := make([]source.ImpulsePoint, len(w.impulse))
	for i, s := range w.impulse {
		impulse[i] = source.ImpulsePoint{Time: s.Time, Value: s.Value}
	}
	w.mu.Unlock()

	stored := source.NewData(w.Name())
	stored.SetData(freq, impulse)
	stored.SetNotes(w.notes(v, src, rate))

	return stored
}

func (w *Windowing) notes(v Values, src source.Source, rate int) string {
	var b strings.Builder

	from := ""
	if src != nil {
		from = src.Name()
	}

	notesPrinter.Fprintf(&b, "Windowing on %s\n", from)

	switch v.Domain {
	case Frequency:
		notesPrinter.Fprintf(&b, "Domain: Frequency\n")
		notesPrinter.Fprintf(&b, "from:%.1fHz\t", v.MinFrequency)
		notesPrinter.Fprintf(&b, "to:%.1fHz\n", v.MaxFrequency)
	default:
		name, err := window.Name(v.Window)
		if err != nil {
			name = v.Window.String()
		}

		notesPrinter.Fprintf(&b, "Domain: Time\n")
		notesPrinter.Fprintf(&b, "Wide:%.2fms\t", v.Wide)
		notesPrinter.Fprintf(&b, "Offset:%.2fms\n", v.Offset)
		notesPrinter.Fprintf(&b, "Window: %s\t", name)
	}

	notesPrinter.Fprintf(&b, "Sample rate: %.1fkHz\t", float64(rate)/1000)
	notesPrinter.Fprintf(&b, "Transform: %s\n", v.Mode)
	notesPrinter.Fprintf(&b, "Date: %s", w.now().Format(time.RFC1123))

	return b.String()
}

// Clone returns a new engine with the same parameters and options, bound to
// the same upstream.
func (w *Windowing) Clone() *Windowing {
	c := New(
		WithLogger(w.log),
		WithBackend(w.backend),
		WithClock(w.now),
		WithName(w.Name()),
		WithValues(w.Values()),
	)

	c.SetSource(w.Source())

	return c
}

// applyAutoWide sets wide to a tenth of the current mode's buffer duration
// when an upstream is bound.
func (w *Windowing) applyAutoWide() {
	w.mu.Lock()
	src := w.src
	rate := w.rate
	w.mu.Unlock()

	if src == nil {
		return
	}

	if rate == 0 {
		src.Lock()
		rate = deriveSampleRate(src)
		src.Unlock()
	}

	w.SetWide(1000 * float64(w.Mode().Size()) / float64(rate) / 10)
}
