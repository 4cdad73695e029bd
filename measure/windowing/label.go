package windowing

import (
	"fmt"

	"github.com/cwbudde/algo-windowing/dsp/window"
)

// TipName returns the short description "<source> <window|Frequency>".
func (w *Windowing) TipName() string {
	w.meta.RLock()
	defer w.meta.RUnlock()

	return w.tipName
}

// applyAutoName refreshes TipName. Failures are logged at debug level and
// leave the previous label in place.
func (w *Windowing) applyAutoName() {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", r).Debug("windowing: label formatting failed")
		}
	}()

	label, err := w.label()
	if err != nil {
		w.log.WithError(err).Debug("windowing: label formatting failed")
		return
	}

	w.meta.Lock()
	w.tipName = label
	w.meta.Unlock()
}

func (w *Windowing) label() (string, error) {
	w.mu.Lock()
	src := w.src
	w.mu.Unlock()

	v := w.Values()
	if v.Domain == Frequency {
		return fmt.Sprintf("%s Frequency", sourceName(src)), nil
	}

	name, err := window.Name(v.Window)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s", sourceName(src), name), nil
}
