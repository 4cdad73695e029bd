package windowing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cwbudde/algo-windowing/dsp/window"
)

// Mode selects the transform length and algorithm class.
type Mode int

const (
	FFT8 Mode = iota
	FFT9
	FFT10
	FFT11
	FFT12
	FFT13
	FFT14
	FFT15
	FFT16
	LTW1
	LTW2
	LTW3
)

// LogThreshold is the first mode that uses the logarithmic transform.
const LogThreshold = LTW1

// logDenominators are the log-window denominators of LTW1, LTW2 and LTW3.
var logDenominators = [...]float64{1, 10, 25}

var modeNames = [...]string{
	"FFT8", "FFT9", "FFT10", "FFT11", "FFT12", "FFT13", "FFT14", "FFT15", "FFT16",
	"LTW1", "LTW2", "LTW3",
}

// Modes returns every mode in ascending order.
func Modes() []Mode {
	out := make([]Mode, len(modeNames))
	for i := range out {
		out[i] = Mode(i)
	}

	return out
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m >= FFT8 && m <= LTW3 }

// Exponent returns log2 of the deconvolution size.
func (m Mode) Exponent() int {
	if m >= LogThreshold {
		return 16
	}

	return 8 + int(m)
}

// Size returns the deconvolution size 2^Exponent.
func (m Mode) Size() int { return 1 << m.Exponent() }

// Log reports whether m selects the logarithmic transform.
func (m Mode) Log() bool { return m >= LogThreshold }

// LogDenominator returns the log-window denominator, or 0 for FFT modes.
func (m Mode) LogDenominator() float64 {
	if !m.Log() || !m.Valid() {
		return 0
	}

	return logDenominators[m-LogThreshold]
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}

	return modeNames[m]
}

// ParseMode resolves a mode name such as "FFT12" or "ltw2".
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Mode(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Domain selects which recompute path runs.
type Domain int

const (
	// Time windows the upstream impulse response and transforms it forward.
	Time Domain = iota
	// Frequency resamples the upstream spectrum and transforms it back.
	Frequency
)

func (d Domain) String() string {
	switch d {
	case Time:
		return "Time"
	case Frequency:
		return "Frequency"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// ParseDomain resolves "time" or "frequency", ignoring case.
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time":
		return Time, nil
	case "frequency", "freq":
		return Frequency, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
}

// Param names a single windowing parameter in change notifications.
type Param int

const (
	ParamMode Param = iota
	ParamDomain
	ParamWide
	ParamOffset
	ParamMinFrequency
	ParamMaxFrequency
	ParamWindow
)

func (p Param) String() string {
	switch p {
	case ParamMode:
		return "mode"
	case ParamDomain:
		return "domain"
	case ParamWide:
		return "wide"
	case ParamOffset:
		return "offset"
	case ParamMinFrequency:
		return "minFrequency"
	case ParamMaxFrequency:
		return "maxFrequency"
	case ParamWindow:
		return "windowFunctionType"
	default:
		return fmt.Sprintf("Param(%d)", int(p))
	}
}

// Values is a snapshot of every windowing parameter.
type Values struct {
	Mode         Mode
	Domain       Domain
	Wide         float64 // ms
	Offset       float64 // ms
	MinFrequency float64 // Hz
	MaxFrequency float64 // Hz
	Window       window.Type
}

// DefaultValues returns the parameters of a new engine.
func DefaultValues() Values {
	return Values{
		Mode:         FFT10,
		Domain:       Time,
		Wide:         20,
		Offset:       0,
		MinFrequency: 20,
		MaxFrequency: 20000,
		Window:       window.TypeRectangular,
	}
}

// InBand reports whether f lies in [MinFrequency, MaxFrequency].
func (v Values) InBand(f float64) bool {
	return f >= v.MinFrequency && f <= v.MaxFrequency
}

// Parameters is the configuration capability of a windowing engine:
// accessors for every parameter and a change notification channel.
type Parameters interface {
	Mode() Mode
	SetMode(Mode)
	Domain() Domain
	SetDomain(Domain)
	Wide() float64
	SetWide(float64)
	Offset() float64
	SetOffset(float64)
	MinFrequency() float64
	SetMinFrequency(float64)
	MaxFrequency() float64
	SetMaxFrequency(float64)
	WindowFunctionType() window.Type
	SetWindowFunctionType(window.Type)

	Values() Values
	OnChange(fn func(Param))
}

// Settings is the default Parameters implementation. Change hooks run
// synchronously on the setter's goroutine after the value was stored and
// without any Settings lock held.
type Settings struct {
	mu    sync.RWMutex
	v     Values
	hooks []func(Param)
}

var _ Parameters = (*Settings)(nil)

// NewSettings returns settings initialised to v.
func NewSettings(v Values) *Settings {
	return &Settings{v: v}
}

// OnChange registers fn to run after every effective parameter change.
func (s *Settings) OnChange(fn func(Param)) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// Values returns a consistent snapshot of all parameters.
func (s *Settings) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.v
}

func (s *Settings) Mode() Mode                      { return s.Values().Mode }
func (s *Settings) Domain() Domain                  { return s.Values().Domain }
func (s *Settings) Wide() float64                   { return s.Values().Wide }
func (s *Settings) Offset() float64                 { return s.Values().Offset }
func (s *Settings) MinFrequency() float64           { return s.Values().MinFrequency }
func (s *Settings) MaxFrequency() float64           { return s.Values().MaxFrequency }
func (s *Settings) WindowFunctionType() window.Type { return s.Values().Window }

// SetMode changes the mode. Unknown modes are ignored.
func (s *Settings) SetMode(m Mode) {
	if !m.Valid() {
		return
	}

	s.set(ParamMode, func(v *Values) bool {
		if v.Mode == m {
			return false
		}

		v.Mode = m

		return true
	})
}

// SetDomain changes the recompute domain. Unknown domains are ignored.
func (s *Settings) SetDomain(d Domain) {
	if d != Time && d != Frequency {
		return
	}

	s.set(ParamDomain, func(v *Values) bool {
		if v.Domain == d {
			return false
		}

		v.Domain = d

		return true
	})
}

func (s *Settings) SetWide(ms float64) {
	s.set(ParamWide, func(v *Values) bool { return assign(&v.Wide, ms) })
}

func (s *Settings) SetOffset(ms float64) {
	s.set(ParamOffset, func(v *Values) bool { return assign(&v.Offset, ms) })
}

func (s *Settings) SetMinFrequency(hz float64) {
	s.set(ParamMinFrequency, func(v *Values) bool { return assign(&v.MinFrequency, hz) })
}

func (s *Settings) SetMaxFrequency(hz float64) {
	s.set(ParamMaxFrequency, func(v *Values) bool { return assign(&v.MaxFrequency, hz) })
}

func (s *Settings) SetWindowFunctionType(t window.Type) {
	s.set(ParamWindow, func(v *Values) bool {
		if v.Window == t {
			return false
		}

		v.Window = t

		return true
	})
}

// Apply sets every parameter of v, notifying once per changed parameter.
func (s *Settings) Apply(v Values) {
	s.SetMode(v.Mode)
	s.SetDomain(v.Domain)
	s.SetWide(v.Wide)
	s.SetOffset(v.Offset)
	s.SetMinFrequency(v.MinFrequency)
	s.SetMaxFrequency(v.MaxFrequency)
	s.SetWindowFunctionType(v.Window)
}

func (s *Settings) set(p Param, mutate func(*Values) bool) {
	s.mu.Lock()
	changed := mutate(&s.v)
	hooks := append([]func(Param){}, s.hooks...)
	s.mu.Unlock()

	if !changed {
		return
	}

	for _, fn := range hooks {
		fn(p)
	}
}

func assign(dst *float64, v float64) bool {
	if *dst == v {
		return false
	}

	*dst = v

	return true
}
