package windowing

import (
	"io"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-windowing/dsp/core"
	"github.com/cwbudde/algo-windowing/dsp/transform"
	"github.com/cwbudde/algo-windowing/dsp/window"
	"github.com/cwbudde/algo-windowing/measure/notify"
	"github.com/cwbudde/algo-windowing/measure/source"
)

// Engine-wide thresholds.
const (
	GateLowDB          = -40.0
	GateHighDB         = -30.0
	CoherenceCutoff    = 0.7
	TukeyAlpha         = 0.25
	FallbackSampleRate = 48000
)

var (
	gateLow  = core.DBToLinear(GateLowDB)
	gateHigh = core.DBToLinear(GateHighDB)
)

// FrequencyBin is one bin of the windowed frequency response.
type FrequencyBin struct {
	Frequency   float64
	Magnitude   float64
	Phase       complex128
	Coherence   float64
	Module      float64
	MeanSquared float64
	PeakSquared float64
}

// Angle returns the phase angle in radians.
func (b FrequencyBin) Angle() float64 {
	return math.Atan2(imag(b.Phase), real(b.Phase))
}

// ImpulseSample is one sample of the windowed impulse response.
type ImpulseSample struct {
	Time  float64 // ms
	Value float64
}

// Option configures a Windowing at construction.
type Option func(*Windowing)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Windowing) {
		if l != nil {
			w.log = l
		}
	}
}

// WithBackend selects the FFT backend of the fast transform.
func WithBackend(b transform.Backend) Option {
	return func(w *Windowing) {
		w.backend = b
	}
}

// WithClock sets the time source used for stored snapshot notes.
func WithClock(now func() time.Time) Option {
	return func(w *Windowing) {
		if now != nil {
			w.now = now
		}
	}
}

// WithName sets the engine's display name. The default is "Windowing".
func WithName(name string) Option {
	return func(w *Windowing) {
		w.name = name
	}
}

// WithValues sets the initial parameters.
func WithValues(v Values) Option {
	return func(w *Windowing) {
		w.Settings = NewSettings(v)
	}
}

// Windowing derives a windowed view of an upstream source: a Tukey-tapered
// segment of the impulse response transformed forward (Time domain), or the
// upstream spectrum resampled and transformed back (Frequency domain).
//
// A Windowing is itself a source.Source, so engines can be chained. Its
// indexed accessors must be called between Lock and Unlock.
type Windowing struct {
	*Settings

	log     logrus.FieldLogger
	backend transform.Backend
	now     func() time.Time
	hub     notify.Hub
	loop    *notify.Loop
	active  atomic.Bool
	closed  atomic.Bool

	meta    sync.RWMutex
	name    string
	tipName string

	// mu serialises rebind and recompute and guards everything below.
	mu       sync.Mutex
	src      source.Source
	subs     []*notify.Subscription
	force    bool
	used     Mode
	rate     int
	size     int
	window   *window.Function
	ft       *transform.Transform
	bins     []FrequencyBin
	impulse  []ImpulseSample
	deferred []func()
}

var (
	_ source.Source = (*Windowing)(nil)
	_ Parameters    = (*Windowing)(nil)
)

// New returns an unbound engine with default parameters.
func New(opts ...Option) *Windowing {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	w := &Windowing{
		Settings: NewSettings(DefaultValues()),
		log:      discard,
		now:      time.Now,
		name:     "Windowing",
		loop:     notify.NewLoop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	w.window = window.New(w.WindowFunctionType(), 0)
	w.ft = transform.New(transform.WithBackend(w.backend))
	w.active.Store(true)
	w.Settings.OnChange(w.paramChanged)
	w.applyAutoName()

	return w
}

func (w *Windowing) paramChanged(p Param) {
	switch p {
	case ParamMode:
		w.applyAutoWide()
	case ParamWindow, ParamDomain:
		w.applyAutoName()
	}

	w.hub.Emit(notify.ParamsChanged)
	w.Update()
}

// Source returns the bound upstream, or nil.
func (w *Windowing) Source() source.Source {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.src
}

// SetSource rebinds the engine to src, or unbinds it when src is nil.
//
// The old upstream's lock is taken before the internal mutex, the reverse of
// Update's order. The internal mutex is therefore only tried while the
// upstream lock is held; on contention both are released and the rebind
// retries, so a concurrent Update can always finish.
func (w *Windowing) SetSource(src source.Source) {
	for {
		w.mu.Lock()
		old := w.src
		w.mu.Unlock()

		if old == src {
			return
		}

		if old != nil {
			old.Lock()
		}

		if !w.mu.TryLock() {
			if old != nil {
				old.Unlock()
			}

			runtime.Gosched()

			continue
		}

		if w.src != old {
			w.mu.Unlock()

			if old != nil {
				old.Unlock()
			}

			continue
		}

		w.rebind(src)
		w.mu.Unlock()

		if old != nil {
			old.Unlock()
		}

		break
	}

	w.log.WithField("source", sourceName(src)).Debug("windowing: source changed")
	w.hub.Emit(notify.SourceChanged)
	w.applyAutoName()
	w.Update()
}

// rebind swaps the upstream; w.mu must be held.
func (w *Windowing) rebind(src source.Source) {
	for _, s := range w.subs {
		s.Cancel()
	}

	w.subs = w.subs[:0]
	w.src = src
	w.force = true

	if src == nil || w.closed.Load() {
		return
	}

	w.subs = append(w.subs,
		src.Subscribe(notify.Destroying, nil, func() { w.release(src) }),
		src.Subscribe(notify.DataReady, w.loop, w.Update),
	)
}

// release unbinds src if it is still the bound upstream.
func (w *Windowing) release(src source.Source) {
	w.mu.Lock()
	bound := w.src == src
	w.mu.Unlock()

	if bound {
		w.SetSource(nil)
	}
}

// Update recomputes the output arrays from the bound upstream and emits
// DataReady once. Without an upstream it returns without touching state or
// emitting.
func (w *Windowing) Update() {
	if !w.update(w.Values()) {
		return
	}

	w.mu.Lock()
	deferred := w.deferred
	w.deferred = nil
	w.mu.Unlock()

	for _, fn := range deferred {
		fn()
	}

	w.hub.Emit(notify.DataReady)
}

func (w *Windowing) update(p Values) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.src == nil {
		return false
	}

	w.src.Lock()
	defer w.src.Unlock()

	if !w.resize(p) {
		return true
	}

	w.window.SetType(p.Window)

	switch p.Domain {
	case Frequency:
		w.fromFrequency(p)
	default:
		w.fromTime(p)
	}

	return true
}

// after queues fn to run once the current update released its locks; w.mu
// must be held.
func (w *Windowing) after(fn func()) {
	w.deferred = append(w.deferred, fn)
}

// Active reports whether the engine produces meaningful output.
func (w *Windowing) Active() bool { return w.active.Load() }

// SetActive changes the active flag and emits ActiveChanged on change.
func (w *Windowing) SetActive(active bool) {
	if w.active.Swap(active) != active {
		w.hub.Emit(notify.ActiveChanged)
	}
}

// Close emits Destroying to subscribers, unbinds the upstream and stops the
// delivery loop. It must not be called from a DataReady handler.
func (w *Windowing) Close() {
	if w.closed.Swap(true) {
		return
	}

	w.hub.Emit(notify.Destroying)
	w.SetSource(nil)
	w.hub.Reset()
	w.loop.Close()
}

// Subscribe registers fn for event e; see notify.Hub.Subscribe.
func (w *Windowing) Subscribe(e notify.Event, exec notify.Executor, fn func()) *notify.Subscription {
	return w.hub.Subscribe(e, exec, fn)
}

// Name returns the display name.
func (w *Windowing) Name() string {
	w.meta.RLock()
	defer w.meta.RUnlock()

	return w.name
}

// SetName changes the display name.
func (w *Windowing) SetName(name string) {
	w.meta.Lock()
	w.name = name
	w.meta.Unlock()
}

// SampleRate returns the sample rate applied by the last resize, in Hz.
func (w *Windowing) SampleRate() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.rate
}

// DeconvolutionSize returns the working buffer length.
func (w *Windowing) DeconvolutionSize() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.size
}

// FrequencyBins returns a copy of the frequency-domain output.
func (w *Windowing) FrequencyBins() []FrequencyBin {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]FrequencyBin(nil), w.bins...)
}

// ImpulseSamples returns a copy of the time-domain output.
func (w *Windowing) ImpulseSamples() []ImpulseSample {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]ImpulseSample(nil), w.impulse...)
}

// Lock acquires the internal mutex for indexed reads by downstream consumers.
func (w *Windowing) Lock() { w.mu.Lock() }

// Unlock releases the internal mutex.
func (w *Windowing) Unlock() { w.mu.Unlock() }

func (w *Windowing) Size() int { return len(w.bins) }

func (w *Windowing) Frequency(i int) float64 {
	if i < 0 || i >= len(w.bins) {
		return 0
	}

	return w.bins[i].Frequency
}

func (w *Windowing) Magnitude(i int) float64 {
	if i < 0 || i >= len(w.bins) {
		return 0
	}

	return w.bins[i].Magnitude
}

func (w *Windowing) Phase(i int) complex128 {
	if i < 0 || i >= len(w.bins) {
		return 0
	}

	return w.bins[i].Phase
}

func (w *Windowing) Coherence(i int) float64 {
	if i < 0 || i >= len(w.bins) {
		return 0
	}

	return w.bins[i].Coherence
}

func (w *Windowing) ImpulseSize() int { return len(w.impulse) }

func (w *Windowing) ImpulseTime(i int) float64 {
	if i < 0 || i >= len(w.impulse) {
		return 0
	}

	return w.impulse[i].Time
}

func (w *Windowing) ImpulseValue(i int) float64 {
	if i < 0 || i >= len(w.impulse) {
		return 0
	}

	return w.impulse[i].Value
}

func sourceName(src source.Source) string {
	if src == nil {
		return "none"
	}

	return src.Name()
}
