package source

import (
	"errors"
	"sync"

	"github.com/cwbudde/algo-windowing/measure/notify"
)

var (
	// ErrEmpty is returned when an impulse response has no samples.
	ErrEmpty = errors.New("source: impulse response is empty")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("source: sample rate must be positive")
	// ErrLengthMismatch is returned when parallel input slices differ in length.
	ErrLengthMismatch = errors.New("source: input slices differ in length")
)

// Source is a measurement that exposes a frequency response and an impulse
// response.
//
// Indexed accessors must be called between Lock and Unlock; they return zero
// values for out-of-range indices. Impulse times are in milliseconds.
type Source interface {
	Name() string

	Size() int
	Frequency(i int) float64
	Magnitude(i int) float64
	Phase(i int) complex128
	Coherence(i int) float64

	ImpulseSize() int
	ImpulseTime(i int) float64
	ImpulseValue(i int) float64

	Lock()
	Unlock()

	Subscribe(e notify.Event, exec notify.Executor, fn func()) *notify.Subscription
}

// FrequencyPoint is one bin of a frequency response.
type FrequencyPoint struct {
	Frequency float64
	Magnitude float64
	Phase     complex128
	Coherence float64
}

// ImpulsePoint is one sample of an impulse response.
type ImpulsePoint struct {
	Time  float64
	Value float64
}

// Data is an in-memory Source.
type Data struct {
	mu  sync.Mutex
	hub notify.Hub

	// name and notes are guarded by meta so they can be read while the
	// data lock is held.
	meta  sync.RWMutex
	name  string
	notes string

	frequency []FrequencyPoint
	impulse   []ImpulsePoint
}

var _ Source = (*Data)(nil)

// NewData returns an empty named source.
func NewData(name string) *Data {
	return &Data{name: name}
}

// Name returns the display name.
func (d *Data) Name() string {
	d.meta.RLock()
	defer d.meta.RUnlock()

	return d.name
}

// SetName changes the display name.
func (d *Data) SetName(name string) {
	d.meta.Lock()
	d.name = name
	d.meta.Unlock()
}

// Notes returns free-form notes attached to the source.
func (d *Data) Notes() string {
	d.meta.RLock()
	defer d.meta.RUnlock()

	return d.notes
}

// SetNotes replaces the notes.
func (d *Data) SetNotes(notes string) {
	d.meta.Lock()
	d.notes = notes
	d.meta.Unlock()
}

// SetFrequencyData replaces the frequency response and emits DataReady.
func (d *Data) SetFrequencyData(points []FrequencyPoint) {
	d.mu.Lock()
	d.frequency = append([]FrequencyPoint(nil), points...)
	d.mu.Unlock()

	d.hub.Emit(notify.DataReady)
}

// SetImpulseData replaces the impulse response and emits DataReady.
func (d *Data) SetImpulseData(points []ImpulsePoint) {
	d.mu.Lock()
	d.impulse = append([]ImpulsePoint(nil), points...)
	d.mu.Unlock()

	d.hub.Emit(notify.DataReady)
}

// SetData replaces both responses and emits DataReady once.
func (d *Data) SetData(frequency []FrequencyPoint, impulse []ImpulsePoint) {
	d.mu.Lock()
	d.frequency = append([]FrequencyPoint(nil), frequency...)
	d.impulse = append([]ImpulsePoint(nil), impulse...)
	d.mu.Unlock()

	d.hub.Emit(notify.DataReady)
}

// FrequencyPoints returns a copy of the frequency response.
func (d *Data) FrequencyPoints() []FrequencyPoint {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]FrequencyPoint(nil), d.frequency...)
}

// ImpulsePoints returns a copy of the impulse response.
func (d *Data) ImpulsePoints() []ImpulsePoint {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]ImpulsePoint(nil), d.impulse...)
}

func (d *Data) Size() int { return len(d.frequency) }

func (d *Data) Frequency(i int) float64 {
	if i < 0 || i >= len(d.frequency) {
		return 0
	}

	return d.frequency[i].Frequency
}

func (d *Data) Magnitude(i int) float64 {
	if i < 0 || i >= len(d.frequency) {
		return 0
	}

	return d.frequency[i].Magnitude
}

func (d *Data) Phase(i int) complex128 {
	if i < 0 || i >= len(d.frequency) {
		return 0
	}

	return d.frequency[i].Phase
}

func (d *Data) Coherence(i int) float64 {
	if i < 0 || i >= len(d.frequency) {
		return 0
	}

	return d.frequency[i].Coherence
}

func (d *Data) ImpulseSize() int { return len(d.impulse) }

func (d *Data) ImpulseTime(i int) float64 {
	if i < 0 || i >= len(d.impulse) {
		return 0
	}

	return d.impulse[i].Time
}

func (d *Data) ImpulseValue(i int) float64 {
	if i < 0 || i >= len(d.impulse) {
		return 0
	}

	return d.impulse[i].Value
}

// Lock acquires the data lock for indexed reads.
func (d *Data) Lock() { d.mu.Lock() }

// Unlock releases the data lock.
func (d *Data) Unlock() { d.mu.Unlock() }

// Subscribe registers fn for event e; see notify.Hub.Subscribe.
func (d *Data) Subscribe(e notify.Event, exec notify.Executor, fn func()) *notify.Subscription {
	return d.hub.Subscribe(e, exec, fn)
}

// Destroy emits Destroying synchronously and then drops every subscription.
// The data lock is not held while handlers run.
func (d *Data) Destroy() {
	d.hub.Emit(notify.Destroying)
	d.hub.Reset()
}
