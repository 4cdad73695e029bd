package notify

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Event identifies a notification kind.
type Event int

const (
	// DataReady is emitted after a source finished (re)computing its data.
	DataReady Event = iota
	// Destroying is emitted once, synchronously, before a source goes away.
	Destroying
	// SourceChanged is emitted after a consumer was rebound to a new upstream.
	SourceChanged
	// ParamsChanged is emitted after a parameter value changed.
	ParamsChanged
	// ActiveChanged is emitted after a source's active flag flipped.
	ActiveChanged
)

func (e Event) String() string {
	switch e {
	case DataReady:
		return "data-ready"
	case Destroying:
		return "destroying"
	case SourceChanged:
		return "source-changed"
	case ParamsChanged:
		return "params-changed"
	case ActiveChanged:
		return "active-changed"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Executor runs posted functions in its own context. Post reports false when
// the function was rejected, for example because the executor is closed.
type Executor interface {
	Post(fn func()) bool
}

type subscriber struct {
	id     uint64
	exec   Executor
	fn     func()
	active atomic.Bool
}

func (s *subscriber) deliver() {
	if s.exec == nil {
		s.fn()
		return
	}

	s.exec.Post(func() {
		if s.active.Load() {
			s.fn()
		}
	})
}

// Hub fans events out to subscribers. The zero value is ready to use.
type Hub struct {
	mu   sync.Mutex
	next uint64
	subs map[Event][]*subscriber
}

// Subscribe registers fn for event e.
//
// With a nil exec, fn runs synchronously on the emitting goroutine before
// Emit returns (direct delivery). Otherwise every emission posts fn to exec
// (queued delivery) and Emit does not wait for it.
func (h *Hub) Subscribe(e Event, exec Executor, fn func()) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs == nil {
		h.subs = make(map[Event][]*subscriber)
	}

	h.next++
	s := &subscriber{id: h.next, exec: exec, fn: fn}
	s.active.Store(true)
	h.subs[e] = append(h.subs[e], s)

	return &Subscription{hub: h, event: e, sub: s}
}

// Emit delivers e to every current subscriber in subscription order. Handlers
// are called without the hub lock held, so they may subscribe or cancel.
func (h *Hub) Emit(e Event) {
	h.mu.Lock()
	subs := append([]*subscriber(nil), h.subs[e]...)
	h.mu.Unlock()

	for _, s := range subs {
		if s.active.Load() {
			s.deliver()
		}
	}
}

// Count returns the number of live subscriptions for e.
func (h *Hub) Count(e Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs[e])
}

// Reset cancels every subscription.
func (h *Hub) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, subs := range h.subs {
		for _, s := range subs {
			s.active.Store(false)
		}
	}

	h.subs = nil
}

func (h *Hub) remove(e Event, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[e]
	for i, cur := range subs {
		if cur == s {
			h.subs[e] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Subscription is a handle returned by Hub.Subscribe.
type Subscription struct {
	hub   *Hub
	event Event
	sub   *subscriber
}

// Cancel detaches the handler. Queued deliveries that have not started yet
// are dropped. Cancel is idempotent and safe on a nil Subscription.
func (s *Subscription) Cancel() {
	if s == nil || s.sub == nil {
		return
	}

	if s.sub.active.Swap(false) {
		s.hub.remove(s.event, s.sub)
	}
}

// Event returns the subscribed event kind.
func (s *Subscription) Event() Event { return s.event }
