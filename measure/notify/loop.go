package notify

import "sync"

// Loop is a serial Executor: posted functions run one at a time, in post
// order, on a single goroutine owned by the Loop. The queue is unbounded so
// Post never blocks the caller.
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
}

// NewLoop starts a Loop.
func NewLoop() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)

	go l.run()

	return l
}

// Post enqueues fn. It returns false once the Loop is closed.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false
	}

	l.queue = append(l.queue, fn)
	l.cond.Signal()

	return true
}

// Flush blocks until every function posted before the call has run. It must
// not be called from a function running on the Loop.
func (l *Loop) Flush() {
	ran := make(chan struct{})
	if !l.Post(func() { close(ran) }) {
		<-l.done
		return
	}

	<-ran
}

// Pending returns the number of queued functions not yet started.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.queue)
}

// Close rejects further posts, runs what is already queued and waits for the
// loop goroutine to exit. Close is idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		l.cond.Broadcast()
	}
	l.mu.Unlock()

	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}

		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}

		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}
