package term

import "sync"

// Waker is anything that can be notified a new change is available. The
// hook runtime implements it; term only needs the interface to avoid an
// import cycle back into weave/hook.
type Waker interface {
	Wake()
}

// Queue is one subscriber's view of the event stream: a weak-referenced
// (by the Bus's own bookkeeping, not by the language) FIFO that the driver
// appends to and the owning terminal-events hook drains on its own poll.
type Queue struct {
	mu     sync.Mutex
	events []Event
	waker  Waker
	closed bool
}

// SetWaker installs the waker the queue notifies on new events. Safe to
// call every poll; installing the same waker repeatedly is a no-op in
// effect.
func (q *Queue) SetWaker(w Waker) {
	q.mu.Lock()
	q.waker = w
	q.mu.Unlock()
}

// Drain returns and clears all events queued since the last Drain, in
// source order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// push appends one event and wakes the subscriber. Called by the Bus only.
func (q *Queue) push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.events = append(q.events, e)
	if q.waker != nil {
		q.waker.Wake()
	}
}

// Close marks the queue dead; the Bus prunes it opportunistically on the
// next broadcast.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

func (q *Queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Source is what a terminal-events hook subscribes to. The driver and the
// mock driver both implement it.
type Source interface {
	Subscribe() *Queue
}

// Bus is a single event stream fanned out to many weak subscribers.
// Ordering is preserved per-subscriber (each Queue receives pushes in the
// order Broadcast was called); ordering across subscribers is
// unspecified.
type Bus struct {
	mu   sync.Mutex
	subs []*Queue
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Subscribe() *Queue {
	q := &Queue{}
	b.mu.Lock()
	b.subs = append(b.subs, q)
	b.mu.Unlock()
	return q
}

// Broadcast appends e to every live subscriber and prunes dead ones.
func (b *Bus) Broadcast(e Event) {
	b.mu.Lock()
	live := b.subs[:0]
	for _, q := range b.subs {
		if q.isClosed() {
			continue
		}
		live = append(live, q)
	}
	b.subs = live
	subs := append([]*Queue(nil), b.subs...)
	b.mu.Unlock()

	for _, q := range subs {
		q.push(e)
	}
}
