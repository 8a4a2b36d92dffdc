package hook

import (
	"sync/atomic"
	"time"
)

// Future is a single in-flight asynchronous operation a hook can poll to
// completion. Poll returns true once the operation has finished; the
// future hook forgets the future after that.
type Future interface {
	Poll() bool
}

// futureHook stores at most one boxed future. PollChange always returns
// Pending: completing a future must not itself trigger a re-render; the
// future's own completion callback is expected to write to a State if it
// wants one.
type futureHook struct {
	BaseHook
	fut Future
}

func (h *futureHook) PollChange(*Waker) ChangeState {
	if h.fut != nil && h.fut.Poll() {
		h.fut = nil
	}
	return Pending
}

// FutureHandle lets a component arm a new future to be polled by this
// hook position.
type FutureHandle struct {
	h *futureHook
}

// Set installs f as the future this hook polls. Replacing an in-flight
// future simply drops the old one; the engine does not cancel it.
func (fh FutureHandle) Set(f Future) { fh.h.fut = f }

// Active reports whether a future is currently in flight at this position.
func (fh FutureHandle) Active() bool { return fh.h.fut != nil }

// UseFuture returns a handle to the future hook at the current position.
func UseFuture(l *List) FutureHandle {
	h := Use(l, func() *futureHook { return &futureHook{} })
	return FutureHandle{h: h}
}

// timerFuture is a Future that completes after a fixed delay, firing
// onFire exactly once. It underlies ticking-counter style components
// that increment on a fixed interval.
type timerFuture struct {
	fired  atomic.Bool
	onFire func()
	called atomic.Bool
}

// NewTimerFuture returns a Future that becomes done after d elapses,
// invoking onFire (if non-nil) exactly once at that point, on the next
// Poll call after the timer fires.
func NewTimerFuture(d time.Duration, onFire func()) Future {
	tf := &timerFuture{onFire: onFire}
	time.AfterFunc(d, func() { tf.fired.Store(true) })
	return tf
}

func (tf *timerFuture) Poll() bool {
	if !tf.fired.Load() {
		return false
	}
	if tf.onFire != nil && tf.called.CompareAndSwap(false, true) {
		tf.onFire()
	}
	return true
}

// FuncFuture adapts a plain non-blocking poll function into a Future, for
// callers that already have their own completion bookkeeping.
type FuncFuture func() bool

func (f FuncFuture) Poll() bool { return f() }
