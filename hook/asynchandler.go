package hook

import "sync"

// asyncHandlerHook holds a vector of in-flight futures and the waker that
// wakes the render loop each time one is appended. Spawn appends a future
// and wakes the waker; PollChange polls every future, dropping the
// completed ones. A future completing wakes nothing by itself.
type asyncHandlerHook struct {
	BaseHook
	mu      sync.Mutex
	futures []Future
	waker   *Waker
}

func (h *asyncHandlerHook) PollChange(w *Waker) ChangeState {
	h.mu.Lock()
	h.waker = w
	if len(h.futures) == 0 {
		h.mu.Unlock()
		return Pending
	}
	alive := h.futures[:0]
	for _, f := range h.futures {
		if !f.Poll() {
			alive = append(alive, f)
		}
	}
	h.futures = alive
	h.mu.Unlock()
	return Pending
}

func (h *asyncHandlerHook) spawn(f Future) {
	h.mu.Lock()
	h.futures = append(h.futures, f)
	w := h.waker
	h.mu.Unlock()
	w.Wake()
}

// AsyncHandler is a callable handle that appends futures to be polled by
// its hook position, safe to call from outside the render pass (e.g. a
// goroutine posting a completion back) since it only touches the mutex-
// guarded futures slice.
type AsyncHandler struct {
	h *asyncHandlerHook
}

// Spawn appends f to the set of futures this handler polls, and wakes the
// render loop so the next pass can observe its progress.
func (a AsyncHandler) Spawn(f Future) { a.h.spawn(f) }

// Pending reports how many futures are currently in flight.
func (a AsyncHandler) Pending() int {
	a.h.mu.Lock()
	defer a.h.mu.Unlock()
	return len(a.h.futures)
}

// UseAsyncHandler returns the async-handler hook at the current position.
func UseAsyncHandler(l *List) AsyncHandler {
	h := Use(l, func() *asyncHandlerHook { return &asyncHandlerHook{} })
	return AsyncHandler{h: h}
}
