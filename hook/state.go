package hook

import "sync"

// cell is the storage a State[T] handle points at. Handles outlive the
// cell only by generation: each handle stores the generation it was
// issued at, and every operation checks it against cell.generation before
// touching value, so a handle captured by an escaped closure from a
// dropped component becomes inert instead of dangling.
//
// The mutex makes cloned handles safe to use from async tasks that post
// back to the render thread; the model stays mostly single-threaded, the
// lock only covers the handful of fields a cross-thread Set touches.
type cell[T any] struct {
	mu         sync.Mutex
	value      T
	changed    bool
	waker      *Waker
	generation uint64
	alive      bool
}

type stateHook[T any] struct {
	BaseHook
	c *cell[T]
}

func (h *stateHook[T]) PollChange(w *Waker) ChangeState {
	h.c.mu.Lock()
	defer h.c.mu.Unlock()
	h.c.waker = w
	if h.c.changed {
		h.c.changed = false
		return Ready
	}
	return Pending
}

// Dispose is called when the owning component instance is dropped.
// Bumping the generation makes every outstanding handle stale.
func (h *stateHook[T]) Dispose() {
	h.c.mu.Lock()
	h.c.alive = false
	h.c.generation++
	h.c.mu.Unlock()
}

// State is a clonable, copyable handle to one hook's reactive cell. Set
// marks the cell changed and wakes the render loop; Get/TryGet read the
// current value.
type State[T any] struct {
	c   *cell[T]
	gen uint64
}

// Get returns the current value. Panics if the owning component has been
// dropped since this handle was issued.
func (s State[T]) Get() T {
	v, ok := s.TryGet()
	if !ok {
		panic("weave: state read after its owning component was dropped")
	}
	return v
}

// TryGet returns the current value and true, or the zero value and false
// if the owning component has since been dropped.
func (s State[T]) TryGet() (T, bool) {
	var zero T
	if s.c == nil {
		return zero, false
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.alive || s.gen != s.c.generation {
		return zero, false
	}
	return s.c.value, true
}

// Set stores a new value and schedules a re-render. A silent no-op if the
// owning component has already been dropped.
func (s State[T]) Set(v T) {
	if s.c == nil {
		return
	}
	s.c.mu.Lock()
	if !s.c.alive || s.gen != s.c.generation {
		s.c.mu.Unlock()
		return
	}
	s.c.value = v
	s.c.changed = true
	w := s.c.waker
	s.c.mu.Unlock()
	w.Wake()
}

// Update applies fn to the current value and stores the result, a
// convenience for read-modify-write state transitions.
func (s State[T]) Update(fn func(T) T) {
	if v, ok := s.TryGet(); ok {
		s.Set(fn(v))
	}
}

// UseState creates (on first use) or returns (on later renders) the state
// hook at the current position. initial is called only on first use.
func UseState[T any](l *List, initial func() T) State[T] {
	h := Use(l, func() *stateHook[T] {
		return &stateHook[T]{c: &cell[T]{value: initial(), alive: true}}
	})
	return State[T]{c: h.c, gen: h.c.generation}
}
