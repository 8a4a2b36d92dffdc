package hook

import "sync"

// refCell is identical in shape to a state cell minus the change flag and
// waker: a ref never causes a re-render on mutation. It carries the same
// interior lock so cloned handles are safe across async tasks.
type refCell[T any] struct {
	mu         sync.Mutex
	value      T
	generation uint64
	alive      bool
}

type refHook[T any] struct {
	BaseHook
	c *refCell[T]
}

func (h *refHook[T]) Dispose() {
	h.c.mu.Lock()
	h.c.alive = false
	h.c.generation++
	h.c.mu.Unlock()
}

// Ref is a clonable handle to a non-reactive mutable cell, used to share
// mutable state across hooks or callbacks without triggering re-renders.
type Ref[T any] struct {
	c   *refCell[T]
	gen uint64
}

// Get returns the current value, panicking if the owner has been dropped.
func (r Ref[T]) Get() T {
	v, ok := r.TryGet()
	if !ok {
		panic("weave: ref read after its owning component was dropped")
	}
	return v
}

// TryGet returns the current value and true, or zero/false if dropped.
func (r Ref[T]) TryGet() (T, bool) {
	var zero T
	if r.c == nil {
		return zero, false
	}
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if !r.c.alive || r.gen != r.c.generation {
		return zero, false
	}
	return r.c.value, true
}

// Set stores a new value without scheduling a re-render. A silent no-op
// if the owner has been dropped.
func (r Ref[T]) Set(v T) {
	if r.c == nil {
		return
	}
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if !r.c.alive || r.gen != r.c.generation {
		return
	}
	r.c.value = v
}

// UseRef creates or returns the ref hook at the current position.
func UseRef[T any](l *List, initial func() T) Ref[T] {
	h := Use(l, func() *refHook[T] {
		return &refHook[T]{c: &refCell[T]{value: initial(), alive: true}}
	})
	return Ref[T]{c: h.c, gen: h.c.generation}
}
