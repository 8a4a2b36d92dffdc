package hook

// memoHook stores a dependency hash and the value computed from it, never
// the dependencies themselves.
type memoHook[T any] struct {
	BaseHook
	has   bool
	hash  uint64
	value T
}

// UseMemo recomputes value via compute when depsHash differs from the
// hash stored at the last render; otherwise it returns the cached value.
func UseMemo[T any](l *List, depsHash uint64, compute func() T) T {
	h := Use(l, func() *memoHook[T] { return &memoHook[T]{} })
	if !h.has || h.hash != depsHash {
		h.value = compute()
		h.hash = depsHash
		h.has = true
	}
	return h.value
}

// effectHook stores a dependency hash and a pending side-effect function;
// PostUpdate invokes the function exactly once per hash change, after the
// component's own update has run.
type effectHook struct {
	BaseHook
	has     bool
	hash    uint64
	pending func()
}

func (h *effectHook) PostUpdate(*UpdateCtx) {
	if h.pending != nil {
		fn := h.pending
		h.pending = nil
		fn()
	}
}

// UseEffect schedules fn to run once, in this update's PostUpdate phase,
// whenever depsHash differs from the previous render's.
func UseEffect(l *List, depsHash uint64, fn func()) {
	h := Use(l, func() *effectHook { return &effectHook{} })
	if !h.has || h.hash != depsHash {
		h.hash = depsHash
		h.has = true
		h.pending = fn
	}
}
