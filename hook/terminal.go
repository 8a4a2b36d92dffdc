package hook

import "github.com/weave-tui/weave/term"

// terminalEventsHook lazily subscribes to the driver's event bus in
// PreUpdate or PostUpdate, once it has driver access, and pumps drained
// events to a user callback during PollChange. The PostUpdate path covers
// the update that created the hook, whose PreUpdate ran before it existed.
type terminalEventsHook struct {
	BaseHook
	queue    *term.Queue
	callback func(term.Event)
}

func (h *terminalEventsHook) PreUpdate(u *UpdateCtx) {
	if h.queue != nil {
		return
	}
	if src, ok := lookupSourceFrom(u); ok {
		h.queue = src.Subscribe()
	}
}

func (h *terminalEventsHook) PostUpdate(u *UpdateCtx) { h.PreUpdate(u) }

func (h *terminalEventsHook) PollChange(w *Waker) ChangeState {
	if h.queue == nil {
		return Pending
	}
	h.queue.SetWaker(w)
	for _, e := range h.queue.Drain() {
		if h.callback != nil {
			h.callback(e)
		}
	}
	return Pending
}

// Dispose closes the subscription queue so the bus prunes it on its next
// Broadcast instead of holding a reference to a dropped component's queue
// forever — spec.md §4.E's "dead queues are pruned opportunistically".
func (h *terminalEventsHook) Dispose() {
	if h.queue != nil {
		h.queue.Close()
	}
}

// lookupSourceFrom pulls the term.Source out of the update context's
// context stack; the driver pushes itself (or a mock bus) as a Shared
// frame at the root before the first update.
func lookupSourceFrom(u *UpdateCtx) (term.Source, bool) {
	if u == nil || u.Context == nil {
		return nil, false
	}
	return contextLookupSource(u.Context)
}

// UseTerminalEvents subscribes the callback to every terminal event
// delivered after this component's first update. Callback order matches
// source order for this one subscriber; cross-subscriber ordering is
// unspecified.
func UseTerminalEvents(l *List, callback func(term.Event)) {
	h := Use(l, func() *terminalEventsHook { return &terminalEventsHook{} })
	h.callback = callback
}

// UseTerminalSize wraps a state cell plus a terminal-events subscription
// that updates it on resize events. This is two hook positions: one
// state, one terminal-events.
func UseTerminalSize(l *List, initial term.Size) State[term.Size] {
	s := UseState(l, func() term.Size { return initial })
	UseTerminalEvents(l, func(e term.Event) {
		if r, ok := term.ResizeOf(e); ok {
			s.Set(term.Size{Width: r.Width, Height: r.Height})
		}
	})
	return s
}
