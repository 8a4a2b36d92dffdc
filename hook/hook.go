// Package hook implements the per-component hook runtime: a positional,
// factory-once list of small pollable state objects that drive re-renders
// and expose state/refs/effects/futures/terminal events plus lifecycle
// callbacks around update and draw. pkg/lotus/runtime has no equivalent
// (just a plain App.Render() interface with ad hoc global state); this
// package is grounded instead on newbpydev-bubblyui's pkg/core (hooks.go,
// signal.go, effect_scheduling.go), reshaped from bubblyui's name/ID-keyed
// hook maps into a strictly positional, factory-once use_hook discipline.
package hook

import (
	"fmt"
	"sync"

	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/layout"
)

// ChangeState is the Ready/Pending answer a hook's poll returns.
type ChangeState int

const (
	Pending ChangeState = iota
	Ready
)

// Waker is woken when a hook wants the driver to schedule another render.
// A single Waker instance is shared by an entire render pass: every hook
// in the tree is polled with the same Waker, so any state write anywhere
// wakes the one composite change signal the driver awaits.
type Waker struct {
	mu sync.Mutex
	ch chan struct{}
}

// NewWaker creates a waker with its internal ready-channel unset.
func NewWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 1)}
}

// Wake signals the waker's channel, coalescing redundant wakes.
func (w *Waker) Wake() {
	if w == nil {
		return
	}
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// C returns the channel that receives a value each time Wake is called.
func (w *Waker) C() <-chan struct{} { return w.ch }

// UpdateCtx is threaded through PreUpdate/PostUpdate: the context stack
// visible to this component, passed as an argument rather than carried
// inside the hook list itself. Component names the owning component for
// panic diagnostics (MustUseContext and friends); it may be empty in
// tests that build an UpdateCtx directly.
type UpdateCtx struct {
	Context   *wcontext.Stack
	Component string
}

// DrawCtx is threaded through PreDraw/PostDraw: the component's computed
// rectangle for this pass, used by the component-rect hook.
type DrawCtx struct {
	Rect   layout.Rect
	Origin layout.Rect // absolute canvas position, set by the driver
}

// Hook is one entry in a component's hook list. Every method has a safe
// default via BaseHook, so concrete hooks only override what they need.
type Hook interface {
	PollChange(w *Waker) ChangeState
	PreUpdate(u *UpdateCtx)
	PostUpdate(u *UpdateCtx)
	PreDraw(d *DrawCtx)
	PostDraw(d *DrawCtx)
}

// BaseHook supplies the no-op default for all five hook operations; embed
// it and override only the methods a concrete hook needs.
type BaseHook struct{}

func (BaseHook) PollChange(*Waker) ChangeState { return Pending }
func (BaseHook) PreUpdate(*UpdateCtx) {}
func (BaseHook) PostUpdate(*UpdateCtx) {}
func (BaseHook) PreDraw(*DrawCtx) {}
func (BaseHook) PostDraw(*DrawCtx) {}

// List is a component's ordered hook vector plus the cursor `use_hook`
// advances during one update. The index resets at the start of every
// update (Begin) and must land back on len(hooks) by the end (End) or the
// component declared fewer hooks than before — a programmer error.
type List struct {
	owner       string // component label, used only in panic messages
	hooks       []Hook
	index       int
	firstUpdate bool
	everUpdated bool
}

// NewList creates an empty hook list labeled for diagnostics.
func NewList(owner string) *List {
	return &List{owner: owner}
}

// Begin resets the use_hook cursor to the start of the list for a new
// update pass and records whether this is the list's first update: only
// on the first update may Use append a new hook.
func (l *List) Begin() {
	l.index = 0
	l.firstUpdate = !l.everUpdated
	l.everUpdated = true
}

// End verifies every hook created on a prior render was visited again this
// render; a short list means a component called use_hook fewer times than
// before, the "hook count decreased" variant of a hook-order violation.
func (l *List) End() {
	if l.index != len(l.hooks) {
		panic(fmt.Sprintf("weave: hook count changed in %q: expected %d hooks, component declared %d",
			l.owner, len(l.hooks), l.index))
	}
}

// Use returns the hook at the current position, advancing it. On the
// list's first update, a position past the end is new: factory is called
// and its result appended. On every later update, factory must not run —
// a position past the end of the previously-built list means the
// component called use_hook more times than it did before, the "hook
// count increased" half of the same rules-of-hooks violation End guards
// against on the other side (a list that comes up short).
func Use[H Hook](l *List, factory func() H) H {
	if l.index < len(l.hooks) {
		existing := l.hooks[l.index]
		h, ok := existing.(H)
		if !ok {
			panic(fmt.Sprintf("weave: hook type mismatch in %q at position %d: had %T, requested %T",
				l.owner, l.index, existing, *new(H)))
		}
		l.index++
		return h
	}
	if !l.firstUpdate {
		panic(fmt.Sprintf("weave: hook count changed in %q: use_hook called at new position %d after the first update",
			l.owner, l.index))
	}
	h := factory()
	l.hooks = append(l.hooks, h)
	l.index++
	return h
}

// PollChange polls every hook in the list (never short-circuiting, so
// every hook gets a chance to register its waker) and reports Ready if any
// one of them is Ready.
func (l *List) PollChange(w *Waker) ChangeState {
	state := Pending
	for _, h := range l.hooks {
		if h.PollChange(w) == Ready {
			state = Ready
		}
	}
	return state
}

// PreUpdate fans out to every hook in list order.
func (l *List) PreUpdate(u *UpdateCtx) {
	for _, h := range l.hooks {
		h.PreUpdate(u)
	}
}

// PostUpdate fans out to every hook in list order.
func (l *List) PostUpdate(u *UpdateCtx) {
	for _, h := range l.hooks {
		h.PostUpdate(u)
	}
}

// PreDraw fans out to every hook in list order.
func (l *List) PreDraw(d *DrawCtx) {
	for _, h := range l.hooks {
		h.PreDraw(d)
	}
}

// PostDraw fans out to every hook in list order.
func (l *List) PostDraw(d *DrawCtx) {
	for _, h := range l.hooks {
		h.PostDraw(d)
	}
}

// Len reports how many hooks have been created so far.
func (l *List) Len() int { return len(l.hooks) }

// Disposable is implemented by hooks whose handles must be invalidated
// when the owning component instance is dropped (state, ref). Hooks with
// no outstanding handles (effect, memo, ...) need not implement it.
type Disposable interface {
	Dispose()
}

// Dispose invalidates every disposable hook in the list. The reconciler
// calls this once, recursively, when it removes a component instance,
// invalidating any outstanding state/ref handles.
func (l *List) Dispose() {
	for _, h := range l.hooks {
		if d, ok := h.(Disposable); ok {
			d.Dispose()
		}
	}
}
