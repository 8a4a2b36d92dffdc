package hook

import (
	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/term"
)

func contextLookupSource(s *wcontext.Stack) (term.Source, bool) {
	return wcontext.Lookup[term.Source](s)
}

// UseContext looks up the nearest ancestor-provided value of type T on the
// current context stack. This is not itself a hook position: context
// access is a method on the per-call context object, so it is a plain
// function taking the UpdateCtx threaded to PreUpdate/PostUpdate.
// Components, whose Update receives a component.UpdateContext instead,
// look up their ctx.Context stack with the context package directly.
func UseContext[T any](u *UpdateCtx) (T, bool) {
	var zero T
	if u == nil || u.Context == nil {
		return zero, false
	}
	return wcontext.Lookup[T](u.Context)
}

// UseContextMutable is UseContext but skips Shared frames: a child
// requesting exclusive access to a shared-only entry fails.
func UseContextMutable[T any](u *UpdateCtx) (T, bool) {
	var zero T
	if u == nil || u.Context == nil {
		return zero, false
	}
	return wcontext.LookupMutable[T](u.Context)
}

// MustUseContext is UseContext but panics, naming the requesting
// component, instead of returning ok=false. This is spec.md §7's fatal
// "use_context with no matching frame" programmer contract violation.
func MustUseContext[T any](u *UpdateCtx) T {
	return wcontext.MustLookup[T](contextOf(u), componentLabel(u))
}

// MustUseContextMutable is UseContextMutable but panics, naming the
// requesting component, instead of returning ok=false — including the
// distinct case where a matching frame exists but only as Shared (a
// mutable-context request against an immutable frame), per spec.md §7.
func MustUseContextMutable[T any](u *UpdateCtx) T {
	return wcontext.MustLookupMutable[T](contextOf(u), componentLabel(u))
}

// contextOf returns u's context stack, or an empty one if u or its
// context is nil, so the Must* lookups above always have a non-nil stack
// to walk (an empty stack correctly reports "no matching frame").
func contextOf(u *UpdateCtx) *wcontext.Stack {
	if u == nil || u.Context == nil {
		return wcontext.NewStack()
	}
	return u.Context
}

func componentLabel(u *UpdateCtx) string {
	if u == nil || u.Component == "" {
		return "<unknown component>"
	}
	return u.Component
}
