package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/term"
)

func TestList_UseReturnsSameHookAcrossRenders(t *testing.T) {
	l := NewList("test")

	l.Begin()
	s1 := UseState(l, func() int { return 1 })
	l.End()

	l.Begin()
	s2 := UseState(l, func() int { return 99 }) // factory must not run again
	l.End()

	assert.Equal(t, 1, s2.Get(), "second render should reuse the first render's state, not re-run the factory")
	assert.Same(t, s1.c, s2.c, "Use must return the identical hook instance at the same position")
}

func TestList_HookTypeMismatchPanics(t *testing.T) {
	l := NewList("test")
	l.Begin()
	UseState(l, func() int { return 0 })
	l.End()

	l.Begin()
	assert.Panics(t, func() {
		UseRef(l, func() string { return "" }) // different hook type at position 0
	}, "requesting a different hook type at an existing position must panic")
}

func TestList_HookCountDecreasePanics(t *testing.T) {
	l := NewList("test")
	l.Begin()
	UseState(l, func() int { return 0 })
	UseState(l, func() int { return 0 })
	l.End()

	l.Begin()
	UseState(l, func() int { return 0 }) // only one hook this time
	assert.Panics(t, func() { l.End() }, "calling End with fewer hooks used than created must panic")
}

func TestList_HookCountIncreasePanics(t *testing.T) {
	l := NewList("test")
	l.Begin()
	UseState(l, func() int { return 0 })
	l.End()

	l.Begin()
	UseState(l, func() int { return 0 })
	assert.Panics(t, func() {
		UseState(l, func() int { return 0 }) // a second hook this time: factory must not silently run
	}, "calling use_hook at a new position after the first update must panic, not append")
}

func TestState_SetWakesWaker(t *testing.T) {
	l := NewList("test")
	w := NewWaker()

	l.Begin()
	s := UseState(l, func() int { return 0 })
	l.End()
	l.PollChange(w) // registers w onto the cell

	s.Set(5)

	select {
	case <-w.C():
	default:
		t.Fatal("expected Set to wake the waker")
	}
	assert.Equal(t, 5, s.Get())
}

func TestState_PollChangeReportsReadyOnce(t *testing.T) {
	l := NewList("test")
	w := NewWaker()
	l.Begin()
	s := UseState(l, func() int { return 0 })
	l.End()

	assert.Equal(t, Pending, l.PollChange(w))
	s.Set(1)
	assert.Equal(t, Ready, l.PollChange(w), "state change must report Ready exactly once")
	assert.Equal(t, Pending, l.PollChange(w), "poll must not keep reporting Ready after being consumed")
}

func TestState_HandleInertAfterDispose(t *testing.T) {
	l := NewList("test")
	l.Begin()
	s := UseState(l, func() int { return 42 })
	l.End()

	l.Dispose()

	_, ok := s.TryGet()
	assert.False(t, ok, "TryGet must report false after the owning component is disposed")
	assert.Panics(t, func() { s.Get() }, "Get must panic after disposal")
	assert.NotPanics(t, func() { s.Set(1) }, "Set must be a silent no-op after disposal")
}

func TestRef_SetDoesNotTriggerReady(t *testing.T) {
	l := NewList("test")
	w := NewWaker()
	l.Begin()
	r := UseRef(l, func() int { return 0 })
	l.End()

	r.Set(10)
	assert.Equal(t, Pending, l.PollChange(w), "ref writes must never cause PollChange to report Ready")
	assert.Equal(t, 10, r.Get())
}

func TestUseMemo_RecomputesOnlyWhenHashChanges(t *testing.T) {
	l := NewList("test")
	calls := 0
	compute := func() int { calls++; return calls }

	l.Begin()
	v1 := UseMemo(l, 1, compute)
	l.End()

	l.Begin()
	v2 := UseMemo(l, 1, compute) // same hash: cached
	l.End()

	l.Begin()
	v3 := UseMemo(l, 2, compute) // new hash: recompute
	l.End()

	assert.Equal(t, 1, v1)
	assert.Equal(t, 1, v2)
	assert.Equal(t, 2, v3)
	assert.Equal(t, 2, calls)
}

func TestUseEffect_RunsOncePerHashChangeInPostUpdate(t *testing.T) {
	l := NewList("test")
	runs := 0

	run := func(hash uint64) {
		l.Begin()
		UseEffect(l, hash, func() { runs++ })
		l.End()
		l.PostUpdate(&UpdateCtx{})
	}

	run(1)
	run(1) // same deps: must not re-run
	run(2) // changed deps: must run again

	assert.Equal(t, 2, runs)
}

func TestFuture_PollChangeNeverReady(t *testing.T) {
	l := NewList("test")
	w := NewWaker()
	l.Begin()
	handle := UseFuture(l)
	l.End()

	done := false
	handle.Set(FuncFuture(func() bool { return done }))
	assert.True(t, handle.Active())

	assert.Equal(t, Pending, l.PollChange(w), "a future completing must never itself report Ready")

	done = true
	l.PollChange(w) // polls to completion and forgets it
	assert.False(t, handle.Active())
}

func TestAsyncHandler_SpawnWakesRenderLoop(t *testing.T) {
	l := NewList("test")
	w := NewWaker()
	l.Begin()
	handler := UseAsyncHandler(l)
	l.End()
	l.PollChange(w) // registers the waker

	handler.Spawn(FuncFuture(func() bool { return true }))

	select {
	case <-w.C():
	default:
		t.Fatal("expected Spawn to wake the render loop")
	}
	assert.Equal(t, 1, handler.Pending())

	l.PollChange(w) // the spawned future completes immediately
	assert.Equal(t, 0, handler.Pending())
}

func TestComponentRect_ExposesPriorDrawRect(t *testing.T) {
	l := NewList("test")
	l.Begin()
	cr := UseComponentRect(l)
	l.End()

	_, ok := cr.Rect()
	assert.False(t, ok, "no rect recorded before the first draw")

	l.PreDraw(&DrawCtx{})

	rect, ok := cr.Rect()
	assert.True(t, ok)
	assert.Equal(t, 0, rect.X)
}

func TestMustUseContext_PanicsWithNoMatchingFrame(t *testing.T) {
	u := &UpdateCtx{Context: wcontext.NewStack(), Component: "widget.Box"}
	assert.PanicsWithValue(t,
		"weave: widget.Box requested context int with no matching frame",
		func() { MustUseContext[int](u) })
}

func TestMustUseContext_ReturnsMatchingFrame(t *testing.T) {
	stack := wcontext.NewStack()
	stack.PushShared(42)
	u := &UpdateCtx{Context: stack, Component: "widget.Box"}
	assert.Equal(t, 42, MustUseContext[int](u))
}

func TestMustUseContextMutable_PanicsOnSharedOnlyFrame(t *testing.T) {
	stack := wcontext.NewStack()
	stack.PushShared(42)
	u := &UpdateCtx{Context: stack, Component: "widget.Box"}
	assert.Panics(t, func() { MustUseContextMutable[int](u) },
		"a mutable request against a shared-only frame must panic")
}

func TestMustUseContextMutable_ReturnsExclusiveFrame(t *testing.T) {
	stack := wcontext.NewStack()
	stack.PushExclusive(42)
	u := &UpdateCtx{Context: stack, Component: "widget.Box"}
	assert.Equal(t, 42, MustUseContextMutable[int](u))
}

func TestTerminalEventsHook_DisposeClosesQueue(t *testing.T) {
	bus := term.NewBus()
	stack := wcontext.NewStack()
	stack.PushShared(term.Source(bus))

	l := NewList("test")
	l.Begin()
	UseTerminalEvents(l, func(term.Event) {})
	l.End()
	l.PreUpdate(&UpdateCtx{Context: stack}) // subscribes the queue

	te := l.hooks[0].(*terminalEventsHook)
	l.Dispose()

	bus.Broadcast(term.Event{Payload: term.KeyEvent{Code: term.KeyEnter}})
	assert.Empty(t, te.queue.Drain(), "a disposed terminal-events hook's queue must stop receiving broadcasts")
}
