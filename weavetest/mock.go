// Package weavetest provides a mock render loop for exercising component
// trees in tests without a real TTY: one synchronous update/layout/draw
// pass per call, with terminal events injected directly instead of parsed
// from a byte stream.
//
// Grounded on pkg/lotus/testing/tui.go's MockTerminal (render once to set
// up context, then SendKey/SendKeyEvent re-render and return the new
// output) and pkg/lotus/testing/ansi.go's stripped-text assertions,
// generalized from that package's single App.Render() callback into a
// full reconciler + hook update pass over a component.Declaration.
package weavetest

import (
	"strings"
	"testing"

	"github.com/weave-tui/weave/canvas"
	"github.com/weave-tui/weave/component"
	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/hook"
	"github.com/weave-tui/weave/layout"
	wterm "github.com/weave-tui/weave/term"
)

// Terminal drives one component.Declaration through a mock render loop.
// Every Send* method performs exactly one full render pass and records
// its canvas and any flushed output lines, mirroring one iteration of the
// real driver's render loop without its TTY/goroutine machinery.
type Terminal struct {
	t      *testing.T
	decl   component.Declaration
	width  int
	height int

	tree  *component.Tree
	ctx   *wcontext.Stack
	sys   *wcontext.System
	waker *hook.Waker
	bus   *wterm.Bus

	lines []hook.Line
	last  *canvas.Canvas
}

// New creates a mock terminal sized width x height, performs the first
// render pass, and returns it ready for assertions or simulated input.
func New(t *testing.T, decl component.Declaration, width, height int) *Terminal {
	t.Helper()

	sys := &wcontext.System{Target: wcontext.TargetMock}
	ctx := wcontext.NewStack()
	ctx.PushOwned(sys)

	m := &Terminal{
		t: t, decl: decl, width: width, height: height,
		tree:  component.NewTree(),
		ctx:   ctx,
		sys:   sys,
		waker: hook.NewWaker(),
		bus:   wterm.NewBus(),
	}
	ctx.PushShared(wterm.Source(m))
	ctx.PushShared(hook.OutputSink(m))
	m.render()
	return m
}

// Subscribe implements term.Source.
func (m *Terminal) Subscribe() *wterm.Queue { return m.bus.Subscribe() }

// FlushOutput implements hook.OutputSink: lines are appended to the
// accumulated log instead of being interleaved above a live frame, since
// there is no real screen to move the cursor on.
func (m *Terminal) FlushOutput(lines []hook.Line) {
	m.lines = append(m.lines, lines...)
}

func (m *Terminal) render() {
	inst := m.tree.Update(m.decl, m.ctx)
	result := layout.Compute(inst.Node(), layout.Size{Width: m.width, Height: m.height})
	c := canvas.New(result.Rect.Width)
	c.EnsureHeight(result.Rect.Height)
	m.tree.Draw(c, result)
	m.last = c
}

// SendKey simulates a plain character key press and re-renders.
func (m *Terminal) SendKey(r rune) *Terminal {
	return m.SendKeyEvent(wterm.KeyEvent{Code: wterm.KeyRune, Rune: r, Kind: wterm.Press})
}

// SendKeyEvent simulates an arbitrary key event (special keys, modifiers,
// repeats) and re-renders.
func (m *Terminal) SendKeyEvent(e wterm.KeyEvent) *Terminal {
	return m.SendEvent(wterm.Event{Payload: e})
}

// SendResize simulates a terminal resize, adopting the new dimensions for
// this and every subsequent render, and re-renders.
func (m *Terminal) SendResize(width, height int) *Terminal {
	m.width, m.height = width, height
	return m.SendEvent(wterm.Event{Payload: wterm.ResizeEvent{Width: width, Height: height}})
}

// SendEvent broadcasts an arbitrary term.Event to every subscribed hook,
// drains it through one poll pass (so terminal-events callbacks run and
// any state writes they make land before the frame is built), then
// performs one full render pass.
//
// Ctrl-C is intercepted the way the real driver's event pump intercepts
// it: the exit flag is set and the event never reaches a subscribed
// terminal-events callback. The final frame still renders, matching the
// loop's exit-completes-current-frame behavior.
func (m *Terminal) SendEvent(e wterm.Event) *Terminal {
	m.t.Helper()
	if k, ok := wterm.KeyOf(e); ok && k.IsCtrlC() {
		m.sys.Exit()
		m.render()
		return m
	}
	m.bus.Broadcast(e)
	m.tree.PollChange(m.waker)
	m.render()
	return m
}

// Run consumes a supplied event stream the way the real loop consumes
// terminal input: one event per render pass, stopping early once a
// component calls system.exit(). It returns the canvas yielded by each
// pass, including the frame already rendered by New before the first
// event — so a stream of n events yields at most n+1 canvases.
func (m *Terminal) Run(events ...wterm.Event) []*canvas.Canvas {
	m.t.Helper()
	frames := []*canvas.Canvas{m.last}
	for _, e := range events {
		if m.Exited() {
			break
		}
		m.SendEvent(e)
		frames = append(frames, m.last)
	}
	return frames
}

// Advance polls the composite change signal and renders again without
// injecting any terminal event — the harness equivalent of one iteration
// of the real driver's "await the composite change signal, then
// re-render" step. Use this to simulate a future or async-handler hook
// completing between renders, without depending on wall-clock time.
func (m *Terminal) Advance() *Terminal {
	m.t.Helper()
	m.tree.PollChange(m.waker)
	m.render()
	return m
}

// Exited reports whether system.exit() has been called during any render
// so far.
func (m *Terminal) Exited() bool { return m.sys.ShouldExit() }

// Output returns the plain-text rendering of the current frame (no ANSI).
func (m *Terminal) Output() string { return m.last.ToPlainText() }

// ANSI returns the ANSI-encoded rendering of the current frame.
func (m *Terminal) ANSI() string { return m.last.ToANSI(canvas.LineEndingCooked) }

// Canvas returns the current frame's canvas directly, for assertions that
// need cell-level detail (colors, widths) beyond plain text.
func (m *Terminal) Canvas() *canvas.Canvas { return m.last }

// Lines returns every output-hook line flushed so far, oldest first.
func (m *Terminal) Lines() []hook.Line { return m.lines }

// OutputText joins every flushed stdout line (stderr excluded) with "\n".
func (m *Terminal) OutputText() string {
	var lines []string
	for _, l := range m.lines {
		if !l.Stderr {
			lines = append(lines, l.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// AssertText fails the test unless expected appears in the current
// frame's plain-text rendering.
func (m *Terminal) AssertText(expected string) *Terminal {
	m.t.Helper()
	if !strings.Contains(m.Output(), expected) {
		m.t.Errorf("expected text %q not found in output:\n%s", expected, m.Output())
	}
	return m
}

// AssertNotContains fails the test if text appears in the current frame's
// plain-text rendering.
func (m *Terminal) AssertNotContains(text string) *Terminal {
	m.t.Helper()
	if strings.Contains(m.Output(), text) {
		m.t.Errorf("expected text %q to be absent, but found it in:\n%s", text, m.Output())
	}
	return m
}
