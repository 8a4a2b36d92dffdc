// Package driver implements the render-loop driver: it orchestrates
// measure → layout → draw → output, drives the TTY event loop, fans out
// terminal events to subscribing hooks, and restores the terminal on
// exit — including Ctrl-C and recovered panics.
//
// Grounded on pkg/lotus/runtime/app.go (the vdom → style → layout →
// render pipeline wired into tty.Terminal.OnRender/OnKey/OnResize) and
// pkg/lotus/tty (cursor save/restore, alternate screen, raw mode,
// bracketed paste). weave/driver keeps that package's three-callback
// shape (render/key/resize) but drives it from the reconciler and hook
// composite change signal instead of a bare App.Render() call.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/weave-tui/weave/canvas"
	"github.com/weave-tui/weave/component"
	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/hook"
	"github.com/weave-tui/weave/layout"
	wterm "github.com/weave-tui/weave/term"
)

// Options configures a Driver. All fields have workable zero values;
// Option functions are the constructor surface (matching how
// pkg/lotus/tty.New() and pkg/lotus/runtime.Run() take no env-derived
// config of their own).
type Options struct {
	stdout      io.Writer
	stderr      io.Writer
	logSink     io.Writer
	filterMouse bool
}

// Option mutates Options; pass any number to Print, Eprint, RenderLoop or
// Fullscreen.
type Option func(*Options)

// WithStdout overrides the stdout sink components' output hooks write to.
func WithStdout(w io.Writer) Option { return func(o *Options) { o.stdout = w } }

// WithStderr overrides the stderr sink components' output hooks write to.
func WithStderr(w io.Writer) Option { return func(o *Options) { o.stderr = w } }

// WithLogSink sets where the driver's internal diagnostic logger writes.
// Defaults to io.Discard; pass a file when you want the recovered-panic
// diagnostics the loop logs (never stdout/stderr while raw mode or the alt
// screen is active).
func WithLogSink(w io.Writer) Option { return func(o *Options) { o.logSink = w } }

// WithMouseFilter controls whether fullscreen mouse SGR sequences are
// decoded into events (false) or swallowed before they reach any hook
// (true, the default).
func WithMouseFilter(filter bool) Option { return func(o *Options) { o.filterMouse = filter } }

func newOptions(opts []Option) Options {
	o := Options{stdout: os.Stdout, stderr: os.Stderr, logSink: io.Discard, filterMouse: true}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Driver owns one render: the component tree, the context stack rooted in
// a system frame, and (in loop/fullscreen modes) the terminal and event
// bus. A Driver is single-use — create a fresh one per Print/RenderLoop/
// Fullscreen call, matching a single-threaded, non-retained-scene-graph
// model.
type Driver struct {
	tree     *component.Tree
	ctx      *wcontext.Stack
	sys      *wcontext.System
	waker    *hook.Waker
	logger   *log.Logger
	opts     Options
	bus      *wterm.Bus
	sc       *screen
	lastH    int  // rows occupied by the previously emitted frame, for clearing
	onScreen bool // whether that frame is still visible (not yet cleared this pass)
}

func newDriver(target wcontext.RenderTarget, opts Options) *Driver {
	sys := &wcontext.System{Stdout: opts.stdout, Stderr: opts.stderr, Target: target}
	ctx := wcontext.NewStack()
	ctx.PushOwned(sys)
	d := &Driver{
		tree:   component.NewTree(),
		ctx:    ctx,
		sys:    sys,
		waker:  hook.NewWaker(),
		logger: newLogger(opts.logSink),
		opts:   opts,
	}
	ctx.PushShared(wterm.Source(d)) // the driver itself is the event source
	ctx.PushShared(hook.OutputSink(d))
	return d
}

// Subscribe implements term.Source so terminal-events hooks can pull from
// this driver's bus (one-shot drivers have no bus and return a queue that
// never receives anything).
func (d *Driver) Subscribe() *wterm.Queue {
	if d.bus == nil {
		d.bus = wterm.NewBus()
	}
	return d.bus.Subscribe()
}

// FlushOutput implements hook.OutputSink: move to the top of the previous
// frame (if it is still on screen), erase to end of screen, write the
// queued lines, and mark the frame invalidated so the next render
// repaints from scratch. Partial lines get an injected newline so the
// next frame starts on a column boundary, and the cursor's saved
// position is re-anchored below the flushed output so later frames
// repaint underneath it instead of over it.
func (d *Driver) FlushOutput(lines []hook.Line) {
	if d.sc != nil && d.onScreen {
		d.sc.MoveUp(d.lastH)
		d.sc.EraseToEnd()
		d.onScreen = false
	}
	for _, l := range lines {
		w := d.opts.stdout
		if l.Stderr {
			w = d.opts.stderr
		}
		text := l.Text
		if len(text) == 0 || text[len(text)-1] != '\n' {
			text += "\n"
		}
		fmt.Fprint(w, text)
	}
	if d.sc != nil {
		d.sc.SaveCursor()
	}
	d.lastH = 0 // force the next frame to redraw from scratch
}

func (d *Driver) runUpdate(decl component.Declaration) *component.Instance {
	return d.tree.Update(decl, d.ctx)
}

func computeLayout(inst *component.Instance, width, height int) *layout.Result {
	return layout.Compute(inst.Node(), layout.Size{Width: width, Height: height})
}

func drawCanvas(tree *component.Tree, result *layout.Result) *canvas.Canvas {
	c := canvas.New(result.Rect.Width)
	c.EnsureHeight(result.Rect.Height)
	tree.Draw(c, result)
	return c
}
