package driver

import (
	"sync"
	"time"

	"github.com/weave-tui/weave/canvas"
	"github.com/weave-tui/weave/component"
	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/hook"
	wterm "github.com/weave-tui/weave/term"
)

// RenderLoop drives decl interactively inline (not fullscreen): the
// terminal's own scrollback stays intact, and the driver repaints in
// place, from the cursor's saved position downward, on every change. It returns
// when a component calls system.exit(), on Ctrl-C, or on a terminal I/O
// failure.
func RenderLoop(decl component.Declaration, opts ...Option) error {
	return runLoop(decl, wcontext.TargetInline, false, opts)
}

// Fullscreen drives decl interactively in the terminal's alternate screen
// buffer, sized to the full terminal. It returns the same way RenderLoop
// does.
func Fullscreen(decl component.Declaration, opts ...Option) error {
	return runLoop(decl, wcontext.TargetFullscreen, true, opts)
}

func runLoop(decl component.Declaration, target wcontext.RenderTarget, fullscreen bool, optFns []Option) (err error) {
	o := newOptions(optFns)
	d := newDriver(target, o)
	d.bus = wterm.NewBus()
	d.sc = newScreen(o.stdout)
	d.sc.filterMouse = o.filterMouse

	if rerr := d.sc.EnterRaw(); rerr != nil {
		return rerr
	}
	// Panic-safe terminal restoration: install before anything else can
	// panic, so a user-code panic inside a component still leaves the
	// terminal in a sane state.
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("recovered panic, restoring terminal", "panic", r)
			d.sc.ExitRaw()
			panic(r)
		}
	}()
	defer d.sc.ExitRaw()

	if fullscreen {
		d.sc.EnterAltScreen()
		if !o.filterMouse {
			d.sc.EnableMouse()
			defer d.sc.DisableMouse()
		}
	} else {
		d.sc.SaveCursor()
		d.sc.HideCursor()
	}

	var sizeMu sync.Mutex
	curW, curH := d.sc.Size()

	done := make(chan struct{})
	defer close(done)

	go d.runInputLoop(done)
	go d.runResizeLoop(&sizeMu, &curW, &curH, done)

	for {
		sizeMu.Lock()
		w, h := curW, curH
		sizeMu.Unlock()

		if !fullscreen {
			d.sc.RestoreCursor()
			if d.lastH > 0 {
				d.sc.EraseToEnd()
			}
		} else {
			d.sc.Home()
			d.sc.EraseToEnd()
		}
		d.onScreen = false

		inst := d.runUpdate(decl)
		result := computeLayout(inst, w, h)
		c := drawCanvas(d.tree, result)
		d.writeFrame(c)
		d.lastH = c.Height()

		if d.sys.ShouldExit() {
			return nil
		}

		state := d.tree.PollChange(d.waker)
		if state == hook.Ready {
			continue
		}
		<-d.waker.C()
	}
}

func (d *Driver) writeFrame(c *canvas.Canvas) {
	out := c.ToANSI(canvas.LineEndingRaw)
	_, _ = d.opts.stdout.Write([]byte(out))
	_, _ = d.opts.stdout.Write([]byte("\r\n"))
	d.onScreen = true
}

func (d *Driver) runInputLoop(done <-chan struct{}) {
	r := newStdinReader()
	parser := newInputParser(r, d.opts.filterMouse)
	for {
		select {
		case <-done:
			return
		default:
		}
		ev, ok, perr := parser.Next()
		if perr != nil {
			return
		}
		if !ok {
			continue
		}
		if k, isKey := wterm.KeyOf(ev); isKey && k.IsCtrlC() {
			// Ctrl-C short-circuits the event pump: it is never forwarded
			// to user terminal-events callbacks.
			d.sys.Exit()
			d.waker.Wake()
			return
		}
		d.bus.Broadcast(ev)
		d.waker.Wake()
	}
}

func (d *Driver) runResizeLoop(mu *sync.Mutex, curW, curH *int, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			w, h := d.sc.Size()
			mu.Lock()
			changed := w != *curW || h != *curH
			if changed {
				*curW, *curH = w, h
			}
			mu.Unlock()
			if changed {
				d.bus.Broadcast(wterm.Event{Payload: wterm.ResizeEvent{Width: w, Height: h}})
				d.waker.Wake()
			}
		}
	}
}
