package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	xterm "golang.org/x/term"
)

// screen owns the raw-mode/alt-screen/cursor-visibility state machine for
// one TTY session. Adapted from pkg/lotus/tty/screen.go, generalized to
// also push/pop the Kitty keyboard-enhancement flags, which that package
// doesn't implement.
type screen struct {
	fd           int
	out          io.Writer
	oldState     *xterm.State
	inAlt        bool
	cursorHidden bool
	rawEntered   bool
	kittyPushed  bool
	filterMouse  bool
}

func newScreen(out io.Writer) *screen {
	return &screen{fd: int(os.Stdin.Fd()), out: out, filterMouse: true}
}

// Size returns the terminal's current dimensions in cells, falling back
// to a conservative default when the query fails (e.g. stdout redirected).
func (s *screen) Size() (int, int) {
	w, h, err := xterm.GetSize(s.fd)
	if err != nil {
		return 80, 24
	}
	return w, h
}

// EnterRaw puts the terminal into raw mode, enables bracketed paste, and
// pushes the Kitty keyboard-enhancement flags (if the terminal supports
// them; unsupported terminals silently ignore the CSI).
func (s *screen) EnterRaw() error {
	old, err := xterm.MakeRaw(s.fd)
	if err != nil {
		return fmt.Errorf("weave: enter raw mode: %w", err)
	}
	s.oldState = old
	s.rawEntered = true
	fmt.Fprint(s.out, "\x1b[?2004h") // bracketed paste on
	fmt.Fprint(s.out, "\x1b[>1u")    // push Kitty keyboard enhancement flags
	s.kittyPushed = true
	if s.filterMouse {
		// Mouse reporting is not enabled here; the fullscreen loop enables
		// SGR mouse mode only when WithMouseFilter(false) is passed.
	}
	return nil
}

// ExitRaw restores the terminal to cooked mode, undoing every mode set by
// EnterRaw/EnterAltScreen/HideCursor in this order: pop the keyboard
// flags, disable bracketed paste, show the cursor, leave the alternate
// screen, restore the saved terminal state. It is safe to call multiple
// times or from a recovered panic.
func (s *screen) ExitRaw() {
	if s.kittyPushed {
		fmt.Fprint(s.out, "\x1b[<u") // pop Kitty keyboard enhancement flags
		s.kittyPushed = false
	}
	fmt.Fprint(s.out, "\x1b[?2004l") // bracketed paste off
	if s.cursorHidden {
		s.ShowCursor()
	}
	if s.inAlt {
		s.ExitAltScreen()
	}
	if s.oldState != nil {
		_ = xterm.Restore(s.fd, s.oldState)
		s.oldState = nil
	}
	s.rawEntered = false
}

func (s *screen) EnterAltScreen() {
	fmt.Fprint(s.out, ansi.SetAltScreenSaveCursorMode)
	s.inAlt = true
}

func (s *screen) ExitAltScreen() {
	fmt.Fprint(s.out, ansi.ResetAltScreenSaveCursorMode)
	s.inAlt = false
}

func (s *screen) HideCursor() {
	fmt.Fprint(s.out, ansi.HideCursor)
	s.cursorHidden = true
}

func (s *screen) ShowCursor() {
	fmt.Fprint(s.out, ansi.ShowCursor)
	s.cursorHidden = false
}

// SaveCursor and RestoreCursor bracket the inline (non-fullscreen) render
// loop: the driver saves the cursor position before the loop starts (and
// again after each output flush) and restores to it before clearing each
// frame.
func (s *screen) SaveCursor() { fmt.Fprint(s.out, "\x1b7") }
func (s *screen) RestoreCursor() { fmt.Fprint(s.out, "\x1b8") }

// EraseToEnd clears from the cursor to the end of the screen, used both
// by the inline loop's per-frame clear and by the output hook's flush.
func (s *screen) EraseToEnd() { fmt.Fprint(s.out, ansi.EraseScreenBelow) }

// Home moves the cursor to the top-left cell, used by the fullscreen loop
// before redrawing each frame.
func (s *screen) Home() { fmt.Fprint(s.out, "\x1b[H") }

// MoveUp moves the cursor up n rows without affecting its column,
// clamped to a no-op for n<=0.
func (s *screen) MoveUp(n int) {
	if n > 0 {
		fmt.Fprint(s.out, ansi.CursorUp(n))
	}
}

func (s *screen) EnableMouse() {
	fmt.Fprint(s.out, "\x1b[?1000h\x1b[?1002h\x1b[?1003h\x1b[?1006h")
}

func (s *screen) DisableMouse() {
	fmt.Fprint(s.out, "\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")
}

// newStdinReader wraps stdin for the loop's input parser. The parser itself
// takes any *bufio.Reader, which is how tests feed it bytes without a TTY.
func newStdinReader() *bufio.Reader { return bufio.NewReader(os.Stdin) }
