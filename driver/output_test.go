package driver

import (
	"bytes"
	"strings"
	"testing"

	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/hook"
)

// TestDriver_FlushOutput_AppendsNewlineToPartialLines exercises the
// output hook's flush path directly, without a real screen: lines
// missing a trailing newline get one, lines that already have one
// don't get a second.
func TestDriver_FlushOutput_AppendsNewlineToPartialLines(t *testing.T) {
	var buf bytes.Buffer
	d := newDriver(wcontext.TargetOneShot, Options{stdout: &buf, stderr: &buf})

	d.FlushOutput([]hook.Line{{Text: "A"}, {Text: "C\n"}})

	if got := buf.String(); got != "A\nC\n" {
		t.Errorf("FlushOutput wrote %q, want %q", got, "A\nC\n")
	}
}

// TestDriver_FlushOutput_ClearsPriorFrameWhenScreenPresent checks that,
// in loop mode (d.sc set), flushing moves the cursor up over the
// previous frame and invalidates it so the next render repaints from
// scratch.
func TestDriver_FlushOutput_ClearsPriorFrameWhenScreenPresent(t *testing.T) {
	var buf bytes.Buffer
	d := newDriver(wcontext.TargetOneShot, Options{stdout: &buf, stderr: &buf})
	d.sc = newScreen(&buf)
	d.lastH = 3
	d.onScreen = true

	d.FlushOutput([]hook.Line{{Text: "hi"}})

	out := buf.String()
	if !strings.Contains(out, "\x1b[3A") {
		t.Errorf("expected flush to move the cursor up over the 3-row frame, got %q", out)
	}
	if !strings.Contains(out, "hi\n") {
		t.Errorf("expected flushed output to contain %q, got %q", "hi\n", out)
	}
	if d.lastH != 0 || d.onScreen {
		t.Errorf("lastH = %d, onScreen = %v, want 0/false (frame invalidated after flush)", d.lastH, d.onScreen)
	}
}

func TestDriver_FlushOutput_RoutesStderrLinesSeparately(t *testing.T) {
	var out, errBuf bytes.Buffer
	d := newDriver(wcontext.TargetOneShot, Options{stdout: &out, stderr: &errBuf})

	d.FlushOutput([]hook.Line{{Text: "normal"}, {Text: "oops", Stderr: true}})

	if out.String() != "normal\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "normal\n")
	}
	if errBuf.String() != "oops\n" {
		t.Errorf("stderr = %q, want %q", errBuf.String(), "oops\n")
	}
}
