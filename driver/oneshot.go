package driver

import (
	"io"
	"os"

	"github.com/weave-tui/weave/canvas"
	"github.com/weave-tui/weave/component"
	wcontext "github.com/weave-tui/weave/context"
	"github.com/weave-tui/weave/layout"
	xterm "golang.org/x/term"
)

// Print renders decl once to stdout (or WithStdout's target): a TTY gets
// ANSI, a pipe gets plain text, and either way a single trailing newline
// follows the last row so the shell prompt lands on its own line.
func Print(decl component.Declaration, opts ...Option) error {
	return printTo(decl, false, opts)
}

// Eprint is Print to stderr (or WithStderr's target).
func Eprint(decl component.Declaration, opts ...Option) error {
	return printTo(decl, true, opts)
}

func printTo(decl component.Declaration, stderr bool, optFns []Option) error {
	o := newOptions(optFns)
	d := newDriver(wcontext.TargetOneShot, o)

	w := o.stdout
	if stderr {
		w = o.stderr
	}

	width := maxContentSize
	if f, ok := w.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		if tw, _, err := xterm.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}

	inst := d.runUpdate(decl)
	result := computeLayoutForWidth(inst, width)

	// Unlike the loop, one-shot rendering never pre-sizes the canvas to
	// the root's layout height: the available height stands in for
	// max-content and would otherwise force thousands of empty rows.
	// Rows grow as draws touch them; trailing empties are trimmed on
	// serialization either way.
	c := canvas.New(result.Rect.Width)
	d.tree.Draw(c, result)

	out := renderOneShot(c, w)
	_, err := io.WriteString(w, out)
	return err
}

// maxContentSize stands in for "max-content" sizing when output isn't a
// TTY: wide enough that no realistic component's size constraint binds,
// so layout falls back to each node's intrinsic/measured size, while
// keeping a canvas row of this width cheap to allocate.
const maxContentSize = 4096

func computeLayoutForWidth(inst *component.Instance, width int) *layout.Result {
	return computeLayout(inst, width, maxContentSize)
}

func renderOneShot(c *canvas.Canvas, w io.Writer) string {
	if f, ok := w.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		return c.ToANSI(canvas.LineEndingCooked) + "\n"
	}
	return c.ToPlainText() + "\n"
}
