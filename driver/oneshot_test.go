package driver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/weave-tui/weave/canvas"
	"github.com/weave-tui/weave/component"
	wcontext "github.com/weave-tui/weave/context"
)

// helloText is a fixed-text leaf component with no hooks, for exercising
// a single one-shot render pass.
type helloText struct{}

func (helloText) Update(ctx *component.UpdateContext, props any) {}
func (helloText) Draw(ctx *component.DrawContext) {
	ctx.Canvas.WriteText(0, 0, "hello", canvas.TextStyle{})
}

func helloDecl() component.Declaration {
	return component.Decl[helloText]("", func() helloText { return helloText{} }, nil)
}

// exitingText calls system.Exit() on its very first update, for testing
// that Print still completes the in-flight draw.
type exitingText struct{}

func (exitingText) Update(ctx *component.UpdateContext, props any) {
	if sys, ok := wcontext.Lookup[*wcontext.System](ctx.Context); ok {
		sys.Exit()
	}
}
func (exitingText) Draw(ctx *component.DrawContext) {
	ctx.Canvas.WriteText(0, 0, "bye", canvas.TextStyle{})
}

func exitingDecl() component.Declaration {
	return component.Decl[exitingText]("", func() exitingText { return exitingText{} }, nil)
}

// A *bytes.Buffer is never an *os.File, so renderOneShot always takes the
// plain-text branch here: no ANSI escapes to strip, no TTY to fake.
func TestPrint_WritesPlainTextToProvidedStdout(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(helloDecl(), WithStdout(&buf)); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "hello") {
		t.Errorf("expected output to contain %q, got %q", "hello", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("expected output to end with a trailing newline, got %q", got)
	}
}

func TestEprint_WritesToProvidedStderr(t *testing.T) {
	var out, errBuf bytes.Buffer
	if err := Eprint(helloDecl(), WithStdout(&out), WithStderr(&errBuf)); err != nil {
		t.Fatalf("Eprint returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Eprint must not write to stdout, got %q", out.String())
	}
	if !strings.Contains(errBuf.String(), "hello") {
		t.Errorf("expected stderr to contain %q, got %q", "hello", errBuf.String())
	}
}

func TestPrint_WithStdoutOptionOverridesDefault(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(exitingDecl(), WithStdout(&buf)); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "bye") {
		t.Errorf("WithStdout must redirect Print's output away from os.Stdout, got %q", buf.String())
	}
}
