package context

import "io"

// RenderTarget names which output surface a driver is writing to. Hooks
// that behave differently in fullscreen vs. inline mode (e.g. terminal
// mouse capture) read this off the system context instead of threading a
// separate flag everywhere.
type RenderTarget int

const (
	TargetOneShot RenderTarget = iota
	TargetInline
	TargetFullscreen
	TargetMock
)

// System is the always-present root frame: a should-exit flag components
// set via Exit(), and handles to the stdout/stderr sinks and the chosen
// render target. Exactly one System frame exists per render; the driver
// (or mock driver) pushes it once, as the bottom frame of the stack,
// before the first update pass.
type System struct {
	Stdout io.Writer
	Stderr io.Writer
	Target RenderTarget

	shouldExit bool
}

// Exit requests that the driver stop after completing the current render
// pass: the in-flight frame still draws.
func (s *System) Exit() { s.shouldExit = true }

// ShouldExit reports whether Exit has been called this run.
func (s *System) ShouldExit() bool { return s.shouldExit }

// Reset clears the exit flag, so one System value can serve another run.
func (s *System) Reset() { s.shouldExit = false }
