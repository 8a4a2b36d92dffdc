package driver

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger builds the driver's internal diagnostic logger; the render loop
// logs recovered panics to it and nothing else. It writes only to
// the given sink, never to stdout/stderr while the alternate screen or raw
// mode is active, so callers pass a file or io.Discard by default and
// something else only when not running a live TTY loop.
func newLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	l := log.New(w)
	l.SetPrefix("weave")
	return l
}
