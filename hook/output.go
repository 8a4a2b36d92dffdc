package hook

import "sync"

// Line is one queued message from the output hook, destined for stdout or
// stderr once flushed above the rendered frame.
type Line struct {
	Text   string
	Stderr bool
}

// OutputSink receives a flushed batch of output lines. The driver
// implements this: it moves the cursor to the top of the previous frame,
// erases to end of screen, writes the lines, and marks the frame
// invalidated so the next render repaints from scratch.
type OutputSink interface {
	FlushOutput(lines []Line)
}

type outputHook struct {
	BaseHook
	mu    sync.Mutex
	queue []Line
}

func (h *outputHook) PostUpdate(u *UpdateCtx) {
	h.mu.Lock()
	if len(h.queue) == 0 {
		h.mu.Unlock()
		return
	}
	lines := h.queue
	h.queue = nil
	h.mu.Unlock()

	if sink, ok := UseContext[OutputSink](u); ok {
		sink.FlushOutput(lines)
	}
}

func (h *outputHook) push(l Line) {
	h.mu.Lock()
	h.queue = append(h.queue, l)
	h.mu.Unlock()
}

// OutputHandle queues lines for the owning output hook to flush after the
// component's update completes.
type OutputHandle struct {
	h *outputHook
}

// Println queues a line for stdout.
func (o OutputHandle) Println(s string) { o.h.push(Line{Text: s}) }

// Eprintln queues a line for stderr.
func (o OutputHandle) Eprintln(s string) { o.h.push(Line{Text: s, Stderr: true}) }

// UseOutput returns the output hook handle at the current position.
func UseOutput(l *List) OutputHandle {
	h := Use(l, func() *outputHook { return &outputHook{} })
	return OutputHandle{h: h}
}
