package hook

import "github.com/weave-tui/weave/layout"

// componentRectHook records the component's size and canvas position
// during PreDraw of the pass it belongs to, so the *next* render can read
// back where it was last drawn.
type componentRectHook struct {
	BaseHook
	rect layout.Rect
	set  bool
}

func (h *componentRectHook) PreDraw(d *DrawCtx) {
	h.rect = d.Origin
	h.set = true
}

// ComponentRect exposes the rectangle recorded on the prior draw pass.
type ComponentRect struct {
	h *componentRectHook
}

// Rect returns the last-recorded rectangle and whether one has been
// recorded yet (false before the component's first draw).
func (c ComponentRect) Rect() (layout.Rect, bool) { return c.h.rect, c.h.set }

// UseComponentRect returns the component-rect hook at the current
// position.
func UseComponentRect(l *List) ComponentRect {
	h := Use(l, func() *componentRectHook { return &componentRectHook{} })
	return ComponentRect{h: h}
}
