// Package canvas implements the 2-D cell grid a render pass draws into
// before it is serialized to ANSI or plain text.
package canvas

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell is one column of one row: an optional background color and an
// optional foreground character with its own style.
type Cell struct {
	Background string // empty means no background set
	Char       rune   // zero means empty cell
	Style      TextStyle
	set        bool // distinguishes an explicitly-written space from an untouched cell
}

// Empty reports whether the cell has never been written to.
func (c Cell) Empty() bool {
	return !c.set && c.Background == ""
}

// Canvas is a fixed-width, growable-height grid of cells.
type Canvas struct {
	width int
	rows  [][]Cell
}

// New creates a canvas with the given column count and zero rows. Rows are
// appended lazily as writes request them.
func New(width int) *Canvas {
	if width < 0 {
		width = 0
	}
	return &Canvas{width: width}
}

// Width returns the canvas's fixed column count.
func (c *Canvas) Width() int { return c.width }

// Height returns the current row count.
func (c *Canvas) Height() int { return len(c.rows) }

// EnsureHeight grows the canvas to at least n rows, used by the driver to
// pre-size a canvas to its computed layout height even when no write
// touches the trailing rows.
func (c *Canvas) EnsureHeight(n int) { c.growTo(n) }

// growTo ensures the canvas has at least n rows.
func (c *Canvas) growTo(n int) {
	for len(c.rows) < n {
		c.rows = append(c.rows, make([]Cell, c.width))
	}
}

// Row returns a read-only view of row y, or nil if y is out of range.
func (c *Canvas) Row(y int) []Cell {
	if y < 0 || y >= len(c.rows) {
		return nil
	}
	return c.rows[y]
}

// FillBackground stamps a background color over the rectangle (x, y, w, h).
// Cells outside the canvas's current width are ignored; rows beyond the
// current height are appended.
func (c *Canvas) FillBackground(x, y, w, h int, color string) {
	if w <= 0 || h <= 0 {
		return
	}
	c.growTo(y + h)
	for row := y; row < y+h; row++ {
		if row < 0 || row >= len(c.rows) {
			continue
		}
		for col := x; col < x+w; col++ {
			if col < 0 || col >= c.width {
				continue
			}
			cell := c.rows[row][col]
			cell.Background = color
			c.rows[row][col] = cell
		}
	}
}

// WriteText writes text starting at (x, y), consuming characters until the
// string ends or x reaches the rightmost column. Each grapheme cluster
// occupies as many cells as its base rune's East-Asian width (1 or 2);
// combining marks and zero-width joiners never become separate cells.
// A cell stores only the cluster's base rune: the cluster's remaining
// runes are not kept and do not appear in serialized output.
func (c *Canvas) WriteText(x, y int, text string, style TextStyle) {
	if y < 0 || text == "" {
		return
	}
	c.growTo(y + 1)

	col := x
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if col >= c.width {
			break
		}
		cluster := gr.Runes()
		if len(cluster) == 0 {
			continue
		}
		base := cluster[0]
		width := runewidth.RuneWidth(base)
		if width <= 0 {
			width = 1
		}
		if col < 0 {
			col += width
			continue
		}
		c.set(col, y, base, style)
		if width == 2 && col+1 < c.width {
			// The wide character's trailing cell carries no glyph of its own;
			// it is marked occupied so subsequent writes don't overlap it.
			c.rows[y][col+1] = Cell{set: true, Char: 0, Style: style}
		}
		col += width
	}
}

func (c *Canvas) set(x, y int, ch rune, style TextStyle) {
	if x < 0 || x >= c.width || y < 0 || y >= len(c.rows) {
		return
	}
	cell := c.rows[y][x]
	cell.set = true
	cell.Char = ch
	cell.Style = style
	c.rows[y][x] = cell
}

// SubView returns a handle that writes relative to the rectangle
// (x, y, w, h). When clip is true, writes outside the rectangle are
// dropped; when false they fall through to the underlying canvas
// unclipped (used only for deliberate overflow).
func (c *Canvas) SubView(x, y, w, h int, clip bool) *SubView {
	return &SubView{canvas: c, x: x, y: y, w: w, h: h, clip: clip}
}

// SubView is a canvas handle scoped to a rectangle of an underlying canvas.
type SubView struct {
	canvas *Canvas
	x, y   int
	w, h   int
	clip   bool
}

// FillBackground fills a rectangle relative to the subview's origin.
func (s *SubView) FillBackground(x, y, w, h int, color string) {
	if s.clip {
		x, y, w, h = clipRect(x, y, w, h, s.w, s.h)
		if w <= 0 || h <= 0 {
			return
		}
	}
	s.canvas.FillBackground(s.x+x, s.y+y, w, h, color)
}

// WriteText writes text relative to the subview's origin, clipped to its
// rectangle when clip is enabled.
func (s *SubView) WriteText(x, y int, text string, style TextStyle) {
	if s.clip {
		if y < 0 || y >= s.h || x >= s.w {
			return
		}
		// Clip the leading edge by trimming characters that would fall
		// left of the subview, and rely on WriteText's own right-edge
		// clipping (driven by canvas width) for the trailing edge — so
		// give the underlying canvas a narrowed view via a temporary
		// width-limited write.
		if x < 0 {
			text = trimLeadingCells(text, -x)
			x = 0
		}
	}
	s.canvas.writeTextBounded(s.x+x, s.y+y, text, style, s.x+s.w, s.clip)
}

// writeTextBounded is WriteText with an optional right-edge bound distinct
// from the canvas's own width, used by clipped subviews.
func (c *Canvas) writeTextBounded(x, y int, text string, style TextStyle, rightBound int, bounded bool) {
	if !bounded {
		c.WriteText(x, y, text, style)
		return
	}
	if y < 0 {
		return
	}
	c.growTo(y + 1)
	col := x
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if col >= rightBound || col >= c.width {
			break
		}
		cluster := gr.Runes()
		if len(cluster) == 0 {
			continue
		}
		base := cluster[0]
		width := runewidth.RuneWidth(base)
		if width <= 0 {
			width = 1
		}
		if col >= 0 {
			c.set(col, y, base, style)
			if width == 2 && col+1 < rightBound && col+1 < c.width {
				c.rows[y][col+1] = Cell{set: true, Char: 0, Style: style}
			}
		}
		col += width
	}
}

func clipRect(x, y, w, h, maxW, maxH int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > maxW {
		w = maxW - x
	}
	if y+h > maxH {
		h = maxH - y
	}
	return x, y, w, h
}

func trimLeadingCells(text string, n int) string {
	col := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if col >= n {
			start, _ := gr.Positions()
			return text[start:]
		}
		cluster := gr.Runes()
		w := 1
		if len(cluster) > 0 {
			if rw := runewidth.RuneWidth(cluster[0]); rw > 0 {
				w = rw
			}
		}
		col += w
	}
	return ""
}
