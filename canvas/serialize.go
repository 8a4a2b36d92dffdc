package canvas

import "strings"

// LineEnding selects the row terminator used when serializing to ANSI.
// Raw mode needs an explicit carriage return since the terminal driver is
// no longer translating "\n" into "\r\n" for us.
type LineEnding int

const (
	LineEndingCooked LineEnding = iota // "\n"
	LineEndingRaw                      // "\r\n"
)

func (l LineEnding) String() string {
	if l == LineEndingRaw {
		return "\r\n"
	}
	return "\n"
}

const sgrReset = "\x1b[0m"

// ToANSI serializes the canvas row-by-row, top to bottom, emitting the
// minimal sequence of SGR transitions needed as background, foreground,
// weight, and underline change cell to cell. Trailing empty cells in a
// row are skipped.
func (c *Canvas) ToANSI(ending LineEnding) string {
	var b strings.Builder
	var curBG, curFG string
	var curWeight Weight
	var curUnderline bool
	open := false

	reset := func() {
		if open {
			b.WriteString(sgrReset)
			open = false
		}
		curBG, curFG = "", ""
		curWeight = WeightNormal
		curUnderline = false
	}

	for y, row := range c.rows {
		lastNonEmpty := -1
		for x := len(row) - 1; x >= 0; x-- {
			if !row[x].Empty() {
				lastNonEmpty = x
				break
			}
		}
		for x := 0; x <= lastNonEmpty; x++ {
			cell := row[x]
			bg := cell.Background
			fg := cell.Style.Color
			weight := cell.Style.Weight
			underline := cell.Style.Underline

			if bg != curBG {
				// Background changes always reset first: SGR 0 then set
				// whatever is newly active.
				reset()
				if bg != "" {
					writeParam(&b, &open, resolvedColor(bg, true))
				}
				curBG = bg
				if fg != "" {
					writeParam(&b, &open, resolvedColor(fg, false))
					curFG = fg
				}
				if weight != WeightNormal {
					writeWeight(&b, &open, weight)
					curWeight = weight
				}
				if underline {
					writeParam(&b, &open, "4")
					curUnderline = true
				}
			} else {
				if fg != curFG {
					if fg == "" {
						writeParam(&b, &open, "39") // back to the default foreground
					} else {
						writeParam(&b, &open, resolvedColor(fg, false))
					}
					curFG = fg
				}
				if weight != curWeight {
					// Weight transitions reset-then-set since SGR has no
					// single "cancel bold, apply light" escape.
					resetWeight(&b, &open)
					writeWeight(&b, &open, weight)
					curWeight = weight
				}
				if underline != curUnderline {
					if underline {
						writeParam(&b, &open, "4")
					} else {
						writeParam(&b, &open, "24")
					}
					curUnderline = underline
				}
			}

			ch := cell.Char
			if ch == 0 {
				ch = ' '
			}
			b.WriteRune(ch)
		}
		reset()
		if y < len(c.rows)-1 {
			b.WriteString(ending.String())
		}
	}
	return b.String()
}

func writeParam(b *strings.Builder, open *bool, param string) {
	if param == "" {
		return
	}
	b.WriteString("\x1b[")
	b.WriteString(param)
	b.WriteByte('m')
	*open = true
}

func writeWeight(b *strings.Builder, open *bool, w Weight) {
	switch w {
	case WeightBold:
		writeParam(b, open, "1")
	case WeightLight:
		writeParam(b, open, "2")
	}
}

func resetWeight(b *strings.Builder, open *bool) {
	writeParam(b, open, "22")
}

// ToPlainText serializes the canvas as raw UTF-8 characters with no
// escapes: spaces fill empty cells in the middle of a row, and trailing
// empty cells are trimmed.
func (c *Canvas) ToPlainText() string {
	var b strings.Builder
	for y, row := range c.rows {
		lastNonEmpty := -1
		for x := len(row) - 1; x >= 0; x-- {
			if !row[x].Empty() {
				lastNonEmpty = x
				break
			}
		}
		for x := 0; x <= lastNonEmpty; x++ {
			ch := row[x].Char
			if ch == 0 {
				ch = ' '
			}
			b.WriteRune(ch)
		}
		if y < len(c.rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
