package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TextMeasure builds a MeasureFunc reporting the wrapped dimensions of a
// text run for a given available width: width is the longest produced
// line, height the number of lines after wrapping. Text-drawing leaf
// components install this on their node so flexbox can size them
// intrinsically.
//
// Wrapping is greedy at word boundaries, falling back to a hard break
// when a single word exceeds the available width. Widths are display
// cells (East-Asian wide runes count 2), measured per grapheme cluster
// so combining marks and ZWJ sequences don't inflate the count.
func TextMeasure(text string) MeasureFunc {
	return func(available Size) Size {
		if text == "" {
			return Size{}
		}
		maxWidth := available.Width
		if maxWidth <= 0 {
			maxWidth = 1
		}

		longest, lines := 0, 0
		for _, paragraph := range strings.Split(text, "\n") {
			w, n := wrapParagraph(paragraph, maxWidth)
			if w > longest {
				longest = w
			}
			lines += n
		}
		return Size{Width: longest, Height: lines}
	}
}

// wrapParagraph returns the widest line and the line count produced by
// wrapping one newline-free paragraph into maxWidth cells.
func wrapParagraph(s string, maxWidth int) (widest, lines int) {
	if s == "" {
		return 0, 1
	}
	lineWidth := 0
	lines = 1
	for _, word := range strings.Split(s, " ") {
		ww := StringWidth(word)
		sep := 0
		if lineWidth > 0 {
			sep = 1
		}
		switch {
		case lineWidth+sep+ww <= maxWidth:
			lineWidth += sep + ww
		case ww <= maxWidth:
			if lineWidth > widest {
				widest = lineWidth
			}
			lines++
			lineWidth = ww
		default:
			// A single word wider than the line: hard-break it.
			if lineWidth > 0 {
				if lineWidth > widest {
					widest = lineWidth
				}
				lines++
				lineWidth = 0
			}
			rem := ww
			for rem > maxWidth {
				if maxWidth > widest {
					widest = maxWidth
				}
				lines++
				rem -= maxWidth
			}
			lineWidth = rem
		}
	}
	if lineWidth > widest {
		widest = lineWidth
	}
	return widest, lines
}

// StringWidth reports the display-cell width of s, counting per grapheme
// cluster: a cluster occupies its base rune's East-Asian width, so
// combining marks and ZWJ sequences don't add cells.
func StringWidth(s string) int {
	total := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 0 {
			continue
		}
		w := runewidth.RuneWidth(runes[0])
		if w <= 0 {
			w = 1
		}
		total += w
	}
	return total
}
