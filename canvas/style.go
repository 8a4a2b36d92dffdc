package canvas

import "github.com/charmbracelet/lipgloss"

// Weight is the font weight of a styled character.
type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
	WeightLight
)

// TextStyle carries the visual attributes of a single foreground character.
type TextStyle struct {
	Color     string // empty means terminal default
	Weight    Weight
	Underline bool
}

// resolvedColor converts a named/hex color into the SGR foreground or
// background escape body lipgloss would emit for it. Empty input resolves
// to the empty string, meaning "no color set".
func resolvedColor(color string, background bool) string {
	if color == "" {
		return ""
	}
	c := lipgloss.Color(color)
	style := lipgloss.NewStyle()
	if background {
		style = style.Background(c)
	} else {
		style = style.Foreground(c)
	}
	// Render a single space and extract the SGR sequence lipgloss produced;
	// this reuses lipgloss's color-profile-aware resolution instead of a
	// hand-rolled hex/ANSI-256 table.
	rendered := style.Render(" ")
	return extractSGR(rendered)
}

// extractSGR pulls the raw parameter body out of a lipgloss-rendered
// "\x1b[<params>m ... \x1b[0m" string.
func extractSGR(s string) string {
	const esc = "\x1b["
	start := -1
	for i := 0; i+len(esc) <= len(s); i++ {
		if s[i:i+len(esc)] == esc {
			start = i + len(esc)
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := start
	for end < len(s) && s[end] != 'm' {
		end++
	}
	if end >= len(s) {
		return ""
	}
	return s[start:end]
}
