package layout

import "testing"

func TestTextMeasure_SingleLineFits(t *testing.T) {
	m := TextMeasure("hello")
	sz := m(Size{Width: 20, Height: 5})
	if sz.Width != 5 || sz.Height != 1 {
		t.Errorf("measure = %+v, want 5x1", sz)
	}
}

func TestTextMeasure_WrapsAtWordBoundary(t *testing.T) {
	m := TextMeasure("hello world")
	sz := m(Size{Width: 6, Height: 5})
	if sz.Height != 2 {
		t.Errorf("height = %d, want 2 (one word per line)", sz.Height)
	}
	if sz.Width != 5 {
		t.Errorf("width = %d, want 5 (longest wrapped line)", sz.Width)
	}
}

func TestTextMeasure_HardBreaksOversizedWord(t *testing.T) {
	m := TextMeasure("abcdefghij")
	sz := m(Size{Width: 4, Height: 10})
	if sz.Height != 3 {
		t.Errorf("height = %d, want 3 (4+4+2 cells)", sz.Height)
	}
	if sz.Width != 4 {
		t.Errorf("width = %d, want 4", sz.Width)
	}
}

func TestTextMeasure_RespectsExplicitNewlines(t *testing.T) {
	m := TextMeasure("ab\ncdef")
	sz := m(Size{Width: 20, Height: 5})
	if sz.Height != 2 || sz.Width != 4 {
		t.Errorf("measure = %+v, want 4x2", sz)
	}
}

func TestStringWidth_WideRunesCountTwo(t *testing.T) {
	if w := StringWidth("間"); w != 2 {
		t.Errorf("StringWidth(間) = %d, want 2", w)
	}
	if w := StringWidth("ab間"); w != 4 {
		t.Errorf("StringWidth(ab間) = %d, want 4", w)
	}
}

func TestStringWidth_CombiningMarkDoesNotAddCells(t *testing.T) {
	// "e" followed by U+0301 combining acute accent is one cluster, one cell.
	if w := StringWidth("e\u0301"); w != 1 {
		t.Errorf("StringWidth(e+combining accent) = %d, want 1", w)
	}
}
