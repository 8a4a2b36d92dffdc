package driver

import (
	"bufio"

	wterm "github.com/weave-tui/weave/term"
)

// inputParser turns a raw byte stream from the TTY into term.Event values,
// adapted from pkg/lotus/terminal/input.go's escape-sequence state
// machine, generalized from that package's single ASCII-byte KeyEvent
// into a richer shape (code, modifiers, kind) and extended to parse SGR
// mouse reports, which pkg/lotus/terminal filters out instead of
// decoding.
type inputParser struct {
	r           *bufio.Reader
	filterMouse bool
}

func newInputParser(r *bufio.Reader, filterMouse bool) *inputParser {
	return &inputParser{r: r, filterMouse: filterMouse}
}

// Next blocks for the next byte(s) of input and returns the event they
// decode to, or ok=false if the sequence was consumed but produced no
// deliverable event (e.g. a filtered mouse report).
func (p *inputParser) Next() (wterm.Event, bool, error) {
	r, _, err := p.r.ReadRune()
	if err != nil {
		return wterm.Event{}, false, err
	}

	switch r {
	case 3: // Ctrl-C
		return wterm.Event{Payload: wterm.KeyEvent{Code: wterm.KeyCtrlC, Modifiers: wterm.ModCtrl, Kind: wterm.Press}}, true, nil
	case 4: // Ctrl-D
		return wterm.Event{Payload: wterm.KeyEvent{Code: wterm.KeyCtrlD, Rune: 'd', Modifiers: wterm.ModCtrl, Kind: wterm.Press}}, true, nil
	case 13, 10:
		return wterm.Event{Payload: wterm.KeyEvent{Code: wterm.KeyEnter, Kind: wterm.Press}}, true, nil
	case 127, 8:
		return wterm.Event{Payload: wterm.KeyEvent{Code: wterm.KeyBackspace, Kind: wterm.Press}}, true, nil
	case 9:
		return wterm.Event{Payload: wterm.KeyEvent{Code: wterm.KeyTab, Kind: wterm.Press}}, true, nil
	case 27:
		return p.readEscapeSequence()
	}

	if r < 32 {
		// Other control characters: surface as Ctrl+<letter>.
		return wterm.Event{Payload: wterm.KeyEvent{Code: wterm.KeyRune, Rune: r + 'a' - 1, Modifiers: wterm.ModCtrl, Kind: wterm.Press}}, true, nil
	}

	return wterm.Event{Payload: wterm.KeyEvent{Code: wterm.KeyRune, Rune: r, Kind: wterm.Press}}, true, nil
}

func (p *inputParser) readEscapeSequence() (wterm.Event, bool, error) {
	buf := make([]byte, 0, 16)
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			return wterm.Event{}, false, err
		}
		buf = append(buf, b)
		seq := string(buf)

		switch seq {
		case "[A":
			return keyEv(wterm.KeyUp), true, nil
		case "[B":
			return keyEv(wterm.KeyDown), true, nil
		case "[C":
			return keyEv(wterm.KeyRight), true, nil
		case "[D":
			return keyEv(wterm.KeyLeft), true, nil
		case "[H", "[1~":
			return keyEv(wterm.KeyHome), true, nil
		case "[F", "[4~":
			return keyEv(wterm.KeyEnd), true, nil
		case "[3~":
			return keyEv(wterm.KeyDelete), true, nil
		case "[5~":
			return keyEv(wterm.KeyPageUp), true, nil
		case "[6~":
			return keyEv(wterm.KeyPageDown), true, nil
		}

		if len(buf) >= 2 && buf[0] == '[' && buf[1] == '<' {
			if b == 'M' || b == 'm' {
				return p.decodeSGRMouse(buf, b)
			}
			if len(buf) > 32 {
				return wterm.Event{}, false, nil
			}
			continue
		}

		if len(buf) == 1 && buf[0] != '[' {
			// A lone ESC followed by a non-CSI byte: Alt+<key>.
			return wterm.Event{Payload: wterm.KeyEvent{Code: wterm.KeyRune, Rune: rune(buf[0]), Modifiers: wterm.ModAlt, Kind: wterm.Press}}, true, nil
		}

		if len(buf) > 16 {
			return wterm.Event{}, false, nil
		}
	}
}

func keyEv(code wterm.KeyCode) wterm.Event {
	return wterm.Event{Payload: wterm.KeyEvent{Code: code, Kind: wterm.Press}}
}

// decodeSGRMouse parses "\x1b[<Cb;Cx;CyM" / "...m" reports (SGR mouse
// mode), returned when the parser was built with filterMouse false (the
// driver's WithMouseFilter(false)); otherwise the report is swallowed, matching
// pkg/lotus/terminal's default mouse-filtering behavior.
func (p *inputParser) decodeSGRMouse(buf []byte, final byte) (wterm.Event, bool, error) {
	if p.filterMouse {
		return wterm.Event{}, false, nil
	}
	body := string(buf[2 : len(buf)-1]) // strip "[<" and the final M/m
	var cb, cx, cy int
	n, _ := sscanMouse(body, &cb, &cx, &cy)
	if n != 3 {
		return wterm.Event{}, false, nil
	}
	btn := wterm.MouseButton(cb & 0x3)
	kind := wterm.MouseDown
	switch {
	case cb&32 != 0 && cb&0x3 != 3:
		kind = wterm.MouseDrag
	case cb&32 != 0:
		kind = wterm.MouseMove
	case cb&64 != 0:
		if cb&1 != 0 {
			kind = wterm.MouseScrollDown
		} else {
			kind = wterm.MouseScrollUp
		}
	case final == 'm':
		kind = wterm.MouseUp
	}
	return wterm.Event{Payload: wterm.MouseEvent{Kind: kind, Button: btn, Column: cx - 1, Row: cy - 1}}, true, nil
}

// sscanMouse parses "Cb;Cx;Cy" without pulling in fmt.Sscanf's reflection
// overhead on the input hot path.
func sscanMouse(s string, cb, cx, cy *int) (int, error) {
	vals := [3]*int{cb, cx, cy}
	idx := 0
	cur := 0
	started := false
	for i := 0; i < len(s) && idx < 3; i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			cur = cur*10 + int(c-'0')
			started = true
			continue
		}
		if c == ';' {
			if started {
				*vals[idx] = cur
				idx++
				cur = 0
				started = false
			}
			continue
		}
	}
	if started && idx < 3 {
		*vals[idx] = cur
		idx++
	}
	return idx, nil
}
