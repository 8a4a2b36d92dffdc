// Package term defines the terminal event vocabulary shared by the render
// driver and the built-in terminal-events hook: key presses, fullscreen
// mouse events, and resize notifications. Parsing the raw escape sequences
// that produce these events lives in the driver; this package only names
// the resulting shapes, grounded on pkg/lotus/terminal's KeyEvent and
// pkg/lotus/runtime's OnResize/OnKey plumbing but widened to a richer
// event set (modifiers, key kind, mouse).
package term

// KeyCode identifies a key independent of the modifiers held with it.
type KeyCode int

const (
	KeyRune KeyCode = iota // Rune holds the printable character
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrlC
	KeyCtrlD
)

// Modifiers is a bitset of keys held alongside the primary key.
type Modifiers int

const (
	ModNone  Modifiers = 0
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

func (m Modifiers) Has(bit Modifiers) bool { return m&bit != 0 }

// KeyKind distinguishes a fresh key-down from an OS-repeated or released key.
type KeyKind int

const (
	Press KeyKind = iota
	Repeat
	Release
)

// KeyEvent is a single keyboard input, key-repeat, or key-release.
type KeyEvent struct {
	Code      KeyCode
	Rune      rune
	Modifiers Modifiers
	Kind      KeyKind
}

// MouseButton identifies which button a mouse event concerns.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseNone
)

// MouseKind enumerates the shapes a fullscreen mouse event can take.
type MouseKind int

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
	MouseMove
	MouseScrollUp
	MouseScrollDown
)

// MouseEvent is a fullscreen-mode pointer event, column/row 0-indexed.
type MouseEvent struct {
	Kind   MouseKind
	Button MouseButton
	Column int
	Row    int
}

// ResizeEvent reports the terminal's new size in cells.
type ResizeEvent struct {
	Width  int
	Height int
}

// Size is a plain (width, height) pair, used by the terminal-size hook.
type Size struct {
	Width  int
	Height int
}

// Event is the sum type delivered to terminal-events subscribers. Payload
// holds exactly one KeyEvent, MouseEvent or ResizeEvent per delivery;
// callers switch on its concrete type or use KeyOf/MouseOf/ResizeOf.
type Event struct {
	Payload any // KeyEvent | MouseEvent | ResizeEvent
}

func KeyOf(e Event) (KeyEvent, bool) { k, ok := e.Payload.(KeyEvent); return k, ok }
func MouseOf(e Event) (MouseEvent, bool) { m, ok := e.Payload.(MouseEvent); return m, ok }
func ResizeOf(e Event) (ResizeEvent, bool) { r, ok := e.Payload.(ResizeEvent); return r, ok }

// IsCtrlC reports whether this key event is the Ctrl-C interrupt, which the
// driver always intercepts before user callbacks see it.
func (k KeyEvent) IsCtrlC() bool {
	return k.Code == KeyCtrlC || (k.Rune == 'c' && k.Modifiers.Has(ModCtrl))
}
