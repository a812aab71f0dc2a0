// Package term provides terminal primitives: the normalized event vocabulary
// produced by a terminal, an escape-sequence reader that decodes raw bytes
// into events, raw mode control, and the control sequences the runtime
// emits. Only Unix-like platforms with VT-style terminals are supported.
package term

import "src.telm.sh/pkg/ui"

// Event is one of the things that can happen on a terminal: a key press, a
// mouse action, a resize, a focus change, or a bracketed paste. A user
// program never sees anything below this vocabulary.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

func (KeyEvent) isEvent() {}

func (e KeyEvent) String() string { return ui.Key(e).String() }

// MouseKind enumerates what a mouse event reports.
type MouseKind uint8

// Values for MouseKind.
const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
	MouseMoved
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

var mouseKindNames = [...]string{
	"Down", "Up", "Drag", "Moved",
	"ScrollUp", "ScrollDown", "ScrollLeft", "ScrollRight",
}

func (k MouseKind) String() string {
	if int(k) < len(mouseKindNames) {
		return mouseKindNames[k]
	}
	return "(bad mouse kind)"
}

// MouseEvent represents a mouse action. Col and Row are 1-based. Button is
// 0-based, and -1 when the event does not carry a button (motion and
// scrolls).
type MouseEvent struct {
	Kind     MouseKind
	Button   int
	Col, Row int
	Mod      ui.Mod
}

func (MouseEvent) isEvent() {}

// ResizeEvent is reported when the terminal window changes size.
type ResizeEvent struct {
	Cols, Rows int
}

func (ResizeEvent) isEvent() {}

// FocusEvent is reported when the terminal gains or loses focus, if focus
// reporting has been enabled.
type FocusEvent struct {
	Gained bool
}

func (FocusEvent) isEvent() {}

// PasteEvent carries the payload of one bracketed paste.
type PasteEvent struct {
	Text string
}

func (PasteEvent) isEvent() {}
