package term

import "strconv"

// Control sequences the runtime emits. Everything else that reaches the
// terminal comes from view strings, which pass through untouched.
const (
	SeqEnterAltScreen = "\x1b[?1049h"
	SeqLeaveAltScreen = "\x1b[?1049l"

	SeqShowCursor = "\x1b[?25h"
	SeqHideCursor = "\x1b[?25l"

	// Button presses, drag tracking, all-motion tracking and SGR encoding.
	SeqEnableMouse  = "\x1b[?1000h\x1b[?1002h\x1b[?1003h\x1b[?1006h"
	SeqDisableMouse = "\x1b[?1006l\x1b[?1003l\x1b[?1002l\x1b[?1000l"

	SeqEnableBracketedPaste  = "\x1b[?2004h"
	SeqDisableBracketedPaste = "\x1b[?2004l"

	SeqEnableFocusChange  = "\x1b[?1004h"
	SeqDisableFocusChange = "\x1b[?1004l"

	SeqClearScreen = "\x1b[2J"
	SeqCursorHome  = "\x1b[H"
	SeqClearToEnd  = "\x1b[J"
	SeqCursorCol0  = "\r"
)

// SeqCursorUp moves the cursor up n lines. It is a no-op for n <= 0.
func SeqCursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + strconv.Itoa(n) + "A"
}
