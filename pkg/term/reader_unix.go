//go:build unix

package term

import (
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"src.telm.sh/pkg/logutil"
	"src.telm.sh/pkg/ui"
)

var logger = logutil.GetLogger("[term] ")

// reader decodes terminal escape sequences into events.
type reader struct {
	fr fileReader
}

func newReader(f *os.File) (*reader, error) {
	fr, err := newFileReader(f)
	if err != nil {
		return nil, err
	}
	return &reader{fr}, nil
}

func (rd *reader) ReadEvent(timeout time.Duration) (Event, error) {
	return readEvent(rd.fr, timeout)
}

func (rd *reader) Wake() {
	rd.fr.Wake()
}

func (rd *reader) Close() {
	rd.fr.Stop()
	rd.fr.Close()
}

// Used within escape sequences to signal end of the current sequence.
const runeEndOfSeq rune = -1

// Timeout for bytes within escape sequences. Modern terminal emulators send
// escape sequences very fast, so 10ms is more than sufficient. SSH
// connections on a slow link might be problematic though.
var keySeqTimeout = 10 * time.Millisecond

// Timeout for bytes within a bracketed paste. Large pastes arrive as one
// uninterrupted stream, but the terminal may need a moment between chunks.
var pasteTimeout = 50 * time.Millisecond

// readRune reads one rune, assembling multi-byte UTF-8 input. The timeout
// applies to the first byte; continuation bytes use keySeqTimeout.
func readRune(rd fileReader, timeout time.Duration) (rune, error) {
	b, err := rd.ReadByteWithTimeout(timeout)
	if err != nil {
		return 0, err
	}
	if b < utf8.RuneSelf {
		return rune(b), nil
	}
	var buf [utf8.UTFMax]byte
	buf[0] = b
	n := 1
	switch {
	case b&0xe0 == 0xc0:
		n = 2
	case b&0xf0 == 0xe0:
		n = 3
	case b&0xf8 == 0xf0:
		n = 4
	}
	for i := 1; i < n; i++ {
		b, err := rd.ReadByteWithTimeout(keySeqTimeout)
		if err != nil {
			return utf8.RuneError, nil
		}
		buf[i] = b
	}
	r, _ := utf8.DecodeRune(buf[:n])
	return r, nil
}

// readEvent decodes one event, waiting up to timeout for its first byte.
// Decoding is total: malformed sequences become a Null key event rather than
// an error, so the only errors are timeouts, wakes, stops and real I/O
// failures.
func readEvent(rd fileReader, timeout time.Duration) (Event, error) {
	r, err := readRune(rd, timeout)
	if err != nil {
		return nil, err
	}

	currentSeq := string(r)
	// Attempts to read a rune within keySeqTimeout. It returns runeEndOfSeq
	// if there is any error; the caller should terminate the current
	// sequence when it sees that value.
	readSeqRune := func() rune {
		r, err := readRune(rd, keySeqTimeout)
		if err != nil {
			return runeEndOfSeq
		}
		currentSeq += string(r)
		return r
	}
	badSeq := func(msg string) Event {
		logger.Printf("%s: %q", msg, currentSeq)
		return KeyEvent{Rune: ui.Null}
	}

	switch r {
	case 0x1b: // ^[ Escape
		r2 := readSeqRune()
		// According to https://unix.stackexchange.com/a/73697, rxvt and
		// derivatives prepend another ESC to a CSI-style or G3-style sequence
		// to signal Alt. If that happens, remember it now; it will be picked
		// up when parsing those two kinds of sequences.
		hasTwoLeadingESC := false
		if r2 == 0x1b {
			hasTwoLeadingESC = true
			r2 = readSeqRune()
		}
		if r2 == runeEndOfSeq {
			// Nothing follows. Taken as a lone Escape.
			return K('[', ui.Ctrl), nil
		}
		switch r2 {
		case '[':
			// CSI style function key sequence.
			return readCSI(rd, readSeqRune, badSeq, hasTwoLeadingESC)
		case 'O':
			// G3 style function key sequence: read one rune.
			r3 := readSeqRune()
			if r3 == runeEndOfSeq {
				// Nothing follows after 'O'. Taken as Alt-o.
				return K('o', ui.Alt), nil
			}
			r, ok := g3Seq[r3]
			if !ok {
				return badSeq("bad G3 sequence"), nil
			}
			k := ui.Key{Rune: r}
			if hasTwoLeadingESC {
				k.Mod |= ui.Alt
			}
			return KeyEvent(k), nil
		default:
			// Something other than '[' or 'O' follows. Taken as an
			// Alt-modified key, possibly also modified by Ctrl.
			k := ctrlModify(r2)
			k.Mod |= ui.Alt
			return KeyEvent(k), nil
		}
	default:
		return KeyEvent(ctrlModify(r)), nil
	}
}

// readCSI decodes the remainder of an ESC [ sequence.
func readCSI(rd fileReader, readSeqRune func() rune, badSeq func(string) Event, alt bool) (Event, error) {
	r := readSeqRune()
	if r == runeEndOfSeq {
		return K('[', ui.Alt), nil
	}

	nums := make([]int, 0, 3)
	var starter rune

	switch r {
	case '<':
		// SGR mouse sequence.
		starter = r
		r = readSeqRune()
	case 'M':
		// Legacy X10 mouse sequence: exactly three bytes follow.
		return readLegacyMouse(readSeqRune, badSeq)
	case 'I':
		return FocusEvent{Gained: true}, nil
	case 'O':
		return FocusEvent{Gained: false}, nil
	}

	for {
		switch {
		case r == ';':
			nums = append(nums, 0)
		case '0' <= r && r <= '9':
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			cur := len(nums) - 1
			nums[cur] = nums[cur]*10 + int(r-'0')
		case r == runeEndOfSeq:
			return badSeq("incomplete CSI sequence"), nil
		default:
			// Treat as a terminator.
			return parseCSITerminated(rd, nums, starter, r, badSeq, alt)
		}
		r = readSeqRune()
	}
}

func parseCSITerminated(rd fileReader, nums []int, starter, last rune, badSeq func(string) Event, alt bool) (Event, error) {
	switch {
	case starter == '<' && (last == 'm' || last == 'M'):
		if len(nums) != 3 {
			return badSeq("bad SGR mouse sequence"), nil
		}
		return sgrMouse(nums[0], nums[1], nums[2], last == 'M'), nil
	case last == '~' && len(nums) == 1 && nums[0] == 200:
		return readPaste(rd)
	case last == '~' && len(nums) == 1 && nums[0] == 201:
		// A stray paste terminator; nothing sensible to report.
		return badSeq("unmatched paste end"), nil
	default:
		k := parseCSIKey(nums, last)
		if k == (ui.Key{}) {
			return badSeq("bad CSI sequence"), nil
		}
		if alt {
			k.Mod |= ui.Alt
		}
		return KeyEvent(k), nil
	}
}

// readPaste collects the payload of a bracketed paste, up to but not
// including the ESC [ 201 ~ terminator. A timeout mid-paste ends the paste
// with what has arrived so far.
func readPaste(rd fileReader) (Event, error) {
	const endMark = "\x1b[201~"
	var sb strings.Builder
	for {
		r, err := readRune(rd, pasteTimeout)
		if err != nil {
			return PasteEvent{Text: sb.String()}, nil
		}
		sb.WriteRune(r)
		if strings.HasSuffix(sb.String(), endMark) {
			return PasteEvent{Text: strings.TrimSuffix(sb.String(), endMark)}, nil
		}
	}
}

// readLegacyMouse decodes the three bytes of an X10-style ESC [ M sequence.
func readLegacyMouse(readSeqRune func() rune, badSeq func(string) Event) (Event, error) {
	cb := readSeqRune()
	if cb == runeEndOfSeq {
		return badSeq("incomplete mouse sequence"), nil
	}
	cx := readSeqRune()
	if cx == runeEndOfSeq {
		return badSeq("incomplete mouse sequence"), nil
	}
	cy := readSeqRune()
	if cy == runeEndOfSeq {
		return badSeq("incomplete mouse sequence"), nil
	}
	b := int(cb) - 32
	ev := MouseEvent{
		Kind: MouseDown, Button: b & 3,
		Col: int(cx) - 32, Row: int(cy) - 32,
		Mod: mouseModify(b),
	}
	if ev.Button == 3 {
		ev.Kind, ev.Button = MouseUp, -1
	}
	return ev, nil
}

// sgrMouse decodes an SGR (1006) mouse report.
func sgrMouse(cb, cx, cy int, press bool) Event {
	ev := MouseEvent{Col: cx, Row: cy, Mod: mouseModify(cb), Button: cb & 3}
	switch {
	case cb&64 != 0:
		// Scroll wheel; the low bits select the direction.
		ev.Button = -1
		switch cb & 3 {
		case 0:
			ev.Kind = MouseScrollUp
		case 1:
			ev.Kind = MouseScrollDown
		case 2:
			ev.Kind = MouseScrollLeft
		default:
			ev.Kind = MouseScrollRight
		}
	case cb&32 != 0:
		// Motion flag.
		if ev.Button == 3 {
			ev.Kind, ev.Button = MouseMoved, -1
		} else {
			ev.Kind = MouseDrag
		}
	case !press:
		ev.Kind = MouseUp
	case ev.Button == 3:
		// A "press" with no button; normalize to motion.
		ev.Kind, ev.Button = MouseMoved, -1
	default:
		ev.Kind = MouseDown
	}
	return ev
}

// ctrlModify determines whether a rune corresponds to a Ctrl-modified key
// and returns the Key the rune represents.
func ctrlModify(r rune) ui.Key {
	switch r {
	case 0x0:
		return ui.K('`', ui.Ctrl) // ^@
	case 0x1e:
		return ui.K('6', ui.Ctrl) // ^^
	case 0x1f:
		return ui.K('/', ui.Ctrl) // ^_
	case ui.Tab, ui.Enter, ui.Backspace: // ^I ^J ^?
		return ui.K(r)
	default:
		// Regular Ctrl sequences.
		if 0x1 <= r && r <= 0x1d {
			return ui.K(r+0x40, ui.Ctrl)
		}
	}
	return ui.K(r)
}

// G3-style key sequences: \eO followed by exactly one character. For
// instance, \eOP is F1.
var g3Seq = map[rune]rune{
	'A': ui.Up, 'B': ui.Down, 'C': ui.Right, 'D': ui.Left,

	// F1-F4: xterm, libvte and tmux
	'P': ui.F1, 'Q': ui.F2,
	'R': ui.F3, 'S': ui.F4,

	// Home and End: libvte
	'H': ui.Home, 'F': ui.End,
}

// Tables for CSI-style key sequences, which are \e[ followed by a list of
// semicolon-delimited numeric arguments, before being concluded by a
// non-numeric, non-semicolon rune.

// CSI-style key sequences identified by their ending rune. For instance,
// \e[A is Up.
var keyByLast = map[rune]ui.Key{
	'A': {Rune: ui.Up}, 'B': {Rune: ui.Down},
	'C': {Rune: ui.Right}, 'D': {Rune: ui.Left},
	'H': {Rune: ui.Home}, 'F': {Rune: ui.End},
	'Z': {Rune: ui.Tab, Mod: ui.Shift},
}

// CSI-style key sequences ending with '~', identified by their only numeric
// argument. For instance, \e[5~ is PageUp. When modified, they take a second
// argument identifying the modifier (see xtermMod); for instance, \e[5;5~
// is Ctrl-PageUp.
var keyByNum0 = map[int]rune{
	1: ui.Home, 2: ui.Insert, 3: ui.Delete, 4: ui.End,
	5: ui.PageUp, 6: ui.PageDown,
	11: ui.F1, 12: ui.F2, 13: ui.F3, 14: ui.F4,
	15: ui.F5, 17: ui.F6, 18: ui.F7, 19: ui.F8,
	20: ui.F9, 21: ui.F10, 23: ui.F11, 24: ui.F12,
}

// CSI-style key sequences ending with '~', with 27 as the first numeric
// argument. For instance, \e[27;9;9~ is Alt-Tab.
var keyByNum2 = map[int]rune{
	9: '\t', 13: '\r',
	33: '!', 35: '#', 39: '\'', 40: '(', 41: ')', 43: '+', 44: ',', 45: '-',
	46: '.',
	48: '0', 49: '1', 50: '2', 51: '3', 52: '4', 53: '5', 54: '6', 55: '7',
	56: '8', 57: '9',
	58: ':', 59: ';', 60: '<', 61: '=', 62: '>', 63: '?',
}

// parseCSIKey parses a CSI-style key sequence. The zero Key signals a parse
// failure.
func parseCSIKey(nums []int, last rune) ui.Key {
	if k, ok := keyByLast[last]; ok {
		if len(nums) == 0 {
			// Unmodified: \e[A (Up)
			return k
		} else if len(nums) == 2 && nums[0] == 1 {
			// Modified: \e[1;5A (Ctrl-Up)
			return xtermModify(k, nums[1])
		}
		return ui.Key{}
	}

	if last == '~' {
		if len(nums) == 1 || len(nums) == 2 {
			if r, ok := keyByNum0[nums[0]]; ok {
				k := ui.Key{Rune: r}
				if len(nums) == 1 {
					// Unmodified: \e[5~ (PageUp)
					return k
				}
				// Modified: \e[5;5~ (Ctrl-PageUp)
				return xtermModify(k, nums[1])
			}
		} else if len(nums) == 3 && nums[0] == 27 {
			if r, ok := keyByNum2[nums[2]]; ok {
				return xtermModify(ui.Key{Rune: r}, nums[1])
			}
		}
	}

	return ui.Key{}
}

// xtermModify applies an xterm modifier parameter. The parameter is one plus
// a bitset of Shift, Alt, Ctrl and Meta.
func xtermModify(k ui.Key, mod int) ui.Key {
	if mod <= 0 || mod > 16 {
		return ui.Key{}
	}
	bits := mod - 1
	if bits&1 != 0 {
		k.Mod |= ui.Shift
	}
	if bits&2 != 0 {
		k.Mod |= ui.Alt
	}
	if bits&4 != 0 {
		k.Mod |= ui.Ctrl
	}
	if bits&8 != 0 {
		k.Mod |= ui.Meta
	}
	return k
}

func mouseModify(n int) ui.Mod {
	var mod ui.Mod
	if n&4 != 0 {
		mod |= ui.Shift
	}
	if n&8 != 0 {
		mod |= ui.Alt
	}
	if n&16 != 0 {
		mod |= ui.Ctrl
	}
	return mod
}
