//go:build unix

package term

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"src.telm.sh/pkg/ui"
)

// Maps the input byte sequence to the expected decoded event.
var eventTests = []struct {
	name  string
	input string
	want  Event
}{
	// Simple runes.
	{"ascii", "x", K('x')},
	{"utf8 rune", "你", K('你')},
	{"tab", "\t", K(ui.Tab)},
	{"enter", "\n", K(ui.Enter)},
	{"backspace", "\x7f", K(ui.Backspace)},

	// Control characters.
	{"ctrl-a", "\x01", K('A', ui.Ctrl)},
	{"ctrl-z", "\x1a", K('Z', ui.Ctrl)},
	{"ctrl-backtick", "\x00", K('`', ui.Ctrl)},
	{"ctrl-6", "\x1e", K('6', ui.Ctrl)},
	{"ctrl-slash", "\x1f", K('/', ui.Ctrl)},

	// Lone escape and Alt-modified runes.
	{"lone escape", "\x1b", K('[', ui.Ctrl)},
	{"alt-a", "\x1ba", K('a', ui.Alt)},
	{"alt-ctrl-a", "\x1b\x01", K('A', ui.Alt, ui.Ctrl)},

	// G3-style sequences.
	{"g3 up", "\x1bOA", K(ui.Up)},
	{"g3 f1", "\x1bOP", K(ui.F1)},
	{"g3 f4", "\x1bOS", K(ui.F4)},
	{"g3 home", "\x1bOH", K(ui.Home)},
	{"incomplete g3", "\x1bO", K('o', ui.Alt)},

	// CSI-style keys.
	{"csi up", "\x1b[A", K(ui.Up)},
	{"csi end", "\x1b[F", K(ui.End)},
	{"csi shift-tab", "\x1b[Z", K(ui.Tab, ui.Shift)},
	{"csi ctrl-up", "\x1b[1;5A", K(ui.Up, ui.Ctrl)},
	{"csi shift-alt-left", "\x1b[1;4D", K(ui.Left, ui.Shift, ui.Alt)},
	{"csi pageup", "\x1b[5~", K(ui.PageUp)},
	{"csi ctrl-pageup", "\x1b[5;5~", K(ui.PageUp, ui.Ctrl)},
	{"csi delete", "\x1b[3~", K(ui.Delete)},
	{"csi f5", "\x1b[15~", K(ui.F5)},
	{"csi f12", "\x1b[24~", K(ui.F12)},
	{"csi num2 alt-tab", "\x1b[27;3;9~", K(ui.Tab, ui.Alt)},
	{"incomplete csi", "\x1b[", K('[', ui.Alt)},

	// rxvt-style double escape signals Alt.
	{"rxvt alt-up", "\x1b\x1b[A", K(ui.Up, ui.Alt)},
	{"rxvt alt-f1", "\x1b\x1bOP", K(ui.F1, ui.Alt)},

	// Focus reporting.
	{"focus in", "\x1b[I", FocusEvent{Gained: true}},
	{"focus out", "\x1b[O", FocusEvent{Gained: false}},

	// SGR mouse reporting.
	{
		"sgr left press", "\x1b[<0;10;5M",
		MouseEvent{Kind: MouseDown, Button: 0, Col: 10, Row: 5},
	},
	{
		"sgr left release", "\x1b[<0;10;5m",
		MouseEvent{Kind: MouseUp, Button: 0, Col: 10, Row: 5},
	},
	{
		"sgr right press", "\x1b[<2;1;1M",
		MouseEvent{Kind: MouseDown, Button: 2, Col: 1, Row: 1},
	},
	{
		"sgr ctrl press", "\x1b[<16;3;4M",
		MouseEvent{Kind: MouseDown, Button: 0, Col: 3, Row: 4, Mod: ui.Ctrl},
	},
	{
		"sgr scroll up", "\x1b[<64;3;4M",
		MouseEvent{Kind: MouseScrollUp, Button: -1, Col: 3, Row: 4},
	},
	{
		"sgr scroll down", "\x1b[<65;3;4M",
		MouseEvent{Kind: MouseScrollDown, Button: -1, Col: 3, Row: 4},
	},
	{
		"sgr drag", "\x1b[<32;3;4M",
		MouseEvent{Kind: MouseDrag, Button: 0, Col: 3, Row: 4},
	},
	{
		"sgr motion", "\x1b[<35;3;4M",
		MouseEvent{Kind: MouseMoved, Button: -1, Col: 3, Row: 4},
	},

	// Legacy X10 mouse reporting: three bytes offset by 32.
	{
		"x10 left press", "\x1b[M\x20\x21\x22",
		MouseEvent{Kind: MouseDown, Button: 0, Col: 1, Row: 2},
	},
	{
		"x10 release", "\x1b[M\x23\x21\x22",
		MouseEvent{Kind: MouseUp, Button: -1, Col: 1, Row: 2},
	},

	// Bracketed paste.
	{"paste", "\x1b[200~hello\x1b[201~", PasteEvent{Text: "hello"}},
	{"paste with newline", "\x1b[200~a\nb\x1b[201~", PasteEvent{Text: "a\nb"}},
	{"empty paste", "\x1b[200~\x1b[201~", PasteEvent{Text: ""}},

	// Malformed sequences normalize to a Null key, never an error.
	{"bad csi", "\x1b[x", KeyEvent{Rune: ui.Null}},
	{"bad g3", "\x1bOx", KeyEvent{Rune: ui.Null}},
	{"bad sgr mouse", "\x1b[<0;10M", KeyEvent{Rune: ui.Null}},
	{"stray paste end", "\x1b[201~", KeyEvent{Rune: ui.Null}},
	{"bad xterm modifier", "\x1b[1;99A", KeyEvent{Rune: ui.Null}},
}

func TestReadEvent(t *testing.T) {
	for _, tc := range eventTests {
		t.Run(tc.name, func(t *testing.T) {
			rd, w := setupReader(t)
			w.WriteString(tc.input)

			ev, err := rd.ReadEvent(time.Second)
			if err != nil {
				t.Fatalf("ReadEvent -> error %v, want nil", err)
			}
			if diff := cmp.Diff(tc.want, ev); diff != "" {
				t.Errorf("event (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadEvent_ConsecutiveEvents(t *testing.T) {
	rd, w := setupReader(t)
	w.WriteString("ab\x1b[A")

	want := []Event{K('a'), K('b'), K(ui.Up)}
	for i, wantEv := range want {
		ev, err := rd.ReadEvent(time.Second)
		if err != nil {
			t.Fatalf("event %d: error %v", i, err)
		}
		if diff := cmp.Diff(wantEv, ev); diff != "" {
			t.Errorf("event %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestReadEvent_Timeout(t *testing.T) {
	rd, _ := setupReader(t)
	_, err := rd.ReadEvent(time.Millisecond)
	if err != ErrTimeout {
		t.Errorf("ReadEvent on empty input -> %v, want ErrTimeout", err)
	}
}

func TestReadEvent_Wake(t *testing.T) {
	rd, _ := setupReader(t)
	rd.Wake()
	_, err := rd.ReadEvent(time.Second)
	if err != ErrWake {
		t.Errorf("ReadEvent after Wake -> %v, want ErrWake", err)
	}
}

func setupReader(t *testing.T) (Reader, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close(); w.Close() })
	rd, err := NewReader(r)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(rd.Close)
	return rd, w
}
