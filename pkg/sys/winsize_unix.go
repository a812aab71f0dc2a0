//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

// SIGWINCH is the window size change signal.
const SIGWINCH = unix.SIGWINCH

// WinSize queries the size of the terminal referenced by the given file. If
// the query fails, or if the terminal reports a zero dimension (which happens
// on serial consoles), it falls back to 80x24.
func WinSize(file *os.File) (cols, rows int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	if ws.Col == 0 {
		ws.Col = 80
	}
	if ws.Row == 0 {
		ws.Row = 24
	}
	return int(ws.Col), int(ws.Row)
}
