// Package sys provides thin wrappers around the system facilities the
// terminal backend needs: termios control, readiness waits and window size
// queries. It only supports Unix-like platforms.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsATTY determines whether the given file is a terminal.
func IsATTY(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
