//go:build unix

package term

import (
	"fmt"
	"os"

	"src.telm.sh/pkg/sys"
)

// SetupRaw puts the terminal in raw mode: no line buffering, no echo, and no
// signal generation, so that ^C and friends arrive as key events. CR-to-NL
// input translation is kept on, so the Enter key reads as '\n'.
//
// It returns a function that restores the previous terminal attributes, and
// any error during setup. On Unix all fds referring to the same terminal are
// equivalent, so the input file is used for changing attributes.
func SetupRaw(in *os.File) (restore func() error, err error) {
	fd := int(in.Fd())
	attrs, err := sys.TermiosFromFd(fd)
	if err != nil {
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}

	saved := attrs.Copy()

	attrs.SetICanon(false)
	attrs.SetEcho(false)
	attrs.SetISig(false)
	attrs.SetIXon(false)
	attrs.SetICRNL(true)
	attrs.SetVMin(1)
	attrs.SetVTime(0)

	if err := attrs.ApplyToFd(fd); err != nil {
		return nil, fmt.Errorf("set terminal attributes: %w", err)
	}

	return func() error { return saved.ApplyToFd(fd) }, nil
}
