//go:build unix

package sys

import (
	"golang.org/x/sys/unix"
)

// Termios wraps the terminal attribute set of termios(3).
type Termios unix.Termios

// TermiosFromFd returns the current terminal attributes of the given fd.
func TermiosFromFd(fd int) (*Termios, error) {
	attrs, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	if err != nil {
		return nil, err
	}
	return (*Termios)(attrs), nil
}

// ApplyToFd applies the attribute set to the given fd immediately.
func (t *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, (*unix.Termios)(t))
}

// Copy returns a copy of the attribute set.
func (t *Termios) Copy() *Termios {
	v := *t
	return &v
}

// SetICanon sets the canonical flag, which controls line buffering.
func (t *Termios) SetICanon(v bool) { setFlag(&t.Lflag, unix.ICANON, v) }

// SetEcho sets the echo flag.
func (t *Termios) SetEcho(v bool) { setFlag(&t.Lflag, unix.ECHO, v) }

// SetISig sets the signal-generation flag. When off, ^C and friends are
// delivered as ordinary input bytes instead of raising signals.
func (t *Termios) SetISig(v bool) { setFlag(&t.Lflag, unix.ISIG, v) }

// SetIXon sets the output flow control flag. When off, ^S and ^Q are
// delivered as ordinary input bytes.
func (t *Termios) SetIXon(v bool) { setFlag(&t.Iflag, unix.IXON, v) }

// SetICRNL sets the CR-to-NL input translation flag.
func (t *Termios) SetICRNL(v bool) { setFlag(&t.Iflag, unix.ICRNL, v) }

// SetVMin sets the minimal number of bytes for a non-canonical read.
func (t *Termios) SetVMin(v uint8) { t.Cc[unix.VMIN] = v }

// SetVTime sets the timeout, in deciseconds, for a non-canonical read.
func (t *Termios) SetVTime(v uint8) { t.Cc[unix.VTIME] = v }

// The types of termios flag fields differ across platforms (uint32 on Linux,
// uint64 on the BSDs), hence the type parameter.
func setFlag[T ~uint32 | ~uint64](flag *T, mask T, v bool) {
	if v {
		*flag |= mask
	} else {
		*flag &^= mask
	}
}
