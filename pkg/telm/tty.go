package telm

import (
	"time"

	"src.telm.sh/pkg/term"
)

// TTY abstracts the terminal a Program runs on. The concrete implementation
// used with a real terminal is returned by newTTY; tests substitute a fake.
//
// Write buffers; nothing reaches the terminal until Flush. The mode toggles
// (EnterAltScreen, SetMouse, ...) take effect immediately and are idempotent:
// asking for a state the terminal is already in is a no-op.
type TTY interface {
	// EnableRaw puts the terminal into raw mode, remembering the previous
	// state. DisableRaw restores it. Calling DisableRaw without a prior
	// EnableRaw is a no-op.
	EnableRaw() error
	DisableRaw() error

	EnterAltScreen() error
	LeaveAltScreen() error
	SetMouse(on bool) error
	SetBracketedPaste(on bool) error
	SetFocusChange(on bool) error
	SetCursorVisible(on bool) error

	// Poll waits up to timeout for the next terminal event. It returns
	// (nil, nil) when the timeout expires with no event, and a non-nil
	// error only for real failures.
	Poll(timeout time.Duration) (term.Event, error)

	Write(p []byte) (int, error)
	Flush() error

	// Size reports the current terminal dimensions.
	Size() (cols, rows int)

	Close() error
}
