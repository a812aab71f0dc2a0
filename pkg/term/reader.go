package term

import (
	"errors"
	"os"
	"time"
)

// ErrStopped is returned by a Reader when Close is called during an
// outstanding ReadEvent.
var ErrStopped = errors.New("stopped")

// ErrTimeout is returned by ReadEvent when no event arrived within the
// requested window. Callers treat it as "nothing happened", never as a
// fabricated event.
var ErrTimeout = errors.New("timed out")

// ErrWake is returned by ReadEvent when Wake was called during the wait.
// The terminal backend uses this to interrupt a poll when the window size
// changes.
var ErrWake = errors.New("woken up")

// Reader decodes terminal escape sequences into events.
type Reader interface {
	// ReadEvent reads a single event from the terminal, waiting up to
	// timeout for the first byte. A negative timeout means no timeout.
	// When nothing arrives in the window it returns ErrTimeout.
	ReadEvent(timeout time.Duration) (Event, error)
	// Wake interrupts an outstanding or the next ReadEvent call, which
	// returns ErrWake.
	Wake()
	// Close releases resources associated with the Reader. Any outstanding
	// ReadEvent call is aborted, returning ErrStopped. It does not close
	// the underlying file.
	Close()
}

// NewReader creates a new Reader on the given terminal file.
func NewReader(f *os.File) (Reader, error) {
	return newReader(f)
}
