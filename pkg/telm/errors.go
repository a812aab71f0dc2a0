package telm

import (
	"errors"
	"fmt"
)

// ErrNotInteractive indicates that interactive behavior was requested but
// the host is not an interactive terminal (stdin or stdout is not a TTY, a
// CI indicator is set, or $ACCESSIBLE is set). Programs still run in this
// situation; they take the accessible output path.
var ErrNotInteractive = errors.New("not an interactive terminal")

// ErrCancelled is a user-visible condition reported by higher-level widgets
// when the operator aborts an interaction. The runtime itself never produces
// it; it is defined here so that widget layers and programs agree on one
// value.
var ErrCancelled = errors.New("cancelled")

// ProcessError wraps the failure of a child process run by a RunProcess
// command: either the child could not be spawned, or it exited unsuccessfully.
type ProcessError struct {
	Path string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("run process %s: %v", e.Path, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
