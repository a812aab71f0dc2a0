//go:build unix

package sys

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForRead blocks until any of the given files is ready to be read, or
// until the timeout elapses. A negative timeout means no timeout. It returns
// a boolean slice indicating which files are ready to be read, and any error
// from the underlying poll. Interruptions by signals are retried internally.
func WaitForRead(timeout time.Duration, files ...*os.File) (ready []bool, err error) {
	fds := make([]unix.PollFd, len(files))
	for i, file := range files {
		fds[i] = unix.PollFd{Fd: int32(file.Fd()), Events: unix.POLLIN}
	}
	for {
		_, err = unix.Poll(fds, pollMs(timeout))
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	ready = make([]bool, len(files))
	for i := range fds {
		ready[i] = fds[i].Revents&(unix.POLLIN|unix.POLLHUP) != 0
	}
	return ready, nil
}

// pollMs converts a timeout to the millisecond count poll(2) wants, rounding
// up so that a positive sub-millisecond timeout does not turn into a busy
// poll.
func pollMs(timeout time.Duration) int {
	if timeout < 0 {
		return -1
	}
	return int((timeout + time.Millisecond - 1) / time.Millisecond)
}
