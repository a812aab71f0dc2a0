package telm

import "sync/atomic"

// Worker runs a function on its own goroutine and holds its result until
// collected. It is a convenience for models that want to poll for completion
// from Update rather than receive the result as an Async message.
type Worker struct {
	ch   chan Msg
	done atomic.Bool
}

// Spawn starts f on a new goroutine.
func Spawn(f func() Msg) *Worker {
	w := &Worker{ch: make(chan Msg, 1)}
	go func() {
		w.ch <- f()
		w.done.Store(true)
	}()
	return w
}

// TryRecv returns the worker's result if it is available, without blocking.
// The result can be collected once.
func (w *Worker) TryRecv() (Msg, bool) {
	select {
	case msg := <-w.ch:
		return msg, true
	default:
		return nil, false
	}
}

// IsFinished reports whether the worker's function has returned. The result
// may not yet be collected.
func (w *Worker) IsFinished() bool { return w.done.Load() }
