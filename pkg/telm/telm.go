// Package telm implements an Elm-style runtime for terminal UIs: a serial
// event loop that drives a user-supplied state machine by delivering
// terminal events, timer fires and command results to its update function,
// re-rendering the view after every change.
//
// A program is built from a Model and run with a Program:
//
//	model := &counter{}
//	final, err := telm.New(model).AltScreen().Run()
//
// The runtime owns the terminal while Run is executing and guarantees that
// the terminal is restored on every exit path, including panics in model
// code and failures of the terminal itself.
package telm

import (
	"src.telm.sh/pkg/logutil"
	"src.telm.sh/pkg/term"
)

var logger = logutil.GetLogger("[telm] ")

// Msg is an atomic semantic event consumed by a Model's Update method. The
// runtime never inspects messages; it only moves them around. Messages must
// be safe to move across goroutines, since async commands and workers
// produce them off the loop.
type Msg = any

// Model is the contract a user program implements.
//
// The runtime owns the model for the duration of Run and calls its methods
// from a single goroutine, so implementations need no locking. State must
// only be mutated inside Update.
type Model interface {
	// Init returns the one-shot startup effect, or nil for none.
	Init() Cmd
	// Update applies one message to the state and returns a follow-up
	// effect, or nil for none.
	Update(msg Msg) Cmd
	// View renders the current state to a styled text frame.
	View() string
	// HandleEvent translates a terminal event into a message, or returns
	// nil to decline the event.
	HandleEvent(ev term.Event) Msg
	// Subscriptions declares which recurring message sources should be
	// active given the current state.
	Subscriptions() Sub
}

// Filter is a global pre-update hook. When installed, every message from
// every source (terminal events, command results, tick fires, subscription
// fires) passes through it before reaching Update. Returning nil drops the
// message silently; returning a different message substitutes it.
type Filter func(m Model, msg Msg) Msg
