// Package telmtest provides test doubles for running programs against a fake
// terminal with a virtual clock, so that timer-driven behavior can be tested
// deterministically and without sleeping.
package telmtest

import (
	"bytes"
	"sort"
	"time"

	"src.telm.sh/pkg/term"
)

// OpKind identifies a terminal state change recorded by FakeTTY.
type OpKind int

const (
	OpRaw OpKind = iota
	OpAltScreen
	OpMouse
	OpPaste
	OpFocus
	OpCursor
)

func (k OpKind) String() string {
	switch k {
	case OpRaw:
		return "raw"
	case OpAltScreen:
		return "alt-screen"
	case OpMouse:
		return "mouse"
	case OpPaste:
		return "paste"
	case OpFocus:
		return "focus"
	case OpCursor:
		return "cursor"
	}
	return "unknown"
}

// Op is one recorded terminal state change.
type Op struct {
	Kind OpKind
	On   bool
}

type scriptedEvent struct {
	at time.Time
	ev term.Event
}

// FakeTTY implements the runtime's terminal interface against a virtual
// clock. Time advances only inside Poll: by the full timeout when no event
// is due within it, or exactly to the next scripted event's time otherwise.
// Pair a FakeTTY's Now with the program under test so that timers and
// scripted events share one clock.
type FakeTTY struct {
	now    time.Time
	events []scriptedEvent

	cols, rows int

	buf    bytes.Buffer
	frames []string

	ops      []Op
	waits    []time.Duration
	writeErr error
	closed   bool
}

// NewFakeTTY returns a fake terminal of the given size, and a control handle
// for scripting and inspecting it.
func NewFakeTTY(cols, rows int) (*FakeTTY, TTYCtrl) {
	t := &FakeTTY{
		now:  time.Unix(0, 0),
		cols: cols, rows: rows,
	}
	return t, TTYCtrl{t}
}

// Now is the fake's clock. Install it on the program under test.
func (t *FakeTTY) Now() time.Time { return t.now }

func (t *FakeTTY) EnableRaw() error  { t.ops = append(t.ops, Op{OpRaw, true}); return nil }
func (t *FakeTTY) DisableRaw() error { t.ops = append(t.ops, Op{OpRaw, false}); return nil }

func (t *FakeTTY) EnterAltScreen() error { t.ops = append(t.ops, Op{OpAltScreen, true}); return nil }
func (t *FakeTTY) LeaveAltScreen() error { t.ops = append(t.ops, Op{OpAltScreen, false}); return nil }

func (t *FakeTTY) SetMouse(on bool) error { t.ops = append(t.ops, Op{OpMouse, on}); return nil }

func (t *FakeTTY) SetBracketedPaste(on bool) error {
	t.ops = append(t.ops, Op{OpPaste, on})
	return nil
}

func (t *FakeTTY) SetFocusChange(on bool) error {
	t.ops = append(t.ops, Op{OpFocus, on})
	return nil
}

func (t *FakeTTY) SetCursorVisible(on bool) error {
	t.ops = append(t.ops, Op{OpCursor, on})
	return nil
}

func (t *FakeTTY) Poll(timeout time.Duration) (term.Event, error) {
	t.waits = append(t.waits, timeout)
	deadline := t.now.Add(timeout)
	if len(t.events) > 0 && !t.events[0].at.After(deadline) {
		next := t.events[0]
		t.events = t.events[1:]
		if next.at.After(t.now) {
			t.now = next.at
		}
		return next.ev, nil
	}
	t.now = deadline
	return nil, nil
}

func (t *FakeTTY) Write(p []byte) (int, error) { return t.buf.Write(p) }

func (t *FakeTTY) Flush() error {
	if t.writeErr != nil {
		return t.writeErr
	}
	if t.buf.Len() > 0 {
		t.frames = append(t.frames, t.buf.String())
		t.buf.Reset()
	}
	return nil
}

func (t *FakeTTY) Size() (cols, rows int) { return t.cols, t.rows }

func (t *FakeTTY) Close() error { t.closed = true; return nil }

// TTYCtrl scripts and inspects a FakeTTY.
type TTYCtrl struct{ t *FakeTTY }

// Inject schedules ev to arrive after the given offset from the fake clock's
// current time. Events keep their scheduled order; equal offsets preserve
// injection order.
func (c TTYCtrl) Inject(after time.Duration, ev term.Event) {
	c.t.events = append(c.t.events, scriptedEvent{at: c.t.now.Add(after), ev: ev})
	sort.SliceStable(c.t.events, func(i, j int) bool {
		return c.t.events[i].at.Before(c.t.events[j].at)
	})
}

// SetSize changes the reported terminal size. It does not inject a resize
// event; script one with Inject if the program should observe the change.
func (c TTYCtrl) SetSize(cols, rows int) { c.t.cols, c.t.rows = cols, rows }

// SetWriteError makes subsequent Flush calls fail with err. Pass nil to
// clear.
func (c TTYCtrl) SetWriteError(err error) { c.t.writeErr = err }

// Ops returns the recorded terminal state changes, in order.
func (c TTYCtrl) Ops() []Op { return c.t.ops }

// Frames returns the raw output committed by each Flush, in order.
func (c TTYCtrl) Frames() []string { return c.t.frames }

// Waits returns the timeout passed to each Poll call, in order.
func (c TTYCtrl) Waits() []time.Duration { return c.t.waits }

// Closed reports whether the fake was closed.
func (c TTYCtrl) Closed() bool { return c.t.closed }
