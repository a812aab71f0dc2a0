package telm

import (
	"os/exec"
	"time"
)

// Cmd describes a deferred effect returned from a Model's Init or Update.
// A nil Cmd means "no effect". Commands are values; they do nothing until
// the runtime executes them, and each is executed at most once.
type Cmd interface {
	isCmd()
}

type quitCmd struct{}

type syncCmd func() Msg

type tickCmd struct {
	d   time.Duration
	gen func(fired time.Time) Msg
}

type asyncCmd func() Msg

type procCmd struct {
	cmd    *exec.Cmd
	onExit func(err error) Msg
}

type batchCmd []Cmd

type seqCmd []Cmd

func (quitCmd) isCmd()  {}
func (syncCmd) isCmd()  {}
func (tickCmd) isCmd()  {}
func (asyncCmd) isCmd() {}
func (procCmd) isCmd()  {}
func (batchCmd) isCmd() {}
func (seqCmd) isCmd()   {}

// Quit returns a command that terminates the event loop. The final view is
// still rendered before teardown.
func Quit() Cmd {
	return quitCmd{}
}

// Sync returns a command that calls f immediately when executed and feeds
// the resulting message back into Update. A nil message is discarded.
func Sync(f func() Msg) Cmd {
	return syncCmd(f)
}

// Tick returns a command that schedules a one-shot timer. After d elapses,
// gen is called with the fire time and its message is delivered to Update.
// To re-arm, return another Tick from Update.
func Tick(d time.Duration, gen func(fired time.Time) Msg) Cmd {
	return tickCmd{d, gen}
}

// Async returns a command that runs f on a background goroutine. The
// resulting message is delivered to Update on a subsequent loop iteration,
// through the same filter and update path as a Sync result.
func Async(f func() Msg) Cmd {
	return asyncCmd(f)
}

// RunProcess returns a command that suspends the UI, restores the terminal,
// runs the given child process with inherited stdio, re-acquires the
// terminal, and feeds onExit's message into Update. The error passed to
// onExit is nil on success, and otherwise wraps the spawn or exit failure
// as a *ProcessError.
func RunProcess(cmd *exec.Cmd, onExit func(err error) Msg) Cmd {
	return procCmd{cmd, onExit}
}

// Batch combines commands to be executed independently. Nil entries are
// dropped; if nothing remains, Batch returns nil.
func Batch(cmds ...Cmd) Cmd {
	kept := compact(cmds)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return batchCmd(kept)
}

// Seq combines commands to be executed in order, each starting after the
// previous one has completed. In the serial runtime this coincides with
// Batch; the distinct constructor records intent.
func Seq(cmds ...Cmd) Cmd {
	kept := compact(cmds)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return seqCmd(kept)
}

func compact(cmds []Cmd) []Cmd {
	kept := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return kept
}

// Map returns a command with the same structure as c whose produced
// messages are passed through f. It is used to lift a child model's
// commands into the parent's message type. Map of a nil command is nil.
func Map(c Cmd, f func(Msg) Msg) Cmd {
	switch c := c.(type) {
	case nil:
		return nil
	case quitCmd:
		return c
	case syncCmd:
		return syncCmd(func() Msg { return mapMsg(c(), f) })
	case tickCmd:
		gen := c.gen
		return tickCmd{c.d, func(fired time.Time) Msg { return mapMsg(gen(fired), f) }}
	case asyncCmd:
		return asyncCmd(func() Msg { return mapMsg(c(), f) })
	case procCmd:
		onExit := c.onExit
		return procCmd{c.cmd, func(err error) Msg { return mapMsg(onExit(err), f) }}
	case batchCmd:
		return batchCmd(mapCmds(c, f))
	case seqCmd:
		return seqCmd(mapCmds(c, f))
	default:
		panic("unreachable")
	}
}

func mapCmds(cmds []Cmd, f func(Msg) Msg) []Cmd {
	mapped := make([]Cmd, len(cmds))
	for i, c := range cmds {
		mapped[i] = Map(c, f)
	}
	return mapped
}

func mapMsg(msg Msg, f func(Msg) Msg) Msg {
	if msg == nil {
		return nil
	}
	return f(msg)
}
