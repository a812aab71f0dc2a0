//go:build unix

package telm

import (
	"bytes"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"src.telm.sh/pkg/sys"
	"src.telm.sh/pkg/term"
)

// aTTY wraps a real terminal: the input file feeds a term.Reader, output is
// buffered until Flush, and SIGWINCH is surfaced as a ResizeEvent from Poll.
type aTTY struct {
	in, out *os.File
	reader  term.Reader
	buf     bytes.Buffer

	restoreRaw func() error

	altScreen bool
	mouse     bool
	paste     bool
	focus     bool
	cursor    bool

	sigCh   chan os.Signal
	resized atomic.Bool
}

func newTTY(in, out *os.File) (*aTTY, error) {
	reader, err := term.NewReader(in)
	if err != nil {
		return nil, err
	}
	t := &aTTY{
		in: in, out: out,
		reader: reader,
		cursor: true,
		sigCh:  make(chan os.Signal, 1),
	}
	signal.Notify(t.sigCh, sys.SIGWINCH)
	go func() {
		for range t.sigCh {
			t.resized.Store(true)
			t.reader.Wake()
		}
	}()
	return t, nil
}

func (t *aTTY) EnableRaw() error {
	if t.restoreRaw != nil {
		return nil
	}
	restore, err := term.SetupRaw(t.in)
	if err != nil {
		return err
	}
	t.restoreRaw = restore
	return nil
}

func (t *aTTY) DisableRaw() error {
	if t.restoreRaw == nil {
		return nil
	}
	err := t.restoreRaw()
	t.restoreRaw = nil
	return err
}

func (t *aTTY) EnterAltScreen() error {
	if t.altScreen {
		return nil
	}
	t.altScreen = true
	return t.writeNow(term.SeqEnterAltScreen)
}

func (t *aTTY) LeaveAltScreen() error {
	if !t.altScreen {
		return nil
	}
	t.altScreen = false
	return t.writeNow(term.SeqLeaveAltScreen)
}

func (t *aTTY) SetMouse(on bool) error {
	if t.mouse == on {
		return nil
	}
	t.mouse = on
	if on {
		return t.writeNow(term.SeqEnableMouse)
	}
	return t.writeNow(term.SeqDisableMouse)
}

func (t *aTTY) SetBracketedPaste(on bool) error {
	if t.paste == on {
		return nil
	}
	t.paste = on
	if on {
		return t.writeNow(term.SeqEnableBracketedPaste)
	}
	return t.writeNow(term.SeqDisableBracketedPaste)
}

func (t *aTTY) SetFocusChange(on bool) error {
	if t.focus == on {
		return nil
	}
	t.focus = on
	if on {
		return t.writeNow(term.SeqEnableFocusChange)
	}
	return t.writeNow(term.SeqDisableFocusChange)
}

func (t *aTTY) SetCursorVisible(on bool) error {
	if t.cursor == on {
		return nil
	}
	t.cursor = on
	if on {
		return t.writeNow(term.SeqShowCursor)
	}
	return t.writeNow(term.SeqHideCursor)
}

func (t *aTTY) Poll(timeout time.Duration) (term.Event, error) {
	if t.resized.Swap(false) {
		return t.resizeEvent(), nil
	}
	ev, err := t.reader.ReadEvent(timeout)
	switch err {
	case nil:
		return ev, nil
	case term.ErrTimeout:
		return nil, nil
	case term.ErrWake:
		if t.resized.Swap(false) {
			return t.resizeEvent(), nil
		}
		return nil, nil
	default:
		return nil, err
	}
}

func (t *aTTY) resizeEvent() term.Event {
	cols, rows := sys.WinSize(t.out)
	return term.ResizeEvent{Cols: cols, Rows: rows}
}

func (t *aTTY) Write(p []byte) (int, error) {
	return t.buf.Write(p)
}

func (t *aTTY) Flush() error {
	if t.buf.Len() == 0 {
		return nil
	}
	_, err := t.out.Write(t.buf.Bytes())
	t.buf.Reset()
	return err
}

func (t *aTTY) Size() (cols, rows int) {
	return sys.WinSize(t.out)
}

func (t *aTTY) Close() error {
	signal.Stop(t.sigCh)
	close(t.sigCh)
	t.reader.Close()
	return t.DisableRaw()
}

// writeNow flushes any pending buffered output and then writes the given
// escape sequence directly, so that mode changes take effect immediately.
func (t *aTTY) writeNow(seq string) error {
	if err := t.Flush(); err != nil {
		return err
	}
	_, err := t.out.WriteString(seq)
	return err
}
