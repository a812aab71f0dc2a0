package telm

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"src.telm.sh/pkg/telm/telmtest"
	"src.telm.sh/pkg/term"
	"src.telm.sh/pkg/ui"
)

// counter is a minimal model: any rune key increments, "q" quits.
type counter struct {
	n    int
	init Cmd
	subs Sub
}

type incMsg struct{}

func (c *counter) Init() Cmd { return c.init }

func (c *counter) Update(msg Msg) Cmd {
	switch msg.(type) {
	case incMsg:
		c.n++
	case quitMsg:
		return Quit()
	}
	return nil
}

func (c *counter) View() string { return "count: " + strings.Repeat("x", c.n) }

func (c *counter) HandleEvent(ev term.Event) Msg {
	if k, ok := ev.(term.KeyEvent); ok {
		if k.Rune == 'q' {
			return quitMsg{}
		}
		return incMsg{}
	}
	return nil
}

func (c *counter) Subscriptions() Sub { return c.subs }

type quitMsg struct{}

func key(r rune) term.Event { return term.KeyEvent(ui.K(r)) }

func setup(t *testing.T, m Model) (*Program, telmtest.TTYCtrl) {
	tty, ctrl := telmtest.NewFakeTTY(80, 24)
	p := New(m).WithTTY(tty).WithClock(tty.Now)
	return p, ctrl
}

func TestRun_DispatchesKeysAndQuits(t *testing.T) {
	m := &counter{}
	p, ctrl := setup(t, m)
	ctrl.Inject(time.Millisecond, key('x'))
	ctrl.Inject(2*time.Millisecond, key('x'))
	ctrl.Inject(3*time.Millisecond, key('q'))

	final, err := p.Run()
	if err != nil {
		t.Fatalf("Run -> error %v, want nil", err)
	}
	if got, want := final.(*counter).n, 2; got != want {
		t.Errorf("final count = %d, want %d", got, want)
	}
}

func TestRun_RendersInitialViewBeforeFirstEvent(t *testing.T) {
	m := &counter{}
	p, ctrl := setup(t, m)
	ctrl.Inject(time.Millisecond, key('q'))

	p.Run()

	frames := ctrl.Frames()
	if len(frames) == 0 {
		t.Fatal("no frames rendered")
	}
	if !strings.Contains(frames[0], "count: ") {
		t.Errorf("first frame %q does not contain the initial view", frames[0])
	}
}

func TestRun_SkipsRenderWhenViewUnchanged(t *testing.T) {
	m := &counter{}
	p, ctrl := setup(t, m)
	// The focus event reaches the model but does not change the view.
	ctrl.Inject(time.Millisecond, term.FocusEvent{Gained: true})
	ctrl.Inject(2*time.Millisecond, key('q'))

	p.Run()

	if got := len(ctrl.Frames()); got != 1 {
		t.Errorf("got %d frames, want 1; the unchanged view must not be repainted", got)
	}
}

func TestRun_RestoresTTYBeforeReturning(t *testing.T) {
	m := &counter{}
	p, ctrl := setup(t, m)
	p.AltScreen().Mouse().BracketedPaste().FocusChange()
	ctrl.Inject(time.Millisecond, key('q'))

	p.Run()

	got := ctrl.Ops()
	want := []telmtest.Op{
		{Kind: telmtest.OpRaw, On: true},
		{Kind: telmtest.OpAltScreen, On: true},
		{Kind: telmtest.OpCursor, On: false},
		{Kind: telmtest.OpMouse, On: true},
		{Kind: telmtest.OpPaste, On: true},
		{Kind: telmtest.OpFocus, On: true},
		{Kind: telmtest.OpFocus, On: false},
		{Kind: telmtest.OpPaste, On: false},
		{Kind: telmtest.OpMouse, On: false},
		{Kind: telmtest.OpCursor, On: true},
		{Kind: telmtest.OpAltScreen, On: false},
		{Kind: telmtest.OpRaw, On: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("terminal ops (-want +got):\n%s", diff)
	}
}

func TestRun_RestoresTTYOnWriteError(t *testing.T) {
	m := &counter{}
	p, ctrl := setup(t, m)
	writeErr := errors.New("pipe gone")
	ctrl.SetWriteError(writeErr)

	_, err := p.Run()
	if !errors.Is(err, writeErr) {
		t.Errorf("Run -> error %v, want one wrapping %v", err, writeErr)
	}

	ops := ctrl.Ops()
	if len(ops) == 0 || ops[len(ops)-1] != (telmtest.Op{Kind: telmtest.OpRaw, On: false}) {
		t.Errorf("terminal ops = %v, want raw mode off last", ops)
	}
}

func TestRun_RestoresTTYOnPanic(t *testing.T) {
	m := &panicker{}
	p, ctrl := setup(t, m)
	ctrl.Inject(time.Millisecond, key('x'))

	defer func() {
		if recover() == nil {
			t.Fatal("Run did not propagate the panic")
		}
		ops := ctrl.Ops()
		if len(ops) == 0 || ops[len(ops)-1] != (telmtest.Op{Kind: telmtest.OpRaw, On: false}) {
			t.Errorf("last terminal op = %v, want raw mode off", ops)
		}
	}()
	p.Run()
}

type panicker struct{ counter }

func (m *panicker) Update(msg Msg) Cmd { panic("boom") }

func TestRun_FilterSeesEveryMessageAndCanDropQuit(t *testing.T) {
	m := &counter{}
	p, ctrl := setup(t, m)
	var seen []Msg
	dropped := false
	p.WithFilter(func(_ Model, msg Msg) Msg {
		seen = append(seen, msg)
		if _, ok := msg.(quitMsg); ok && !dropped {
			dropped = true
			return nil
		}
		return msg
	})
	ctrl.Inject(time.Millisecond, key('x'))
	ctrl.Inject(2*time.Millisecond, key('q'))
	ctrl.Inject(3*time.Millisecond, key('q'))

	final, err := p.Run()
	if err != nil {
		t.Fatalf("Run -> error %v, want nil", err)
	}
	if got, want := final.(*counter).n, 1; got != want {
		t.Errorf("final count = %d, want %d", got, want)
	}
	if len(seen) != 3 {
		t.Errorf("filter saw %d messages, want 3", len(seen))
	}
}

func TestRun_WaitBoundNeverExceedsTickRate(t *testing.T) {
	m := &counter{}
	p, ctrl := setup(t, m)
	p.TickRate(50 * time.Millisecond)
	ctrl.Inject(200*time.Millisecond, key('q'))

	p.Run()

	for i, w := range ctrl.Waits() {
		if w > 50*time.Millisecond {
			t.Errorf("poll %d waited %v, want at most 50ms", i, w)
		}
	}
}

func TestRun_TickFiresOnceAtItsDeadline(t *testing.T) {
	fired := 0
	m := &counter{}
	m.init = Tick(10*time.Millisecond, func(time.Time) Msg {
		fired++
		return incMsg{}
	})
	p, ctrl := setup(t, m)
	ctrl.Inject(100*time.Millisecond, key('q'))

	final, _ := p.Run()
	if fired != 1 {
		t.Errorf("tick fired %d times, want 1", fired)
	}
	if got, want := final.(*counter).n, 1; got != want {
		t.Errorf("final count = %d, want %d", got, want)
	}
}

func TestRun_ResizeForcesRepaint(t *testing.T) {
	m := &counter{}
	p, ctrl := setup(t, m)
	ctrl.Inject(time.Millisecond, term.ResizeEvent{Cols: 100, Rows: 40})
	ctrl.Inject(2*time.Millisecond, key('q'))

	p.Run()

	// The view is unchanged by the resize, but a fresh frame must still be
	// committed.
	if len(ctrl.Frames()) < 2 {
		t.Errorf("got %d frames, want a repaint after resize", len(ctrl.Frames()))
	}
}

func TestRun_AccessiblePrintsPlainFinalView(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	m := &counter{n: 3}
	p := New(m).Accessible().WithIO(nil, w)

	if _, err := p.Run(); err != nil {
		t.Fatalf("Run -> error %v, want nil", err)
	}
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(out), "count: xxx\n"; got != want {
		t.Errorf("accessible output = %q, want %q", got, want)
	}
}

func TestRun_AccessibleStripsStyling(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	m := &styled{}
	p := New(m).Accessible().WithIO(nil, w)

	p.Run()
	w.Close()
	out, _ := io.ReadAll(r)
	if got, want := string(out), "plain\n"; got != want {
		t.Errorf("accessible output = %q, want %q", got, want)
	}
}

func TestRun_AccessibleNotesStderrAboutInteractiveHandler(t *testing.T) {
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	savedStderr := os.Stderr
	os.Stderr = errW
	defer func() { os.Stderr = savedStderr }()
	_, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer outW.Close()

	New(&counter{}).Accessible().WithIO(nil, outW).Run()

	os.Stderr = savedStderr
	errW.Close()
	note, _ := io.ReadAll(errR)
	want := "running in accessible mode; interactive use requires the widget layer's interactive handler\n"
	if got := string(note); got != want {
		t.Errorf("stderr note = %q, want %q", got, want)
	}
}

type styled struct{ counter }

func (m *styled) View() string { return "\x1b[1mplain\x1b[0m" }
