package telm

import (
	"fmt"
	"os"
	"time"

	"src.telm.sh/pkg/errutil"
	"src.telm.sh/pkg/sys"
	"src.telm.sh/pkg/term"
)

// Program drives a Model: it owns the terminal, the event loop, pending
// timers and subscriptions, and the renderer. Construct one with New,
// configure it with the With* and option methods, then call Run.
type Program struct {
	model  Model
	opts   Options
	filter Filter

	in, out *os.File
	tty     TTY
	now     func() time.Time

	renderer *renderer
	ticks    []pendingTick
	subs     map[string]*activeSub
	subOrder []string
	asyncCh  chan Msg
	done     chan struct{}

	dirty    bool
	quitting bool
}

// pendingTick is a one-shot timer armed by a Tick command.
type pendingTick struct {
	at  time.Time
	d   time.Duration
	gen func(time.Time) Msg
}

// activeSub is a recurring timer declared by the model's Subscriptions.
// next survives re-registration, so a subscription that stays declared
// across updates keeps its cadence.
type activeSub struct {
	id     string
	next   time.Time
	period time.Duration
	gen    func() Msg
}

// New returns a Program running model with default options, reading from
// stdin and writing to stdout.
func New(model Model) *Program {
	return &Program{
		model:   model,
		opts:    defaultOptions(),
		in:      os.Stdin,
		out:     os.Stdout,
		now:     time.Now,
		subs:    make(map[string]*activeSub),
		asyncCh: make(chan Msg, 128),
		done:    make(chan struct{}),
	}
}

// AltScreen makes the program use the terminal's alternate screen.
func (p *Program) AltScreen() *Program { p.opts.AltScreen = true; return p }

// Mouse enables mouse reporting.
func (p *Program) Mouse() *Program { p.opts.Mouse = true; return p }

// BracketedPaste enables bracketed paste, delivering pasted text as a single
// PasteEvent instead of individual keystrokes.
func (p *Program) BracketedPaste() *Program { p.opts.BracketedPaste = true; return p }

// FocusChange enables focus change reporting.
func (p *Program) FocusChange() *Program { p.opts.FocusChange = true; return p }

// FPS caps the render rate. Values are clamped to [1, 120].
func (p *Program) FPS(fps int) *Program { p.opts.FPS = fps; return p }

// Accessible forces the accessible, non-interactive output path.
func (p *Program) Accessible() *Program { p.opts.Accessible = true; return p }

// ReduceMotion asks views to avoid animation. The runtime merely records the
// preference; models read it via Options.
func (p *Program) ReduceMotion() *Program { p.opts.ReduceMotion = true; return p }

// RespectNoColor controls whether $NO_COLOR downgrades the color profile.
func (p *Program) RespectNoColor(on bool) *Program { p.opts.RespectNoColor = on; return p }

// TickRate sets the idle wake interval of the loop.
func (p *Program) TickRate(d time.Duration) *Program { p.opts.TickRate = d; return p }

// WithFilter installs a message filter. The filter sees every message before
// Update; returning nil drops the message.
func (p *Program) WithFilter(f Filter) *Program { p.filter = f; return p }

// WithTTY substitutes the terminal implementation. Used by tests.
func (p *Program) WithTTY(tty TTY) *Program { p.tty = tty; return p }

// WithClock substitutes the time source. Used by tests.
func (p *Program) WithClock(now func() time.Time) *Program { p.now = now; return p }

// WithIO sets the input and output files. Either may be nil to keep the
// default.
func (p *Program) WithIO(in, out *os.File) *Program {
	if in != nil {
		p.in = in
	}
	if out != nil {
		p.out = out
	}
	return p
}

// Run runs the program until a Quit command is executed or an error occurs.
// It returns the final model. The terminal is always restored before Run
// returns, including on panic; errors from the loop and from teardown are
// combined. Run may be called at most once per Program.
func (p *Program) Run() (Model, error) {
	defer close(p.done)
	if !p.interactive() {
		return p.runAccessible()
	}

	if p.tty == nil {
		tty, err := newTTY(p.in, p.out)
		if err != nil {
			return p.model, err
		}
		p.tty = tty
		defer p.tty.Close()
	}
	p.renderer = newRenderer(p.tty, p.opts.AltScreen)

	err := p.setupTerm()
	if err != nil {
		return p.model, errutil.Multi(err, p.teardownTerm())
	}
	defer func() {
		err := recover()
		if err != nil {
			p.teardownTerm()
			panic(err)
		}
	}()

	loopErr := p.loop()
	return p.model, errutil.Multi(loopErr, p.teardownTerm())
}

// interactive reports whether the full-screen interactive path should run.
// A terminal installed with WithTTY is taken at its word.
func (p *Program) interactive() bool {
	if p.opts.Accessible {
		return false
	}
	if p.tty != nil {
		return true
	}
	if !sys.IsATTY(p.in) || !sys.IsATTY(p.out) {
		return false
	}
	return !inCI()
}

// setupTerm prepares the terminal: raw mode first, then the optional modes.
func (p *Program) setupTerm() error {
	if err := p.tty.EnableRaw(); err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	if p.opts.AltScreen {
		if err := p.tty.EnterAltScreen(); err != nil {
			return err
		}
	}
	if err := p.tty.SetCursorVisible(false); err != nil {
		return err
	}
	if p.opts.Mouse {
		if err := p.tty.SetMouse(true); err != nil {
			return err
		}
	}
	if p.opts.BracketedPaste {
		if err := p.tty.SetBracketedPaste(true); err != nil {
			return err
		}
	}
	if p.opts.FocusChange {
		if err := p.tty.SetFocusChange(true); err != nil {
			return err
		}
	}
	return nil
}

// teardownTerm restores the terminal in exactly the reverse order of
// setupTerm, attempting every step even if earlier ones fail.
func (p *Program) teardownTerm() error {
	var errs []error
	if p.opts.FocusChange {
		errs = append(errs, p.tty.SetFocusChange(false))
	}
	if p.opts.BracketedPaste {
		errs = append(errs, p.tty.SetBracketedPaste(false))
	}
	if p.opts.Mouse {
		errs = append(errs, p.tty.SetMouse(false))
	}
	errs = append(errs, p.tty.SetCursorVisible(true))
	if p.opts.AltScreen {
		errs = append(errs, p.tty.LeaveAltScreen())
	}
	errs = append(errs, p.tty.DisableRaw())
	p.tty.Write([]byte(term.SeqCursorCol0))
	errs = append(errs, p.tty.Flush())
	return errutil.Multi(errs...)
}
