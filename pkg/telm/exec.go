package telm

import "os"

// feedCmd executes a command produced by Init or Update. It returns only
// real failures; Quit is recorded on the Program and unwinds the loop
// cooperatively.
func (p *Program) feedCmd(c Cmd) error {
	if c == nil || p.quitting {
		return nil
	}
	switch c := c.(type) {
	case quitCmd:
		p.quitting = true
	case syncCmd:
		if msg := c(); msg != nil {
			return p.feedMsg(msg)
		}
	case tickCmd:
		p.ticks = append(p.ticks, pendingTick{at: p.now().Add(c.d), d: c.d, gen: c.gen})
	case asyncCmd:
		go func() {
			if msg := c(); msg != nil {
				p.deliverAsync(msg)
			}
		}()
	case procCmd:
		return p.runProcess(c)
	case batchCmd:
		for _, sub := range c {
			if err := p.feedCmd(sub); err != nil {
				return err
			}
			if p.quitting {
				return nil
			}
		}
	case seqCmd:
		for _, sub := range c {
			if err := p.feedCmd(sub); err != nil {
				return err
			}
			if p.quitting {
				return nil
			}
		}
	default:
		logger.Printf("unknown command %T", c)
	}
	return nil
}

// deliverAsync hands an async result to the loop. It reports false when the
// program has already finished; a result arriving after Run returns is
// discarded instead of blocking its goroutine on a full channel.
func (p *Program) deliverAsync(msg Msg) bool {
	select {
	case p.asyncCh <- msg:
		return true
	case <-p.done:
		return false
	}
}

// runProcess releases the terminal, runs the child with inherited stdio,
// then reclaims the terminal and forces a full repaint. The child's failure
// is not a loop error; it is reported to the model through the command's
// exit message.
func (p *Program) runProcess(c procCmd) error {
	// The renderer exists only when the interactive loop is running; on the
	// accessible path there is no terminal state to release, even if a
	// terminal was installed.
	interactive := p.renderer != nil
	if interactive {
		if err := p.teardownTerm(); err != nil {
			return err
		}
	}

	cmd := c.cmd
	if cmd.Stdin == nil {
		cmd.Stdin = p.in
	}
	if cmd.Stdout == nil {
		cmd.Stdout = p.out
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	runErr := cmd.Run()
	if runErr != nil {
		runErr = &ProcessError{Path: cmd.Path, Err: runErr}
	}

	if interactive {
		if err := p.setupTerm(); err != nil {
			return err
		}
		p.renderer.invalidate()
		p.dirty = true
	}

	if c.onExit != nil {
		if msg := c.onExit(runErr); msg != nil {
			return p.feedMsg(msg)
		}
	}
	return nil
}
