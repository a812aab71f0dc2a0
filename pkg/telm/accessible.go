package telm

import (
	"fmt"
	"os"

	"src.telm.sh/pkg/ui"
)

// runAccessible is the output path for non-interactive hosts: no raw mode,
// no escape sequences, no event loop. The model is initialized, commands run
// to completion, and the final view is printed with styling stripped.
func (p *Program) runAccessible() (Model, error) {
	fmt.Fprintln(os.Stderr, "running in accessible mode; interactive use requires the widget layer's interactive handler")

	if err := p.feedCmd(p.model.Init()); err != nil {
		return p.model, err
	}
	// Async commands may still be in flight; deliver what has already
	// finished, but do not wait.
	if !p.quitting {
		if err := p.drainAsync(); err != nil {
			return p.model, err
		}
	}

	view := ui.StripANSI(p.model.View())
	if view != "" {
		if _, err := fmt.Fprintln(p.out, view); err != nil {
			return p.model, err
		}
	}
	return p.model, nil
}
