package telm

import (
	"strings"

	"src.telm.sh/pkg/term"
)

// renderer paints views to the terminal, diffing against the previously
// committed frame so that identical views cost nothing.
type renderer struct {
	tty       TTY
	altScreen bool

	last      string
	lastLines int
	painted   bool
}

func newRenderer(tty TTY, altScreen bool) *renderer {
	return &renderer{tty: tty, altScreen: altScreen}
}

// commit paints view if it differs from the last committed frame. In alt
// screen mode the whole screen is cleared and repainted from the top-left;
// inline, the cursor moves back to the start of the previous frame and the
// old content is erased before the new frame is written.
func (r *renderer) commit(view string) error {
	if r.painted && view == r.last {
		return nil
	}
	if r.altScreen {
		r.tty.Write([]byte(term.SeqClearScreen))
		r.tty.Write([]byte(term.SeqCursorHome))
	} else {
		if r.painted && r.lastLines > 0 {
			r.tty.Write([]byte(term.SeqCursorUp(r.lastLines)))
		}
		r.tty.Write([]byte(term.SeqCursorCol0))
		r.tty.Write([]byte(term.SeqClearToEnd))
	}
	r.tty.Write([]byte(view))
	if err := r.tty.Flush(); err != nil {
		return err
	}
	r.last = view
	r.lastLines = strings.Count(view, "\n")
	r.painted = true
	return nil
}

// invalidate forgets the committed frame, forcing the next commit to repaint
// even if the view is unchanged. Used after anything else may have written to
// the terminal, like a child process.
func (r *renderer) invalidate() {
	r.last = ""
	r.lastLines = 0
	r.painted = false
}
