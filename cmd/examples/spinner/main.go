// Command spinner demonstrates subscriptions: an animated spinner that can
// be paused and resumed with the space key, quit with q.
package main

import (
	"fmt"
	"os"
	"time"

	"src.telm.sh/pkg/telm"
	"src.telm.sh/pkg/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type model struct {
	frame   int
	running bool
}

type frameMsg struct{}
type toggleMsg struct{}
type quitMsg struct{}

func (m *model) Init() telm.Cmd {
	m.running = true
	return nil
}

func (m *model) Update(msg telm.Msg) telm.Cmd {
	switch msg.(type) {
	case frameMsg:
		m.frame = (m.frame + 1) % len(frames)
	case toggleMsg:
		m.running = !m.running
	case quitMsg:
		return telm.Quit()
	}
	return nil
}

func (m *model) View() string {
	state := "running"
	if !m.running {
		state = "paused"
	}
	return fmt.Sprintf("%s %s\n(space to pause, q to quit)", frames[m.frame], state)
}

func (m *model) HandleEvent(ev term.Event) telm.Msg {
	if k, ok := ev.(term.KeyEvent); ok {
		switch k.Rune {
		case ' ':
			return toggleMsg{}
		case 'q':
			return quitMsg{}
		}
	}
	return nil
}

func (m *model) Subscriptions() telm.Sub {
	if !m.running {
		return nil
	}
	return telm.Every("spin", 100*time.Millisecond, func() telm.Msg { return frameMsg{} })
}

func main() {
	if _, err := telm.New(&model{}).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
