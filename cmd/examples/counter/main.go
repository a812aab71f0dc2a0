// Command counter demonstrates the smallest possible interactive program: a
// counter incremented and decremented with the arrow keys, quit with q.
package main

import (
	"fmt"
	"os"

	"src.telm.sh/pkg/telm"
	"src.telm.sh/pkg/term"
	"src.telm.sh/pkg/ui"
)

type model struct {
	count int
}

type deltaMsg int
type quitMsg struct{}

func (m *model) Init() telm.Cmd { return nil }

func (m *model) Update(msg telm.Msg) telm.Cmd {
	switch msg := msg.(type) {
	case deltaMsg:
		m.count += int(msg)
	case quitMsg:
		return telm.Quit()
	}
	return nil
}

func (m *model) View() string {
	return fmt.Sprintf("count: %d\n(up/down to change, q to quit)", m.count)
}

func (m *model) HandleEvent(ev term.Event) telm.Msg {
	if k, ok := ev.(term.KeyEvent); ok {
		switch k.Rune {
		case ui.Up, '+':
			return deltaMsg(1)
		case ui.Down, '-':
			return deltaMsg(-1)
		case 'q':
			return quitMsg{}
		}
	}
	return nil
}

func (m *model) Subscriptions() telm.Sub { return nil }

func main() {
	if _, err := telm.New(&model{}).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
