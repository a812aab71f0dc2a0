//go:build unix

package term

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"src.telm.sh/pkg/sys"
	"src.telm.sh/pkg/testutil"
	"src.telm.sh/pkg/ui"
)

func TestSetupRaw(t *testing.T) {
	_, tty := setupPTY(t)
	fd := int(tty.Fd())

	restore, err := SetupRaw(tty)
	if err != nil {
		t.Fatalf("SetupRaw -> error %v, want nil", err)
	}

	attrs, err := sys.TermiosFromFd(fd)
	if err != nil {
		t.Fatal(err)
	}
	if attrs.Lflag&unix.ICANON != 0 {
		t.Error("ICANON still set in raw mode")
	}
	if attrs.Lflag&unix.ECHO != 0 {
		t.Error("ECHO still set in raw mode")
	}
	if attrs.Lflag&unix.ISIG != 0 {
		t.Error("ISIG still set in raw mode")
	}
	if attrs.Iflag&unix.IXON != 0 {
		t.Error("IXON still set in raw mode")
	}
	if attrs.Iflag&unix.ICRNL == 0 {
		t.Error("ICRNL cleared in raw mode; Enter would read as CR")
	}
	if attrs.Cc[unix.VMIN] != 1 || attrs.Cc[unix.VTIME] != 0 {
		t.Errorf("VMIN, VTIME = %d, %d, want 1, 0",
			attrs.Cc[unix.VMIN], attrs.Cc[unix.VTIME])
	}

	if err := restore(); err != nil {
		t.Fatalf("restore -> error %v, want nil", err)
	}
	attrs, err = sys.TermiosFromFd(fd)
	if err != nil {
		t.Fatal(err)
	}
	if attrs.Lflag&unix.ICANON == 0 {
		t.Error("ICANON not restored")
	}
	if attrs.Lflag&unix.ECHO == 0 {
		t.Error("ECHO not restored")
	}
}

func TestReadEvent_FromPTY(t *testing.T) {
	ptmx, tty := setupPTY(t)

	restore, err := SetupRaw(tty)
	if err != nil {
		t.Fatal(err)
	}
	defer restore()

	rd, err := NewReader(tty)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	ptmx.WriteString("\x1b[A")
	ev, err := rd.ReadEvent(testutil.Scaled(time.Second))
	if err != nil {
		t.Fatalf("ReadEvent -> error %v, want nil", err)
	}
	if ev != Event(K(ui.Up)) {
		t.Errorf("event = %v, want Up", ev)
	}
}

func setupPTY(t *testing.T) (ptmx, tty *os.File) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	t.Cleanup(func() { ptmx.Close(); tty.Close() })
	return ptmx, tty
}
