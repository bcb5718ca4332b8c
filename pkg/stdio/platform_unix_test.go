//go:build linux || darwin || freebsd

package stdio

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"src.rtio.sh/pkg/sys"
	"src.rtio.sh/pkg/sys/eunix"
	"src.rtio.sh/pkg/testutil"
)

func nativeDriver(stdin, stdout, stderr *os.File) *Driver {
	return New([3]*os.File{stdin, stdout, stderr}, Options{})
}

func TestReadStdin_RegularFile(t *testing.T) {
	stdin := testutil.OpenContent(t, "hello")
	d := nativeDriver(stdin, testutil.Create(t), testutil.Create(t))
	d.SetupStdout()
	if d.SetupStdin() {
		t.Errorf("SetupStdin -> true for a regular file, want false")
	}

	buf := make([]byte, 16)
	n, err := d.ReadStdin(buf)
	if string(buf[:n]) != "hello" || err != nil {
		t.Errorf("ReadStdin -> (%q, %v), want (\"hello\", nil)", buf[:n], err)
	}
	for i := 0; i < 2; i++ {
		if n, err := d.ReadStdin(buf); n != 0 || err != io.EOF {
			t.Errorf("ReadStdin at end -> (%d, %v), want (0, EOF)", n, err)
		}
	}
}

func TestReadStdin_PipeNoData(t *testing.T) {
	r, _ := testutil.Pipe(t)
	d := nativeDriver(r, testutil.Create(t), testutil.Create(t))
	d.SetupStdout()
	if !d.SetupStdin() {
		t.Errorf("SetupStdin -> false for a pipe, want true")
	}

	start := time.Now()
	n, err := d.ReadStdin(make([]byte, 16))
	if n != 0 || err != ErrRetry {
		t.Errorf("ReadStdin -> (%d, %v), want (0, ErrRetry)", n, err)
	}
	if elapsed := time.Since(start); elapsed > testutil.Scaled(100*time.Millisecond) {
		t.Errorf("ReadStdin blocked for %v", elapsed)
	}
}

func TestReadStdin_PipeDataThenEOF(t *testing.T) {
	r, w := testutil.Pipe(t)
	d := nativeDriver(r, testutil.Create(t), testutil.Create(t))
	d.SetupStdout()
	d.SetupStdin()

	w.WriteString("abc")
	w.Close()
	buf := make([]byte, 16)
	n, err := d.ReadStdin(buf)
	if string(buf[:n]) != "abc" || err != nil {
		t.Errorf("ReadStdin -> (%q, %v), want (\"abc\", nil)", buf[:n], err)
	}
	if n, err := d.ReadStdin(buf); n != 0 || err != io.EOF {
		t.Errorf("ReadStdin after close -> (%d, %v), want (0, EOF)", n, err)
	}
}

func TestReadStdin_PartialReads(t *testing.T) {
	r, w := testutil.Pipe(t)
	d := nativeDriver(r, testutil.Create(t), testutil.Create(t))
	d.SetupStdout()
	d.SetupStdin()

	w.WriteString("abcdef")
	var sb strings.Builder
	buf := make([]byte, 4)
	for sb.Len() < 6 {
		n, err := d.ReadStdin(buf)
		if err != nil {
			t.Fatalf("ReadStdin -> %v", err)
		}
		sb.Write(buf[:n])
	}
	if sb.String() != "abcdef" {
		t.Errorf("got %q, want %q", sb.String(), "abcdef")
	}
}

func TestStdout_PassThrough(t *testing.T) {
	stdout := testutil.Create(t)
	d := nativeDriver(testutil.OpenContent(t, ""), stdout, testutil.Create(t))
	d.SetupStdout()
	if d.Stdout().IsTerminal() {
		t.Fatalf("regular file classified as a terminal")
	}

	const data = "plain \x1b[31mred\x1b[0m \x1b[2J\x1b[1;1H\x1b[K"
	d.Stdout().Write([]byte(data))
	if got := testutil.ReadBack(t, stdout); got != "" {
		t.Errorf("line-buffered stdout wrote %q before flush", got)
	}
	if err := d.Stdout().Flush(); err != nil {
		t.Fatalf("Flush -> %v", err)
	}
	if got := testutil.ReadBack(t, stdout); got != data {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestStdout_LineBuffered(t *testing.T) {
	stdout := testutil.Create(t)
	d := nativeDriver(testutil.OpenContent(t, ""), stdout, testutil.Create(t))
	d.SetupStdout()

	d.Stdout().Print([]byte("first"))
	if got := testutil.ReadBack(t, stdout); got != "first\n" {
		t.Errorf("got %q after Print, want %q", got, "first\n")
	}
}

func TestSetupStdin_RawModeOnTerminal(t *testing.T) {
	_, tty := testutil.PTY(t)
	d := nativeDriver(tty, tty, tty)
	d.SetupStdout()
	if !d.Stdout().IsTerminal() {
		t.Fatalf("pty not classified as a terminal")
	}
	if !d.SetupStdin() {
		t.Errorf("SetupStdin -> false for a terminal")
	}
	if d.StdinKind() != sys.KindTerminal {
		t.Errorf("StdinKind -> %v, want terminal", d.StdinKind())
	}
	if !d.RawMode() {
		t.Fatalf("RawMode -> false")
	}
	fd := int(tty.Fd())
	term, err := eunix.TermiosForFd(fd)
	if err != nil {
		t.Fatalf("TermiosForFd -> %v", err)
	}
	if term.Lflag&(unix.ICANON|unix.ECHO|unix.ISIG) != 0 {
		t.Errorf("canonical mode, echo or signals still enabled: lflag %#x", term.Lflag)
	}

	if err := d.RestoreTerminal(); err != nil {
		t.Fatalf("RestoreTerminal -> %v", err)
	}
	term, _ = eunix.TermiosForFd(fd)
	if term.Lflag&unix.ICANON == 0 {
		t.Errorf("canonical mode not restored")
	}
}

func TestSetupStdin_NoRawModeWhenOutputRedirected(t *testing.T) {
	_, tty := testutil.PTY(t)
	d := nativeDriver(tty, testutil.Create(t), testutil.Create(t))
	d.SetupStdout()
	d.SetupStdin()
	if d.RawMode() {
		t.Errorf("raw mode enabled with stdout redirected")
	}
}

func TestReadStdin_Terminal(t *testing.T) {
	ptmx, tty := testutil.PTY(t)
	d := nativeDriver(tty, tty, tty)
	d.SetupStdout()
	d.SetupStdin()
	t.Cleanup(func() { d.RestoreTerminal() })

	buf := make([]byte, 16)
	if _, err := d.ReadStdin(buf); err != ErrRetry {
		t.Errorf("ReadStdin with no input -> %v, want ErrRetry", err)
	}
	// In raw mode, input is delivered without waiting for a newline.
	ptmx.WriteString("k")
	deadline := time.Now().Add(testutil.Scaled(time.Second))
	for time.Now().Before(deadline) {
		n, err := d.ReadStdin(buf)
		if err == ErrRetry {
			time.Sleep(time.Millisecond)
			continue
		}
		if string(buf[:n]) != "k" || err != nil {
			t.Errorf("ReadStdin -> (%q, %v), want (\"k\", nil)", buf[:n], err)
		}
		return
	}
	t.Errorf("no input within deadline")
}
