//go:build unix

package sys

import (
	"net"
	"os"
	"testing"

	"src.rtio.sh/pkg/testutil"
)

func TestClassify_RegularFile(t *testing.T) {
	f := testutil.OpenContent(t, "content")
	if kind := Classify(f.Fd()); kind != KindRegularFile {
		t.Errorf("got %v, want %v", kind, KindRegularFile)
	}
}

func TestClassify_Pipe(t *testing.T) {
	r, w := testutil.Pipe(t)
	for _, f := range []*os.File{r, w} {
		if kind := Classify(f.Fd()); kind != KindPipeOrSocket {
			t.Errorf("got %v, want %v", kind, KindPipeOrSocket)
		}
	}
}

func TestClassify_Socket(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen: %v", err)
	}
	defer l.Close()
	f, err := l.(*net.TCPListener).File()
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	defer f.Close()
	if kind := Classify(f.Fd()); kind != KindPipeOrSocket {
		t.Errorf("got %v, want %v", kind, KindPipeOrSocket)
	}
}

func TestClassify_Terminal(t *testing.T) {
	_, tty := testutil.PTY(t)
	if kind := Classify(tty.Fd()); kind != KindTerminal {
		t.Errorf("got %v, want %v", kind, KindTerminal)
	}
}

func TestClassify_Device(t *testing.T) {
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Skipf("open %s: %v", os.DevNull, err)
	}
	defer f.Close()
	if kind := Classify(f.Fd()); kind != KindDevice {
		t.Errorf("got %v, want %v", kind, KindDevice)
	}
}

func TestClassify_Directory(t *testing.T) {
	f, err := os.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if kind := Classify(f.Fd()); kind != KindNone {
		t.Errorf("got %v, want %v", kind, KindNone)
	}
}

func TestClassify_BadDescriptor(t *testing.T) {
	r, w := testutil.Pipe(t)
	fd := r.Fd()
	r.Close()
	w.Close()
	if kind := Classify(fd); kind != KindNone {
		t.Errorf("got %v, want %v", kind, KindNone)
	}
}

func TestFileKind_String(t *testing.T) {
	if s := KindPipeOrSocket.String(); s != "pipe-or-socket" {
		t.Errorf("got %q", s)
	}
	if s := FileKind(42).String(); s != "unknown" {
		t.Errorf("got %q", s)
	}
}
