//go:build unix

package stdio

import (
	"io"
	"os"

	"golang.org/x/sys/unix"

	"src.rtio.sh/pkg/sys"
	"src.rtio.sh/pkg/sys/eunix"
)

type posix struct{}

// Native returns the Platform of the current OS.
func Native() Platform { return posix{} }

func (posix) Classify(f *os.File) sys.FileKind { return sys.Classify(f.Fd()) }

func (posix) EnableRaw(f *os.File, keepSignals bool) (func() error, error) {
	fd := int(f.Fd())
	orig, err := eunix.MakeRaw(fd, keepSignals)
	if err != nil {
		return nil, err
	}
	return func() error { return eunix.Restore(fd, orig) }, nil
}

// Regular files are always readable and are read directly. For everything
// else, a zero-timeout poll guards the read.
func (posix) ReadNonblocking(f *os.File, kind sys.FileKind, p []byte) (int, error) {
	if kind != sys.KindRegularFile {
		ready, err := sys.WaitForRead(0, f)
		if err != nil {
			if err == unix.EINTR {
				return 0, ErrRetry
			}
			logger.Println("poll stdin:", err)
			return 0, io.EOF
		}
		if !ready[0] {
			return 0, ErrRetry
		}
	}
	n, err := unix.Read(int(f.Fd()), p)
	switch {
	case err == nil && n > 0:
		return n, nil
	case err == nil:
		return 0, io.EOF
	case err == unix.EAGAIN || err == unix.EINTR:
		return 0, ErrRetry
	case err == unix.EPIPE:
		return 0, io.EOF
	default:
		logger.Println("read stdin:", err)
		return 0, io.EOF
	}
}

func (posix) NewOutput(f *os.File, terminal bool) io.Writer { return f }
