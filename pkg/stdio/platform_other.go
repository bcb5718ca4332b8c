//go:build !unix && !windows

package stdio

import (
	"errors"
	"io"
	"os"

	"src.rtio.sh/pkg/sys"
)

var errNoRaw = errors.New("raw mode not supported on this platform")

type other struct{}

// Native returns the Platform of the current OS.
func Native() Platform { return other{} }

func (other) Classify(f *os.File) sys.FileKind { return sys.Classify(f.Fd()) }

func (other) EnableRaw(*os.File, bool) (func() error, error) { return nil, errNoRaw }

// There is no readiness check on this platform, so reads may block.
func (other) ReadNonblocking(f *os.File, kind sys.FileKind, p []byte) (int, error) {
	n, err := f.Read(p)
	if n > 0 {
		return n, nil
	}
	if err != nil && err != io.EOF {
		logger.Println("read stdin:", err)
	}
	return 0, io.EOF
}

func (other) NewOutput(f *os.File, terminal bool) io.Writer { return f }
