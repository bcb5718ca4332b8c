//go:build unix

package testutil

import (
	"os"

	"github.com/creack/pty"
)

// PTY opens a pseudo-terminal pair for the duration of a test. The test is
// skipped if the system cannot allocate one.
func PTY(t interface {
	TB
	Skipper
}) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	return ptmx, tty
}
