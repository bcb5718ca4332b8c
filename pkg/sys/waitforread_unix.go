//go:build unix

package sys

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// A descriptor that has hung up or is invalid is reported as ready, so that
// the following read observes the end of the stream or the error.
const readyEvents = unix.POLLIN | unix.POLLHUP | unix.POLLERR | unix.POLLNVAL

// WaitForRead blocks until any of the given files is ready to be read or
// timeout. A negative timeout means no timeout, and a zero timeout checks
// without blocking. It returns a boolean array indicating which files are
// ready to be read and any possible error.
func WaitForRead(timeout time.Duration, files ...*os.File) (ready []bool, err error) {
	fds := make([]unix.PollFd, len(files))
	for i, file := range files {
		fds[i] = unix.PollFd{Fd: int32(file.Fd()), Events: unix.POLLIN}
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	_, err = unix.Poll(fds, ms)
	ready = make([]bool, len(files))
	if err != nil {
		return ready, err
	}
	for i := range fds {
		ready[i] = fds[i].Revents&readyEvents != 0
	}
	return ready, nil
}
