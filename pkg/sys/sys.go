// Package sys provide system utilities with the same API across OSes.
//
// The subpackages eunix and ewindows provide OS-specific utilities.
package sys

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

// FileKind is the result of classifying a file descriptor.
type FileKind uint8

// Possible values of FileKind.
const (
	// The descriptor could not be inspected, or refers to something that is
	// neither a stream nor a regular file, such as a directory.
	KindNone FileKind = iota
	// A character device that is not a terminal, such as /dev/null.
	KindDevice
	// An interactive terminal.
	KindTerminal
	// A pipe, FIFO or socket.
	KindPipeOrSocket
	// A regular file, typically a redirection.
	KindRegularFile
)

var kindNames = [...]string{
	KindNone:         "none",
	KindDevice:       "device",
	KindTerminal:     "terminal",
	KindPipeOrSocket: "pipe-or-socket",
	KindRegularFile:  "regular-file",
}

func (k FileKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Classify inspects the file descriptor and determines what kind of file it
// refers to. It never fails; a descriptor that cannot be inspected is
// classified as KindNone.
func Classify(fd uintptr) FileKind { return classify(fd) }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ErrPinUnsupported is returned by PinToCPU on platforms without thread
// affinity support.
var ErrPinUnsupported = errors.New("CPU affinity not supported on this platform")

// PinToCPU restricts the calling OS thread to the given logical CPU. The
// caller must have locked the goroutine to its thread with
// runtime.LockOSThread.
func PinToCPU(cpu int) error { return pinToCPU(cpu) }

// WinSize queries the size of the terminal referenced by the given file.
func WinSize(file *os.File) (row, col int) { return winSize(file) }
