//go:build windows

package ewindows

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var peekNamedPipe = kernel32.NewProc("PeekNamedPipe")

// PeekNamedPipe returns the number of bytes that can be read from the pipe
// without blocking. After the write end is closed and the pipe is drained, it
// fails with ERROR_BROKEN_PIPE.
func PeekNamedPipe(h windows.Handle) (uint32, error) {
	var avail uint32
	r, _, err := peekNamedPipe.Call(uintptr(h), 0, 0, 0, uintptr(unsafe.Pointer(&avail)), 0)
	if r == 0 {
		return 0, err
	}
	return avail, nil
}
