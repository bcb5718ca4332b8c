//go:build unix

package sys

import "golang.org/x/sys/unix"

func classify(fd uintptr) FileKind {
	var st unix.Stat_t
	if err := unix.Fstat(int(fd), &st); err != nil {
		return KindNone
	}
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFIFO, unix.S_IFSOCK:
		return KindPipeOrSocket
	case unix.S_IFCHR:
		if IsATTY(fd) {
			return KindTerminal
		}
		return KindDevice
	case unix.S_IFREG:
		// A redirected file.
		return KindRegularFile
	default:
		// A directory or a block device.
		return KindNone
	}
}
