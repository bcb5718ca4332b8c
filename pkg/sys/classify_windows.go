package sys

import "golang.org/x/sys/windows"

// Windows has no file mode bits for standard handles; the file type and the
// presence of a console mode take their place.
func classify(fd uintptr) FileKind {
	h := windows.Handle(fd)
	typ, err := windows.GetFileType(h)
	if err != nil {
		return KindNone
	}
	switch typ {
	case windows.FILE_TYPE_CHAR:
		var mode uint32
		if windows.GetConsoleMode(h, &mode) == nil {
			return KindTerminal
		}
		return KindDevice
	case windows.FILE_TYPE_PIPE:
		return KindPipeOrSocket
	case windows.FILE_TYPE_DISK:
		return KindRegularFile
	default:
		return KindNone
	}
}
