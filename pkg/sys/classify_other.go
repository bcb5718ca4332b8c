//go:build !unix && !windows

package sys

func classify(fd uintptr) FileKind {
	if IsATTY(fd) {
		return KindTerminal
	}
	return KindNone
}
