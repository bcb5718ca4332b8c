//go:build linux || solaris || darwin || dragonfly || freebsd || netbsd || openbsd

package eunix

import "golang.org/x/sys/unix"

// Termios represents terminal attributes.
type Termios unix.Termios

// TermiosForFd returns a pointer to a Termios structure if the file
// descriptor is open on a terminal device.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies term to the given file descriptor after discarding any
// pending input ("flush then apply").
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrFlushIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetRaw turns off line editing, local echo and the special characters
// interpreted by the terminal driver, and makes each read return as soon as
// one byte is available. Signal-generating characters are only left enabled
// if keepSignals is true.
func (term *Termios) SetRaw(keepSignals bool) {
	term.Iflag &^= unix.BRKINT | unix.INPCK | unix.ISTRIP | unix.IXON
	term.Cflag |= unix.CS8
	term.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	if !keepSignals {
		term.Lflag &^= unix.ISIG
	}
	term.Cc[unix.VMIN] = 1
	term.Cc[unix.VTIME] = 0
}

// MakeRaw puts the terminal referenced by fd into raw mode and returns the
// attributes it had before.
func MakeRaw(fd int, keepSignals bool) (*Termios, error) {
	orig, err := TermiosForFd(fd)
	if err != nil {
		return nil, err
	}
	raw := orig.Copy()
	raw.SetRaw(keepSignals)
	if err := raw.ApplyToFd(fd); err != nil {
		return nil, err
	}
	return orig, nil
}

// Restore applies previously saved attributes to fd.
func Restore(fd int, orig *Termios) error {
	return orig.ApplyToFd(fd)
}
