//go:build unix && !linux && !solaris && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package eunix

import "errors"

// Termios represents terminal attributes. Raw mode is not implemented on this
// platform.
type Termios struct{}

var errNoTermios = errors.New("terminal attributes not supported on this platform")

// MakeRaw always fails on this platform.
func MakeRaw(fd int, keepSignals bool) (*Termios, error) { return nil, errNoTermios }

// Restore always fails on this platform.
func Restore(fd int, orig *Termios) error { return errNoTermios }
