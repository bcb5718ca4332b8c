// Package stdio drives the standard streams of a process: it classifies
// them, chooses output buffering, puts an interactive stdin into raw mode and
// performs non-blocking stdin reads.
//
// The operating system dependent parts are behind the Platform interface;
// Native returns the implementation for the current OS.
package stdio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"src.rtio.sh/pkg/logutil"
	"src.rtio.sh/pkg/sys"
)

var logger = logutil.GetLogger("[stdio] ")

// ErrRetry is returned by reads when no data is available yet. It is not a
// failure; the caller should try again later, typically after the next
// readiness notification.
var ErrRetry = errors.New("no data available yet")

// Rearmer re-arms a one-shot readiness notification on stdin.
type Rearmer interface {
	ResumeStdin()
}

// Platform is the OS-specific part of the driver.
type Platform interface {
	// Classify determines the kind of the file.
	Classify(f *os.File) sys.FileKind
	// EnableRaw puts the terminal f into raw input mode and returns a
	// function that restores the previous mode. Signal generating
	// characters are disabled unless keepSignals is true.
	EnableRaw(f *os.File, keepSignals bool) (restore func() error, err error)
	// ReadNonblocking reads from f, which has the given kind, without
	// blocking. It returns ErrRetry if no data is available and io.EOF at
	// the end of the stream.
	ReadNonblocking(f *os.File, kind sys.FileKind, p []byte) (int, error)
	// NewOutput returns the writer used for the output stream f. For
	// terminals that do not interpret ANSI escape sequences, this is a
	// writer that translates them.
	NewOutput(f *os.File, terminal bool) io.Writer
}

// Options configure a Driver.
type Options struct {
	// Keep signal generating characters such as ^C enabled in raw mode.
	KeepSignals bool
	// Re-armed after every read that returns data. May also be set later
	// with SetRearmer.
	Rearm Rearmer
	// Defaults to Native().
	Platform Platform
}

// Driver manages the three standard streams of a process.
//
// SetupStdout and SetupStdin should be called once each, in that order,
// before the streams are used.
type Driver struct {
	files       [3]*os.File
	platform    Platform
	keepSignals bool
	rearm       atomic.Pointer[Rearmer]

	stdout, stderr *Stream
	stdoutTTY      bool
	stdinKind      sys.FileKind

	restoreMutex sync.Mutex
	restore      func() error
}

// New creates a Driver for the given stdin, stdout and stderr.
func New(files [3]*os.File, opts Options) *Driver {
	p := opts.Platform
	if p == nil {
		p = Native()
	}
	d := &Driver{files: files, platform: p, keepSignals: opts.KeepSignals}
	if opts.Rearm != nil {
		d.SetRearmer(opts.Rearm)
	}
	return d
}

// SetupStdout classifies stdout and stderr and sets up their buffering:
// unbuffered for terminals, line-buffered otherwise.
func (d *Driver) SetupStdout() {
	d.stdout = d.newStream(d.files[1])
	d.stderr = d.newStream(d.files[2])
	d.stdoutTTY = d.stdout.IsTerminal()
}

func (d *Driver) newStream(f *os.File) *Stream {
	if f == nil {
		return nil
	}
	terminal := d.platform.Classify(f) == sys.KindTerminal
	out := d.platform.NewOutput(f, terminal)
	if terminal {
		return &Stream{w: out, terminal: true}
	}
	buf := bufio.NewWriter(out)
	return &Stream{w: buf, buf: buf}
}

// SetupStdin classifies stdin and, if both stdin and stdout are terminals,
// puts stdin into raw mode. Failure to enter raw mode is logged and leaves
// stdin in its default mode.
//
// It returns whether stdin should be read in response to readiness
// notifications. This is false only when stdin is a regular file, which can
// be read to exhaustion directly.
func (d *Driver) SetupStdin() bool {
	f := d.files[0]
	if f == nil {
		return true
	}
	d.stdinKind = d.platform.Classify(f)
	if d.stdinKind == sys.KindTerminal && d.stdoutTTY {
		restore, err := d.platform.EnableRaw(f, d.keepSignals)
		if err != nil {
			logger.Println("enable raw mode:", err)
		} else {
			d.restoreMutex.Lock()
			d.restore = restore
			d.restoreMutex.Unlock()
		}
	}
	return d.stdinKind != sys.KindRegularFile
}

// Stdout returns the stdout stream. It is nil before SetupStdout.
func (d *Driver) Stdout() *Stream { return d.stdout }

// Stderr returns the stderr stream. It is nil before SetupStdout.
func (d *Driver) Stderr() *Stream { return d.stderr }

// StdinKind returns the classification of stdin made by SetupStdin.
func (d *Driver) StdinKind() sys.FileKind { return d.stdinKind }

// RawMode reports whether stdin is currently in raw mode.
func (d *Driver) RawMode() bool {
	d.restoreMutex.Lock()
	defer d.restoreMutex.Unlock()
	return d.restore != nil
}

// SetRearmer sets the Rearmer used after successful reads.
func (d *Driver) SetRearmer(r Rearmer) {
	if r == nil {
		d.rearm.Store(nil)
		return
	}
	d.rearm.Store(&r)
}

// ReadStdin reads from stdin without blocking. It returns the number of bytes
// read, ErrRetry if no data is available yet, or io.EOF at the end of the
// stream. Reading after io.EOF returns io.EOF again.
//
// After a read that returns data, the Rearmer is called.
func (d *Driver) ReadStdin(p []byte) (int, error) {
	if len(p) == 0 || d.files[0] == nil {
		return 0, ErrRetry
	}
	n, err := d.platform.ReadNonblocking(d.files[0], d.stdinKind, p)
	if n > 0 {
		if r := d.rearm.Load(); r != nil {
			(*r).ResumeStdin()
		}
	}
	return n, err
}

// RestoreTerminal restores stdin to the mode it had before SetupStdin. It is
// safe to call multiple times and from any goroutine; only the first call
// after raw mode was entered does anything.
func (d *Driver) RestoreTerminal() error {
	d.restoreMutex.Lock()
	restore := d.restore
	d.restore = nil
	d.restoreMutex.Unlock()
	if restore == nil {
		return nil
	}
	return restore()
}

// Close flushes stdout and stderr and restores the terminal.
func (d *Driver) Close() error {
	return errors.Join(d.stdout.Flush(), d.stderr.Flush(), d.RestoreTerminal())
}

// Stream is an output stream. It is not safe for concurrent use.
type Stream struct {
	w io.Writer
	// Nil if unbuffered.
	buf      *bufio.Writer
	terminal bool
}

// Write writes p. Writing an empty slice does nothing. A buffered stream is
// flushed when p contains a newline.
func (s *Stream) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := s.w.Write(p)
	if err == nil && s.buf != nil && bytes.IndexByte(p, '\n') >= 0 {
		err = s.buf.Flush()
	}
	return n, err
}

// Print writes p followed by a newline.
func (s *Stream) Print(p []byte) error {
	line := make([]byte, len(p)+1)
	copy(line, p)
	line[len(p)] = '\n'
	_, err := s.Write(line)
	return err
}

// Flush writes out buffered data. It does nothing on a nil Stream.
func (s *Stream) Flush() error {
	if s == nil || s.buf == nil {
		return nil
	}
	return s.buf.Flush()
}

// IsTerminal reports whether the stream is a terminal. It returns false on a
// nil Stream.
func (s *Stream) IsTerminal() bool {
	return s != nil && s.terminal
}
