package rtio

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"src.rtio.sh/pkg/asio"
	"src.rtio.sh/pkg/stdio"
)

const (
	bufSize = 4096
	// How long to wait between reads when there are no readiness
	// notifications.
	pollInterval = 10 * time.Millisecond
)

// A backend that can notify about stdin readiness.
type stdinNotifier interface {
	stdio.Rearmer
	NotifyStdin(fd int, notify func()) (cancel func() error, err error)
}

// Copies stdin to stdout.
type cat struct {
	stdin  *os.File
	d      *stdio.Driver
	out    *stdio.Stream
	prefix string
	sgr    string
	// Whether stdin is a terminal in raw mode, where ^C and ^D are plain
	// bytes.
	raw bool

	// Receives a value when stdin becomes ready. Nil when stdin is polled.
	wake chan struct{}
}

// Runs until the end of stdin or until ctx is done. When stdin is
// event-based and the engine can be started, reads are driven by readiness
// notifications; otherwise stdin is polled.
func (c *cat) run(ctx context.Context, e *asio.Engine, eventBased bool, cpu int) error {
	defer func() {
		if !e.Stop() {
			logger.Println("engine not stoppable at exit")
		}
	}()
	if eventBased {
		if cancel, ok := c.subscribe(e, cpu); ok {
			defer func() {
				if err := cancel(); err != nil {
					logger.Println("cancel stdin subscription:", err)
				}
				c.d.SetRearmer(nil)
				e.NoisyRemove()
			}()
		}
	}

	buf := make([]byte, bufSize)
	for ctx.Err() == nil {
		n, err := c.d.ReadStdin(buf)
		switch err {
		case nil:
			if c.echo(buf[:n]) {
				return nil
			}
		case stdio.ErrRetry:
			c.wait(ctx)
		case io.EOF:
			return nil
		default:
			return err
		}
	}
	return nil
}

// Starts the engine and subscribes to stdin readiness as a noisy
// subscription. Failures are logged and leave stdin polled.
func (c *cat) subscribe(e *asio.Engine, cpu int) (cancel func() error, ok bool) {
	if err := e.Init(cpu); err != nil {
		logger.Println("no readiness notifications, polling stdin:", err)
		return nil, false
	}
	if !e.Start() {
		return nil, false
	}
	b, _ := e.Backend()
	n, ok := b.(stdinNotifier)
	if !ok {
		logger.Printf("backend %T cannot watch stdin, polling", b)
		return nil, false
	}
	wake := make(chan struct{}, 1)
	cancel, err := n.NotifyStdin(int(c.stdin.Fd()), func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	if err != nil {
		logger.Println("watch stdin, polling instead:", err)
		return nil, false
	}
	c.wake = wake
	c.d.SetRearmer(n)
	e.NoisyAdd()
	return cancel, true
}

func (c *cat) wait(ctx context.Context) {
	if c.wake != nil {
		select {
		case <-c.wake:
		case <-ctx.Done():
		}
		return
	}
	timer := time.NewTimer(pollInterval)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Writes p to stdout, decorated with the prefix and color. In raw mode, ^C
// and ^D end the input; the bytes before them are still written. It reports
// whether the input has ended.
func (c *cat) echo(p []byte) (ended bool) {
	if c.raw {
		if i := bytes.IndexAny(p, "\x03\x04"); i >= 0 {
			p, ended = p[:i], true
		}
	}
	if len(p) == 0 {
		return ended
	}
	out := make([]byte, 0, len(c.prefix)+len(c.sgr)+len(p)+len(resetSGR))
	out = append(out, c.prefix...)
	if c.sgr != "" {
		out = append(out, c.sgr...)
		out = append(out, p...)
		out = append(out, resetSGR...)
	} else {
		out = append(out, p...)
	}
	if _, err := c.out.Write(out); err != nil {
		logger.Println("write stdout:", err)
	}
	return ended
}

const resetSGR = "\x1b[0m"
