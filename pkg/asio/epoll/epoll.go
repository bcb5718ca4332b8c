//go:build linux

// Package epoll implements an asio.Backend with Linux epoll.
package epoll

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"src.rtio.sh/pkg/asio"
	"src.rtio.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[epoll] ")

// ErrClosed is returned when subscribing to a closed Poller.
var ErrClosed = errors.New("poller closed")

const maxEvents = 64

// Flags select the readiness a Subscription is interested in.
type Flags uint8

// Possible bits of Flags.
const (
	Read Flags = 1 << iota
	Write
	// Disarm the subscription after one notification; see Poller.Resume.
	Oneshot
)

func (f Flags) epoll() uint32 {
	var ev uint32
	if f&Read != 0 {
		ev |= unix.EPOLLIN | unix.EPOLLRDHUP
	}
	if f&Write != 0 {
		ev |= unix.EPOLLOUT
	}
	if f&Oneshot != 0 {
		ev |= unix.EPOLLONESHOT
	}
	return ev
}

// Events describe the readiness of a file descriptor.
type Events uint8

// Possible bits of Events.
const (
	Readable Events = 1 << iota
	Writable
	// The peer hung up or the descriptor is in an error state.
	Hangup
)

func convertEvents(ev uint32) Events {
	var e Events
	if ev&unix.EPOLLIN != 0 {
		e |= Readable
	}
	if ev&unix.EPOLLOUT != 0 {
		e |= Writable
	}
	if ev&(unix.EPOLLHUP|unix.EPOLLRDHUP|unix.EPOLLERR) != 0 {
		e |= Hangup
	}
	return e
}

// Callback is called on the dispatch goroutine when a subscribed descriptor
// becomes ready.
type Callback func(s *Subscription, ev Events)

// Subscription is a registered interest in one file descriptor.
type Subscription struct {
	fd    int
	flags Flags
	cb    Callback
}

// Fd returns the subscribed file descriptor.
func (s *Subscription) Fd() int { return s.fd }

// Poller is an asio.Backend built on an epoll instance. Subscriptions may be
// added and removed from any goroutine, including from within callbacks.
type Poller struct {
	epfd int
	// An eventfd that wakes Dispatch up to return.
	wakefd int

	// Guards subs and closed. The descriptors are only used with mutex
	// held, so that they are never used after Close has released them for
	// reuse.
	mutex  sync.Mutex
	subs   map[int32]*Subscription
	closed bool

	stdin atomic.Pointer[Subscription]

	closeOnce sync.Once
	closeErr  error
}

var _ asio.Backend = (*Poller)(nil)

// New creates a Poller.
func New() (*Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	wakefd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		unix.Close(epfd)
		return nil, fmt.Errorf("eventfd: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakefd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakefd, &ev); err != nil {
		unix.Close(wakefd)
		unix.Close(epfd)
		return nil, fmt.Errorf("epoll ctl add eventfd: %w", err)
	}
	return &Poller{epfd: epfd, wakefd: wakefd, subs: make(map[int32]*Subscription)}, nil
}

// Factory is an asio.Factory that creates a Poller.
func Factory() (asio.Backend, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Subscribe registers cb to be called when fd becomes ready as described by
// flags. A descriptor can only have one subscription at a time.
func (p *Poller) Subscribe(fd int, flags Flags, cb Callback) (*Subscription, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	s := &Subscription{fd: fd, flags: flags, cb: cb}
	ev := unix.EpollEvent{Events: flags.epoll(), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return nil, fmt.Errorf("epoll ctl add %d: %w", fd, err)
	}
	p.subs[int32(fd)] = s
	return s, nil
}

// Resume re-arms a Oneshot subscription after it has fired.
func (p *Poller) Resume(s *Subscription) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return ErrClosed
	}
	ev := unix.EpollEvent{Events: s.flags.epoll(), Fd: int32(s.fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, s.fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl mod %d: %w", s.fd, err)
	}
	return nil
}

// Unsubscribe removes a subscription. Its callback will not be called again
// once Unsubscribe returns, unless it is already running.
func (p *Poller) Unsubscribe(s *Subscription) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.subs[int32(s.fd)] != s {
		return nil
	}
	delete(p.subs, int32(s.fd))
	if p.closed {
		return nil
	}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, s.fd, nil); err != nil {
		return fmt.Errorf("epoll ctl del %d: %w", s.fd, err)
	}
	return nil
}

// NotifyStdin subscribes to readability of the standard input descriptor fd,
// calling notify once per arming. After consuming input, the reader re-arms
// the subscription with ResumeStdin. The returned function cancels the
// subscription.
func (p *Poller) NotifyStdin(fd int, notify func()) (cancel func() error, err error) {
	s, err := p.Subscribe(fd, Read|Oneshot, func(*Subscription, Events) { notify() })
	if err != nil {
		return nil, err
	}
	p.stdin.Store(s)
	return func() error {
		p.stdin.CompareAndSwap(s, nil)
		return p.Unsubscribe(s)
	}, nil
}

// ResumeStdin re-arms the subscription created by NotifyStdin, if any.
func (p *Poller) ResumeStdin() {
	if s := p.stdin.Load(); s != nil {
		if err := p.Resume(s); err != nil {
			logger.Println("resume stdin:", err)
		}
	}
}

// Dispatch waits for events and calls the callbacks of ready subscriptions
// until Final is called. It closes the Poller before returning.
func (p *Poller) Dispatch() {
	defer p.Close()
	var events [maxEvents]unix.EpollEvent
	for {
		n, err := unix.EpollWait(p.epfd, events[:], -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			logger.Println("epoll wait:", err)
			return
		}
		quit := false
		for i := 0; i < n; i++ {
			ev := &events[i]
			if int(ev.Fd) == p.wakefd {
				quit = true
				continue
			}
			p.mutex.Lock()
			s := p.subs[ev.Fd]
			p.mutex.Unlock()
			if s != nil {
				p.fire(s, convertEvents(ev.Events))
			}
		}
		if quit {
			return
		}
	}
}

func (p *Poller) fire(s *Subscription, ev Events) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("callback for fd %d panicked: %v", s.fd, r)
		}
	}()
	s.cb(s, ev)
}

// Final wakes up Dispatch and makes it return.
func (p *Poller) Final() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return
	}
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	if _, err := unix.Write(p.wakefd, buf[:]); err != nil {
		logger.Println("write eventfd:", err)
	}
}

// Close releases the epoll instance. It is called by Dispatch when it
// returns, and only needs to be called directly for a Poller that was never
// dispatched.
func (p *Poller) Close() error {
	p.closeOnce.Do(func() {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		p.closed = true
		p.closeErr = errors.Join(unix.Close(p.wakefd), unix.Close(p.epfd))
		clear(p.subs)
	})
	return p.closeErr
}
