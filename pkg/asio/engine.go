// Package asio owns the background thread that drives an I/O readiness
// notification backend.
//
// An Engine goes through the cycle Init, Start, Stop, after which it can be
// initialized again. Stop refuses to tear the backend down while there are
// outstanding noisy subscriptions, which are subscriptions that should keep
// the process alive; see NoisyAdd.
package asio

import (
	"errors"
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"src.rtio.sh/pkg/logutil"
	"src.rtio.sh/pkg/sys"
)

var logger = logutil.GetLogger("[asio] ")

// Backend is a readiness notification backend.
type Backend interface {
	// Dispatch runs the event loop on the calling goroutine until Final is
	// called.
	Dispatch()
	// Final asks a running Dispatch to return. It may be called from any
	// goroutine.
	Final()
}

// Factory creates a Backend.
type Factory func() (Backend, error)

// NoCPU is the CPU value that leaves the dispatch thread unpinned.
const NoCPU = -1

var (
	// ErrNoBackend is returned by Init when the factory returns neither a
	// backend nor an error.
	ErrNoBackend = errors.New("backend factory returned no backend")
	// ErrInitialized is returned by Init when the engine already has a
	// backend.
	ErrInitialized = errors.New("engine already initialized")
)

// Engine manages a Backend and the goroutine running its Dispatch method.
//
// Init, Start and Stop must not be called concurrently with each other. All
// other methods are safe to call from any goroutine at any time.
type Engine struct {
	factory Factory

	// Serializes Init, Start and Stop.
	mutex sync.Mutex
	// Nil when there is no backend.
	backend atomic.Pointer[holder]
	cpu     atomic.Int64
	// Closed when the dispatch goroutine exits; nil when there is no
	// dispatch goroutine.
	done chan struct{}

	noisy atomic.Uint64
}

type holder struct{ b Backend }

// New creates an Engine that creates backends with the given factory.
func New(factory Factory) *Engine {
	e := &Engine{factory: factory}
	e.cpu.Store(NoCPU)
	return e
}

// Init creates the backend and records the CPU the dispatch thread should be
// pinned to, or NoCPU. It does not start any goroutine.
func (e *Engine) Init(cpu int) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.backend.Load() != nil {
		return ErrInitialized
	}
	e.cpu.Store(int64(cpu))
	b, err := e.factory()
	if err != nil {
		logger.Println("create backend:", err)
		return err
	}
	if b == nil {
		return ErrNoBackend
	}
	e.backend.Store(&holder{b})
	return nil
}

// Start starts the dispatch goroutine. It returns false if there is no
// backend or the dispatch goroutine is already running.
//
// The dispatch goroutine is locked to its own OS thread, which is pinned to
// the CPU given to Init. Failure to pin is logged and otherwise ignored.
func (e *Engine) Start() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	h := e.backend.Load()
	if h == nil {
		return false
	}
	if e.done != nil {
		logger.Println("start: dispatch already running")
		return false
	}
	done := make(chan struct{})
	e.done = done
	go dispatch(h.b, int(e.cpu.Load()), done)
	return true
}

func dispatch(b Backend, cpu int, done chan<- struct{}) {
	defer close(done)
	// Never unlocked, so that the thread and its affinity are discarded when
	// the goroutine exits.
	runtime.LockOSThread()
	if cpu != NoCPU {
		if err := sys.PinToCPU(cpu); err != nil {
			logger.Printf("pin dispatch thread to CPU %d: %v", cpu, err)
		}
	}
	b.Dispatch()
}

// Stoppable reports whether there are no outstanding noisy subscriptions.
func (e *Engine) Stoppable() bool {
	return e.noisy.Load() == 0
}

// Stop tears down the backend. It returns false without doing anything if
// there are outstanding noisy subscriptions.
//
// If the dispatch goroutine is running, Stop calls the backend's Final method
// and waits for Dispatch to return. If the backend was never started and
// implements io.Closer, it is closed instead. Afterwards the engine can be
// initialized again. Stopping an engine without a backend succeeds.
func (e *Engine) Stop() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	// Checked with the lock held, so that noisy subscriptions added while
	// waiting for the lock are seen.
	if !e.Stoppable() {
		return false
	}
	h := e.backend.Load()
	if h == nil {
		return true
	}
	if e.done != nil {
		h.b.Final()
		<-e.done
		e.done = nil
	} else if closer, ok := h.b.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Println("close backend:", err)
		}
	}
	e.backend.Store(nil)
	return true
}

// NoisyAdd records a new noisy subscription and returns the previous count.
func (e *Engine) NoisyAdd() uint64 {
	return e.noisy.Add(1) - 1
}

// NoisyRemove records the end of a noisy subscription and returns the
// previous count. Calling it when the count is already 0 is a bug in the
// caller; it is logged and the count stays at 0.
func (e *Engine) NoisyRemove() uint64 {
	for {
		old := e.noisy.Load()
		if old == 0 {
			logger.Println("noisy remove with no noisy subscriptions")
			return 0
		}
		if e.noisy.CompareAndSwap(old, old-1) {
			return old
		}
	}
}

// Backend returns the current backend, if any. It never blocks.
func (e *Engine) Backend() (Backend, bool) {
	if h := e.backend.Load(); h != nil {
		return h.b, true
	}
	return nil, false
}

// CPU returns the CPU passed to the last call to Init, or NoCPU.
func (e *Engine) CPU() int {
	return int(e.cpu.Load())
}
