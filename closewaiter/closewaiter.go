// Package closewaiter lets an executor shut down while other goroutines may still be submitting to it.
package closewaiter

import (
	"runtime"

	"github.com/zeebo/errs"
	"go.uber.org/atomic"
)

var (
	Error = errs.Class("closewaiter")

	// ErrClosed is returned by Do once Close has been called.
	ErrClosed = Error.New("closed")
)

type CloseWaiter struct {
	isClosed  atomic.Bool
	activeCnt atomic.Int32

	closed chan struct{}
}

func New() *CloseWaiter {
	return &CloseWaiter{
		closed: make(chan struct{}),
	}
}

// Do runs f unless Close has been called, in which case f is skipped and ErrClosed is returned.
func (c *CloseWaiter) Do(f func()) error {
	c.activeCnt.Inc()
	defer c.activeCnt.Dec()

	if c.isClosed.Load() {
		return ErrClosed
	}

	f()
	return nil
}

// Close waits for every in-flight Do to return, then runs f exactly once.
// Every call to Close blocks until f has returned.
func (c *CloseWaiter) Close(f func()) {
	if c.isClosed.CAS(false, true) {
		go func() {
			for c.activeCnt.Load() != 0 {
				// busy wait while yielding until all calls to Do have exited
				runtime.Gosched()
			}

			f()

			close(c.closed)
		}()
	}

	<-c.closed
}

func (c *CloseWaiter) IsClosed() bool {
	return c.isClosed.Load()
}
