// Package futures provides an implementation of a Future which represents an asynchronous computation.
// A Future can be created and then passed around and read by multiple consumers.  This is the key difference
// between a Future and using a channel for an asynchronous computation as a channel value can only be read once.
//
// The outcome of a Future is held as a results.Result so it can be handed to consumers either as a
// (value, error) pair via Get or as a single value via Result.
package futures

import (
	"context"

	"github.com/abevier/outcome/results"
	"github.com/zeebo/errs"
	"go.uber.org/atomic"
)

var (
	// Error is the error class for errors created by this package
	Error = errs.Class("future")

	// ErrCanceled is the error reported when a future is completed by calling Cancel
	ErrCanceled = Error.New("future canceled")
)

// FutureFunc is the function signature required to create a Future via FromFunc
type FutureFunc[T any] func() (T, error)

// Future is a structure that represents an asynchronous computation.
// A Future should be created by calling New() or using the FromFunc convience function.
// Once a future has been created it can be completed exactly once.  The first completion value
// wins and all other completions are silently ignored.
//
// The functions Complete, Cancel, Fail, Resolve and Settle will all complete a future.
// Complete is used in the success case
// Fail is used for signaling that the Future failed with an error
// Cancel is used to signal that the asynchronous computation was canceled
// Resolve takes a (value, error) pair and picks between Complete and Fail
// Settle takes a results.Result as produced elsewhere
//
// Get and Result are used to extract the outcome from the Future.  If the future has not been
// completed calling either will block until the future completes or until the context is canceled.
// They can be called by multiple go routines simultaneously and they will all receive the same outcome.
type Future[T any] struct {
	isCompleted atomic.Bool
	completed   chan struct{}

	result results.Result[T, error]
}

// New creates a new uncompleted Future that will eventually contain a value of type T which can be anything.
// This future must be manually completed by calling Complete, Fail, Cancel or Resolve
func New[T any]() *Future[T] {
	return &Future[T]{
		completed: make(chan struct{}),
	}
}

// FromFunc creates a new uncompleted Future that will eventually contain the return value of the provided function.
// The provided function is run asynchronously when this function is invoked.
func FromFunc[T any](do FutureFunc[T]) *Future[T] {
	f := New[T]()

	go func() {
		f.Resolve(do())
	}()

	return f
}

// Complete completes this Future with the provided value.  If the future has already been completed this call is ignored.
func (f *Future[T]) Complete(value T) {
	f.internalComplete(results.Success[error](value))
}

// Cancel completes this Future with the ErrCanceled error.  If the future has already been completed this call is ignored.
func (f *Future[T]) Cancel() {
	f.Fail(ErrCanceled)
}

// Fail completes this Future with the provided error.  If the future has already been completed this call is ignored.
func (f *Future[T]) Fail(err error) {
	f.internalComplete(results.Failure[T](err))
}

// Resolve fails this Future when err is non-nil and completes it with value otherwise.
func (f *Future[T]) Resolve(value T, err error) {
	f.internalComplete(results.New(value, err))
}

// Settle completes this Future with r as is, keeping a failure a failure even when its error is nil.
// If the future has already been completed this call is ignored.
func (f *Future[T]) Settle(r results.Result[T, error]) {
	f.internalComplete(r)
}

func (f *Future[T]) internalComplete(r results.Result[T, error]) {
	if f.isCompleted.CAS(false, true) {
		f.result = r
		close(f.completed)
	}
}

// Get retrieves the value of this Future.  A failure always comes back with a non-nil error, see results.Get.
// If the future is not yet completed this call will block until the future is
// completed or until the provided context is canceled.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	return results.Get(f.Result(ctx))
}

// Result retrieves the outcome of this Future as a results.Result.  A canceled context yields a failure carrying
// the context's error.
func (f *Future[T]) Result(ctx context.Context) results.Result[T, error] {
	select {
	case <-f.completed:
		return f.result
	case <-ctx.Done():
		return results.Failure[T](ctx.Err())
	}
}
