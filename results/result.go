// Package results provides Result, a value that is either a success carrying a T
// or a failure carrying an E.
//
// A Result is immutable once built and can be shared freely between goroutines.
// Build one with Success, Failure or New, then read it with IsSuccess/IsFailure,
// the comma-ok accessors Value and Err, or the exhaustive Match.
package results

import (
	"fmt"

	"github.com/zeebo/errs"
)

var (
	Error = errs.Class("results")

	// ErrNilFailure is returned by Get for a failure whose error payload is nil.
	ErrNilFailure = Error.New("failure carries a nil error")
)

// Result is a tagged union of a success payload of type T and a failure payload of type E.
//
// The failed flag is the tag and val and err share the role of a single payload slot:
// Success only ever sets val and Failure only ever sets err, so exactly one of them is
// meaningful and the other is left at its zero value. The zero Result is a success
// carrying the zero T.
type Result[T any, E any] struct {
	failed bool
	val    T
	err    E
}

// Success returns a successful Result carrying val.
// The failure type is the first type parameter so it can be named while val's type is inferred:
//
//	r := results.Success[error](42)
func Success[E any, T any](val T) Result[T, E] {
	return Result[T, E]{val: val}
}

// Failure returns a failed Result carrying err.
// No success value can be read back from it; the success type only needs to be named:
//
//	r := results.Failure[int]("user not found")
func Failure[T any, E any](err E) Result[T, E] {
	return Result[T, E]{failed: true, err: err}
}

// New converts a (value, error) pair into a Result. A non-nil err makes a failure and val is discarded.
func New[T any](val T, err error) Result[T, error] {
	if err != nil {
		return Failure[T](err)
	}
	return Success[error](val)
}

// Get is the inverse of New. A failure always yields a non-nil error: one carrying a nil
// error reports ErrNilFailure instead.
func Get[T any](r Result[T, error]) (T, error) {
	if r.failed {
		if r.err == nil {
			return *new(T), ErrNilFailure
		}
		return *new(T), r.err
	}
	return r.val, nil
}

// IsSuccess reports whether r is a success.
func IsSuccess[T any, E any](r Result[T, E]) bool {
	return !r.failed
}

// IsFailure reports whether r is a failure. It is always the negation of IsSuccess.
func IsFailure[T any, E any](r Result[T, E]) bool {
	return r.failed
}

// IsSuccess reports whether r is a success. See the IsSuccess function.
func (r Result[T, E]) IsSuccess() bool {
	return !r.failed
}

// IsFailure reports whether r is a failure. See the IsFailure function.
func (r Result[T, E]) IsFailure() bool {
	return r.failed
}

// Value returns the success payload. ok is false for a failure, in which case the zero T is returned.
func (r Result[T, E]) Value() (val T, ok bool) {
	if r.failed {
		return val, false
	}
	return r.val, true
}

// Err returns the failure payload. ok is false for a success, in which case the zero E is returned.
func (r Result[T, E]) Err() (err E, ok bool) {
	if !r.failed {
		return err, false
	}
	return r.err, true
}

// Match calls onSuccess with the success payload or onFailure with the failure payload
// and returns whatever the called function returns. Exactly one of them runs.
func Match[T any, E any, U any](r Result[T, E], onSuccess func(T) U, onFailure func(E) U) U {
	if r.failed {
		return onFailure(r.err)
	}
	return onSuccess(r.val)
}

func (r Result[T, E]) String() string {
	if r.failed {
		return fmt.Sprintf("failure(%v)", r.err)
	}
	return fmt.Sprintf("success(%v)", r.val)
}
