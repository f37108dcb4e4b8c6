package tsk

import (
	"fmt"

	"github.com/zeebo/errs"
)

// Error is the error class shared by the executors built on top of this package.
var Error = errs.Class("tsk")

var (
	ErrQueueFull = Error.New("task queue is full")
)

// FullQueueStrategy decides what a submit does when the task channel has no room.
type FullQueueStrategy int

const (
	BlockWhenFull FullQueueStrategy = iota
	ErrorWhenFull
)

func (s FullQueueStrategy) String() string {
	switch s {
	case BlockWhenFull:
		return "block"
	case ErrorWhenFull:
		return "error"
	}
	return fmt.Sprintf("FullQueueStrategy(%d)", int(s))
}

// SubmitFunction hands tf to whichever worker reads taskChan, or reports why it could not.
type SubmitFunction[T any, R any] func(taskChan chan<- TaskFuture[T, R], tf TaskFuture[T, R]) error

// GetSubmitFunction returns the submit function for s. An unknown strategy is a configuration bug and panics.
func GetSubmitFunction[T any, R any](s FullQueueStrategy) SubmitFunction[T, R] {
	switch s {
	case BlockWhenFull:
		return blockWhenFull[T, R]
	case ErrorWhenFull:
		return errorWhenFull[T, R]
	}
	panic(fmt.Sprintf("invalid full queue strategy %s", s))
}

// blockWhenFull waits for room in taskChan until the task's own context is done.
func blockWhenFull[T any, R any](taskChan chan<- TaskFuture[T, R], tf TaskFuture[T, R]) error {
	select {
	case taskChan <- tf:
		return nil
	case <-tf.Ctx.Done():
		return tf.Ctx.Err()
	}
}

// errorWhenFull never waits; the task's context is not consulted.
func errorWhenFull[T any, R any](taskChan chan<- TaskFuture[T, R], tf TaskFuture[T, R]) error {
	select {
	case taskChan <- tf:
		return nil
	default:
		return ErrQueueFull
	}
}
