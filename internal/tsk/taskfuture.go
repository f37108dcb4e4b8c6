package tsk

import (
	"context"

	"github.com/abevier/outcome/futures"
)

// TaskFuture carries a submitted task to a worker along with the future the worker completes.
type TaskFuture[T any, R any] struct {
	Ctx    context.Context
	Task   T
	Future *futures.Future[R]
}

func NewTaskFuture[T any, R any](ctx context.Context, task T) TaskFuture[T, R] {
	return TaskFuture[T, R]{
		Ctx:    ctx,
		Task:   task,
		Future: futures.New[R](),
	}
}

// Run completes the future with the outcome of run, unless the task's context is already done,
// in which case the future fails with the context error and run is never called.
func (tf TaskFuture[T, R]) Run(run func(ctx context.Context, task T) (R, error)) {
	if err := tf.Ctx.Err(); err != nil {
		tf.Future.Fail(err)
		return
	}

	tf.Future.Resolve(run(tf.Ctx, tf.Task))
}
