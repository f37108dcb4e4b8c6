// Package taskqueue runs submitted tasks on a fixed pool of workers.
package taskqueue

import (
	"context"
	"sync"

	"github.com/abevier/outcome/closewaiter"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/internal/tsk"
	"go.uber.org/zap"
)

var (
	ErrQueueFull = tsk.ErrQueueFull
	ErrClosed    = closewaiter.ErrClosed
)

// RunFunction processes a single task. The context carries the worker id, see WorkerIDFromContext.
type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type TaskQueue[T any, R any] struct {
	run      RunFunction[T, R]
	taskChan chan tsk.TaskFuture[T, R]
	submit   tsk.SubmitFunction[T, R]
	log      *zap.Logger

	cw      *closewaiter.CloseWaiter
	workers sync.WaitGroup
}

func New[T any, R any](opts Opts, run RunFunction[T, R]) *TaskQueue[T, R] {
	opts.validate()

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	tq := &TaskQueue[T, R]{
		run:      run,
		taskChan: make(chan tsk.TaskFuture[T, R], opts.MaxQueueDepth),
		submit:   tsk.GetSubmitFunction[T, R](tsk.FullQueueStrategy(opts.FullQueueStrategy)),
		log:      log,
		cw:       closewaiter.New(),
	}

	for i := 0; i < opts.MaxWorkers; i++ {
		tq.workers.Add(1)
		go tq.worker(i)
	}

	return tq
}

func (tq *TaskQueue[T, R]) worker(id int) {
	defer tq.workers.Done()

	log := tq.log.With(zap.Int("worker", id))
	log.Debug("worker started")

	for tf := range tq.taskChan {
		tf.Ctx = withWorkerID(tf.Ctx, id)
		tf.Run(tq.run)
	}

	log.Debug("worker stopped")
}

// Submit queues task and blocks until a worker has run it or ctx is done.
func (tq *TaskQueue[T, R]) Submit(ctx context.Context, task T) (R, error) {
	return tq.SubmitF(ctx, task).Get(ctx)
}

// SubmitF queues task and returns a future for its result. Submission errors such as ErrQueueFull
// or ErrClosed are reported through the future.
func (tq *TaskQueue[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	tf := tsk.NewTaskFuture[T, R](ctx, task)

	err := tq.cw.Do(func() {
		if err := tq.submit(tq.taskChan, tf); err != nil {
			tf.Future.Fail(err)
		}
	})
	if err != nil {
		tf.Future.Fail(err)
	}

	return tf.Future
}

// Close stops accepting tasks, lets the workers drain the queue and waits for them to exit.
func (tq *TaskQueue[T, R]) Close() {
	tq.cw.Close(func() {
		close(tq.taskChan)
	})

	tq.workers.Wait()
}
