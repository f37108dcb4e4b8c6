// Package ratelimiter runs submitted tasks no faster than a configured token bucket allows.
package ratelimiter

import (
	"context"
	"sync"

	"github.com/abevier/outcome/closewaiter"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/internal/tsk"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrQueueFull = tsk.ErrQueueFull
	ErrClosed    = closewaiter.ErrClosed
)

type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type RateLimiter[T any, R any] struct {
	limiter  *rate.Limiter
	taskChan chan tsk.TaskFuture[T, R]

	submit tsk.SubmitFunction[T, R]
	run    RunFunction[T, R]
	log    *zap.Logger

	cw      *closewaiter.CloseWaiter
	stopped chan struct{}
	running sync.WaitGroup
}

func New[T any, R any](opts Opts, run RunFunction[T, R]) *RateLimiter[T, R] {
	opts.validate()

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rl := &RateLimiter[T, R]{
		limiter:  rate.NewLimiter(opts.Limit, opts.Burst),
		taskChan: make(chan tsk.TaskFuture[T, R], opts.MaxQueueDepth),
		submit:   tsk.GetSubmitFunction[T, R](tsk.FullQueueStrategy(opts.FullQueueStrategy)),
		run:      run,
		log:      log,
		cw:       closewaiter.New(),
		stopped:  make(chan struct{}),
	}

	rl.startWorker()

	return rl
}

func (rl *RateLimiter[T, R]) startWorker() {
	go func() {
		defer close(rl.stopped)

		for tf := range rl.taskChan {
			if err := rl.limiter.Wait(tf.Ctx); err != nil {
				rl.log.Debug("rate limit wait failed", zap.Error(err))
				tf.Future.Fail(err)
				continue
			}

			rl.runTask(tf)
		}
	}()
}

func (rl *RateLimiter[T, R]) runTask(tf tsk.TaskFuture[T, R]) {
	rl.running.Add(1)
	go func() {
		defer rl.running.Done()
		tf.Run(rl.run)
	}()
}

// Submit queues task and blocks until it has run or ctx is done.
func (rl *RateLimiter[T, R]) Submit(ctx context.Context, task T) (R, error) {
	return rl.SubmitF(ctx, task).Get(ctx)
}

// SubmitF queues task and returns a future for its result.
func (rl *RateLimiter[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	tf := tsk.NewTaskFuture[T, R](ctx, task)

	err := rl.cw.Do(func() {
		if err := rl.submit(rl.taskChan, tf); err != nil {
			tf.Future.Fail(err)
		}
	})
	if err != nil {
		tf.Future.Fail(err)
	}

	return tf.Future
}

// Close stops accepting tasks and waits until every queued task has been run or failed.
// It is safe to call Close more than once.
func (rl *RateLimiter[T, R]) Close() {
	rl.cw.Close(func() {
		close(rl.taskChan)
	})

	<-rl.stopped
	rl.running.Wait()
}
