// Package batch groups individually submitted tasks into batches and runs each batch with a single call.
// The run function reports one results.Result per task so that a single bad item does not fail its neighbours.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/abevier/outcome/closewaiter"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/results"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

var (
	Error = errs.Class("batch")

	// ErrBatchResultMismatch fails every task of a batch whose run function returned the wrong number of results.
	ErrBatchResultMismatch = Error.New("run function returned a result count that does not match the task count")
	// ErrClosed is returned for tasks submitted after Close.
	ErrClosed = closewaiter.ErrClosed
)

// RunFunction runs a whole batch. The returned slice must hold one result per task, in task order.
// A non-nil error fails every task in the batch.
type RunFunction[T any, R any] func(tasks []T) ([]results.Result[R, error], error)

type flushReason string

const (
	flushFull   flushReason = "full"
	flushLinger flushReason = "linger"
	flushClose  flushReason = "close"
)

type batch[T any, R any] struct {
	id      int
	tasks   []T
	futures []*futures.Future[R]
	timer   *time.Timer
}

func (b *batch[T, R]) add(task T, f *futures.Future[R]) {
	b.tasks = append(b.tasks, task)
	b.futures = append(b.futures, f)
}

func (b *batch[T, R]) fail(err error) {
	for _, f := range b.futures {
		f.Fail(err)
	}
}

type Executor[T any, R any] struct {
	m            sync.Mutex
	sequenceNum  int
	currentBatch *batch[T, R]

	run       RunFunction[T, R]
	maxSize   int
	maxLinger time.Duration
	log       *zap.Logger

	cw      *closewaiter.CloseWaiter
	running sync.WaitGroup
}

func New[T any, R any](opts Opts, run RunFunction[T, R]) *Executor[T, R] {
	opts.validate()

	return &Executor[T, R]{
		run:       run,
		maxSize:   opts.MaxSize,
		maxLinger: opts.MaxLinger,
		log:       opts.logger(),
		cw:        closewaiter.New(),
	}
}

// Submit adds task to the pending batch and blocks until the batch has run or ctx is done.
func (be *Executor[T, R]) Submit(ctx context.Context, task T) (R, error) {
	return be.SubmitF(ctx, task).Get(ctx)
}

// SubmitF adds task to the pending batch and returns a future for its result.
func (be *Executor[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	f := futures.New[R]()

	if err := ctx.Err(); err != nil {
		f.Fail(err)
		return f
	}

	if err := be.cw.Do(func() { be.addTask(task, f) }); err != nil {
		f.Fail(err)
	}

	return f
}

func (be *Executor[T, R]) addTask(task T, f *futures.Future[R]) {
	be.m.Lock()
	defer be.m.Unlock()

	if be.currentBatch == nil {
		be.currentBatch = be.newBatch()
	}
	be.currentBatch.add(task, f)

	if len(be.currentBatch.tasks) >= be.maxSize {
		be.currentBatch.timer.Stop()
		be.dispatch(flushFull)
	}
}

func (be *Executor[T, R]) newBatch() *batch[T, R] {
	be.sequenceNum++

	b := &batch[T, R]{
		id:      be.sequenceNum,
		tasks:   make([]T, 0, be.maxSize),
		futures: make([]*futures.Future[R], 0, be.maxSize),
	}

	id := b.id
	b.timer = time.AfterFunc(be.maxLinger, func() { be.expireBatch(id) })
	return b
}

func (be *Executor[T, R]) expireBatch(batchID int) {
	be.m.Lock()
	defer be.m.Unlock()

	if be.currentBatch != nil && be.currentBatch.id == batchID {
		be.dispatch(flushLinger)
	}
}

// dispatch hands the current batch to its own goroutine. Callers must hold be.m.
func (be *Executor[T, R]) dispatch(reason flushReason) {
	b := be.currentBatch
	be.currentBatch = nil

	be.running.Add(1)
	go be.runBatch(b, reason)
}

func (be *Executor[T, R]) runBatch(b *batch[T, R], reason flushReason) {
	defer be.running.Done()

	log := be.log.With(zap.Int("batch", b.id), zap.Int("size", len(b.tasks)))
	log.Debug("running batch", zap.String("reason", string(reason)))

	rs, err := be.run(b.tasks)
	if err != nil {
		log.Warn("batch failed", zap.Error(err))
		b.fail(err)
		return
	}

	if len(rs) != len(b.tasks) {
		log.Error("batch result mismatch", zap.Int("results", len(rs)))
		b.fail(ErrBatchResultMismatch)
		return
	}

	for i, r := range rs {
		if r.IsFailure() {
			log.Debug("task failed", zap.Int("index", i), zap.Stringer("result", r))
		}
		b.futures[i].Settle(r)
	}
}

// Close flushes the pending batch, waits for every running batch to finish and rejects any later submission
// with ErrClosed. It is safe to call Close more than once.
func (be *Executor[T, R]) Close() {
	be.cw.Close(func() {
		be.m.Lock()
		defer be.m.Unlock()

		if be.currentBatch != nil {
			be.currentBatch.timer.Stop()
			be.dispatch(flushClose)
		}
	})

	be.running.Wait()
}
