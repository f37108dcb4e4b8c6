package taskqueue

import (
	"github.com/abevier/outcome/internal/tsk"
	"go.uber.org/zap"
)

// FullQueueStrategy is the behavior of Submit when MaxQueueDepth tasks are already waiting for a worker.
type FullQueueStrategy tsk.FullQueueStrategy

const (
	// BlockWhenFull blocks the caller until there is room in the queue or its context is done.
	BlockWhenFull FullQueueStrategy = FullQueueStrategy(tsk.BlockWhenFull)
	// ErrorWhenFull fails the submission immediately with ErrQueueFull.
	ErrorWhenFull FullQueueStrategy = FullQueueStrategy(tsk.ErrorWhenFull)
)

// Opts is used to configure a TaskQueue via the New function.
type Opts struct {
	MaxWorkers        int
	MaxQueueDepth     int
	FullQueueStrategy FullQueueStrategy
	Logger            *zap.Logger
}

func (o Opts) validate() {
	if o.MaxWorkers < 1 {
		panic("task queue max workers must be 1 or greater")
	}

	if o.MaxQueueDepth < 0 {
		panic("task queue max queue depth must be 0 or greater")
	}
}
