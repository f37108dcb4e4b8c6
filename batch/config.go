package batch

import (
	"time"

	"go.uber.org/zap"
)

// Opts is used to configure an Executor via the New function.
type Opts struct {
	// MaxSize is the number of tasks that triggers an immediate flush of the pending batch.
	MaxSize int
	// MaxLinger is how long a partial batch waits for more tasks before it is flushed anyway.
	MaxLinger time.Duration
	// Logger receives flush and failure events. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Opts) validate() {
	if o.MaxSize <= 1 {
		panic("maximum batch size must be greater than 1")
	}

	if o.MaxLinger <= 0 {
		panic("batch linger must be greater than 0")
	}
}

func (o Opts) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
