package tsk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmitStrategies(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		strategy FullQueueStrategy
		full     bool
		ctx      context.Context
		wantErr  error
	}{
		{name: "block with room", strategy: BlockWhenFull, ctx: context.Background()},
		{name: "block when full until canceled", strategy: BlockWhenFull, full: true, ctx: canceled, wantErr: context.Canceled},
		{name: "error with room", strategy: ErrorWhenFull, ctx: context.Background()},
		{name: "error when full", strategy: ErrorWhenFull, full: true, ctx: context.Background(), wantErr: ErrQueueFull},
		{name: "error when full ignores context", strategy: ErrorWhenFull, full: true, ctx: canceled, wantErr: ErrQueueFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			c := make(chan TaskFuture[int, int], 1)
			if tt.full {
				c <- NewTaskFuture[int, int](context.Background(), 0)
			}

			submit := GetSubmitFunction[int, int](tt.strategy)
			tf := NewTaskFuture[int, int](tt.ctx, 7)

			err := submit(c, tf)
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
				return
			}
			req.NoError(err)

			queued := <-c
			req.Equal(7, queued.Task)
			req.Same(tf.Future, queued.Future)
		})
	}
}

func TestSubmittedTaskIsCompletedByConsumer(t *testing.T) {
	req := require.New(t)

	c := make(chan TaskFuture[int, int])
	go func() {
		for tf := range c {
			tf.Run(func(ctx context.Context, n int) (int, error) { return n * 6, nil })
		}
	}()
	defer close(c)

	ctx := context.Background()
	tf := NewTaskFuture[int, int](ctx, 7)
	req.NoError(GetSubmitFunction[int, int](BlockWhenFull)(c, tf))

	v, err := tf.Future.Get(ctx)
	req.NoError(err)
	req.Equal(42, v)
}

func TestGetSubmitFunctionPanic(t *testing.T) {
	req := require.New(t)

	req.PanicsWithValue("invalid full queue strategy FullQueueStrategy(-1)", func() {
		GetSubmitFunction[int, int](-1)
	})
	req.Equal("block", BlockWhenFull.String())
	req.Equal("error", ErrorWhenFull.String())
}
