package tsk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskFutureRun(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	tf := NewTaskFuture[int, int](ctx, 21)
	tf.Run(func(ctx context.Context, n int) (int, error) { return n * 2, nil })

	v, err := tf.Future.Get(ctx)
	req.NoError(err)
	req.Equal(42, v)

	errTest := errors.New("test err")
	tf = NewTaskFuture[int, int](ctx, 1)
	tf.Run(func(ctx context.Context, n int) (int, error) { return n, errTest })

	r := tf.Future.Result(ctx)
	req.True(r.IsFailure())
	e, _ := r.Err()
	req.ErrorIs(e, errTest)
}

func TestTaskFutureRunSkipsDoneContext(t *testing.T) {
	req := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	tf := NewTaskFuture[int, int](ctx, 1)
	tf.Run(func(ctx context.Context, n int) (int, error) {
		called = true
		return n, nil
	})

	req.False(called)
	_, err := tf.Future.Get(context.Background())
	req.ErrorIs(err, context.Canceled)
}
