package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRateLimiter(t *testing.T) {
	require := require.New(t)

	wg := sync.WaitGroup{}
	log := zap.NewExample()

	run := func(ctx context.Context, n int) (int, error) {
		log.Info("processing request", zap.Int("n", n))
		return n * 2, nil
	}

	rl := New(Opts{Limit: 1000, Burst: 1, MaxQueueDepth: 10, Logger: log}, run)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			r, err := rl.Submit(context.Background(), n)
			require.NoError(err)
			require.Equal(n*2, r)
		}(i)
	}

	wg.Wait()
	rl.Close()
}

func TestRateLimiterPacing(t *testing.T) {
	require := require.New(t)

	run := func(ctx context.Context, n int) (int, error) {
		return n, nil
	}

	rl := New(Opts{Limit: Every(10 * time.Millisecond), Burst: 1, MaxQueueDepth: 5}, run)
	defer rl.Close()

	start := time.Now()
	for i := 0; i < 4; i++ {
		_, err := rl.Submit(context.Background(), i)
		require.NoError(err)
	}

	// the first token is available immediately, the next three take 10ms each
	require.GreaterOrEqual(time.Since(start), 25*time.Millisecond)
}

func TestRateLimiterWaitExceedsDeadline(t *testing.T) {
	require := require.New(t)

	run := func(ctx context.Context, n int) (int, error) {
		return n, nil
	}

	rl := New(Opts{Limit: Every(time.Hour), Burst: 1}, run)
	defer rl.Close()

	_, err := rl.Submit(context.Background(), 1)
	require.NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := rl.SubmitF(ctx, 2).Result(context.Background())
	require.True(r.IsFailure())
}

func TestRateLimiterClosed(t *testing.T) {
	require := require.New(t)

	rl := New(Opts{Limit: Inf, Burst: 1}, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})

	rl.Close()
	rl.Close()

	_, err := rl.Submit(context.Background(), 1)
	require.ErrorIs(err, ErrClosed)
}
