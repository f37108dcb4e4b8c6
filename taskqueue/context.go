package taskqueue

import (
	"context"
	"strconv"
)

type workerIDKey struct{}

func withWorkerID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, workerIDKey{}, id)
}

// WorkerIDFromContext returns the id ("worker-<n>") of the worker running the current task.
// It is only set on contexts handed to a RunFunction and is mostly useful for logging.
func WorkerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(workerIDKey{}).(int)
	if !ok {
		return "", false
	}
	return "worker-" + strconv.Itoa(id), true
}
