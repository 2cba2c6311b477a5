package storage

import (
	"context"
	"sync"

	progressstore "fittrack/internal/progress/store"
	schedulestore "fittrack/internal/schedule/store"
	dErrors "fittrack/pkg/domain-errors"
)

// InMemoryTracking owns the in-memory workout and progress stores and the
// single lock they share. Plain store calls take that lock per operation;
// RunInTx holds it for the whole callback.
type InMemoryTracking struct {
	mu       sync.RWMutex
	Workouts *schedulestore.InMemory
	Progress *progressstore.InMemory
}

func NewInMemoryTracking() *InMemoryTracking {
	t := &InMemoryTracking{}
	t.Workouts = schedulestore.NewInMemory(&t.mu)
	t.Progress = progressstore.NewInMemory(&t.mu)
	return t
}

// RunInTx has no rollback. Callers validate before the first write.
func (t *InMemoryTracking) RunInTx(ctx context.Context, fn func(ctx context.Context, stores TrackingStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx, TrackingStores{
		Workouts: t.Workouts.Unguarded(),
		Progress: t.Progress.Unguarded(),
	})
}
