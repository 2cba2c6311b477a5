package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schedulemodels "fittrack/internal/schedule/models"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
)

func TestInMemoryTrackingCancelledContext(t *testing.T) {
	tracking := NewInMemoryTracking()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := tracking.RunInTx(ctx, func(context.Context, TrackingStores) error {
		called = true
		return nil
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	assert.False(t, called)
}

func TestInMemoryTrackingPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := NewInMemoryTracking().RunInTx(context.Background(), func(context.Context, TrackingStores) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

// Readers outside the transaction never see the status flipped without the
// counter, whichever of the two is written first.
func TestInMemoryTrackingIsAtomicToReaders(t *testing.T) {
	ctx := context.Background()
	tracking := NewInMemoryTracking()
	user := domain.NewUserID()
	w := &schedulemodels.DailyWorkout{
		ID:     domain.NewWorkoutID(),
		UserID: user,
		Date:   "2025-01-10",
		Status: schedulemodels.StatusUpcoming,
	}
	require.NoError(t, tracking.Workouts.Create(ctx, w))

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = tracking.RunInTx(ctx, func(ctx context.Context, stores TrackingStores) error {
				current, err := stores.Workouts.FindByIDForUser(ctx, user, w.ID)
				if err != nil {
					return err
				}
				if current.Status == schedulemodels.StatusUpcoming {
					_ = current.Complete(nil, 1)
					if err := stores.Workouts.Update(ctx, current); err != nil {
						return err
					}
					return stores.Progress.IncrementCompleted(ctx, user, current.Date)
				}
				_ = current.Reset()
				if err := stores.Workouts.Update(ctx, current); err != nil {
					return err
				}
				return stores.Progress.DecrementCompleted(ctx, user, current.Date)
			})
		}
	}()

	for i := 0; i < rounds; i++ {
		_ = tracking.RunInTx(ctx, func(ctx context.Context, stores TrackingStores) error {
			current, err := stores.Workouts.FindByIDForUser(ctx, user, w.ID)
			require.NoError(t, err)
			entries, err := stores.Progress.ListByUser(ctx, user)
			require.NoError(t, err)

			completed := 0
			if len(entries) == 1 {
				completed = entries[0].WorkoutsCompleted
			}
			if current.Status == schedulemodels.StatusCompleted {
				assert.Equal(t, 1, completed)
			} else {
				assert.Equal(t, 0, completed)
			}
			return nil
		})
	}
	wg.Wait()
}
