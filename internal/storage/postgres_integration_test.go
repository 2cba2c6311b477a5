//go:build integration

package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	schedulemodels "fittrack/internal/schedule/models"
	schedulestore "fittrack/internal/schedule/store"
	"fittrack/internal/storage"
	"fittrack/pkg/domain"
	"fittrack/pkg/testutil/containers"
)

type PostgresTrackingSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	tracking *storage.PostgresTracking
	user     domain.UserID
}

func TestPostgresTrackingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresTrackingSuite))
}

func (s *PostgresTrackingSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.tracking = storage.NewPostgresTracking(s.postgres.DB, 0)
}

func (s *PostgresTrackingSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "progress_entries", "daily_workouts", "workout_templates", "users"))
	s.user = domain.NewUserID()
	s.Require().NoError(s.postgres.InsertUser(ctx, s.user.String()))
}

func (s *PostgresTrackingSuite) newWorkout() *schedulemodels.DailyWorkout {
	w := &schedulemodels.DailyWorkout{
		ID:           domain.NewWorkoutID(),
		UserID:       s.user,
		TemplateID:   domain.NewTemplateID(),
		Date:         "2025-01-10",
		Status:       schedulemodels.StatusUpcoming,
		TemplateName: "Leg Day",
	}
	s.Require().NoError(schedulestore.NewPostgres(s.postgres.DB).Create(context.Background(), w))
	return w
}

func (s *PostgresTrackingSuite) complete(ctx context.Context, id domain.WorkoutID) error {
	return s.tracking.RunInTx(ctx, func(ctx context.Context, stores storage.TrackingStores) error {
		w, err := stores.Workouts.FindByIDForUser(ctx, s.user, id)
		if err != nil {
			return err
		}
		if err := w.Complete(nil, 0); err != nil {
			return err
		}
		if err := stores.Workouts.Update(ctx, w); err != nil {
			return err
		}
		return stores.Progress.IncrementCompleted(ctx, s.user, w.Date)
	})
}

func (s *PostgresTrackingSuite) counter() int {
	var n int
	err := s.postgres.DB.QueryRowContext(context.Background(),
		`SELECT COALESCE(SUM(workouts_completed), 0) FROM progress_entries WHERE user_id = $1`,
		s.user.String()).Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *PostgresTrackingSuite) TestConcurrentCompletionCountsOnce() {
	w := s.newWorkout()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.complete(ctx, w.ID)
		}()
	}
	wg.Wait()

	s.Equal(1, s.counter())
}

func (s *PostgresTrackingSuite) TestFailureRollsBackBothWrites() {
	w := s.newWorkout()
	boom := errors.New("boom")

	err := s.tracking.RunInTx(context.Background(), func(ctx context.Context, stores storage.TrackingStores) error {
		current, err := stores.Workouts.FindByIDForUser(ctx, s.user, w.ID)
		if err != nil {
			return err
		}
		_ = current.Complete(nil, 0)
		if err := stores.Workouts.Update(ctx, current); err != nil {
			return err
		}
		if err := stores.Progress.IncrementCompleted(ctx, s.user, current.Date); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := schedulestore.NewPostgres(s.postgres.DB).FindByIDForUser(context.Background(), s.user, w.ID)
	s.Require().NoError(err)
	s.Equal(schedulemodels.StatusUpcoming, got.Status)
	s.Equal(0, s.counter())
}
