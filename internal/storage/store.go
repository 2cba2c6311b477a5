// Package storage declares the schedule and progress persistence contracts
// and the transaction boundary that spans both.
package storage

import (
	"context"

	progressmodels "fittrack/internal/progress/models"
	schedulemodels "fittrack/internal/schedule/models"
	"fittrack/pkg/domain"
)

// WorkoutStore is owner-scoped: a workout of another user is reported as
// sentinel.ErrNotFound.
type WorkoutStore interface {
	Create(ctx context.Context, w *schedulemodels.DailyWorkout) error
	FindByIDForUser(ctx context.Context, userID domain.UserID, id domain.WorkoutID) (*schedulemodels.DailyWorkout, error)
	ListByUser(ctx context.Context, userID domain.UserID) ([]*schedulemodels.DailyWorkout, error)
	Update(ctx context.Context, w *schedulemodels.DailyWorkout) error
	DeleteForUser(ctx context.Context, userID domain.UserID, id domain.WorkoutID) error
	DeleteAllForUser(ctx context.Context, userID domain.UserID) error
}

type ProgressStore interface {
	ListByUser(ctx context.Context, userID domain.UserID) ([]*progressmodels.Entry, error)
	UpsertWeight(ctx context.Context, userID domain.UserID, date domain.Date, weight float64) (*progressmodels.Entry, error)
	IncrementCompleted(ctx context.Context, userID domain.UserID, date domain.Date) error
	DecrementCompleted(ctx context.Context, userID domain.UserID, date domain.Date) error
	DeleteAllForUser(ctx context.Context, userID domain.UserID) error
}

// TrackingStores are the stores bound to one transaction.
type TrackingStores struct {
	Workouts WorkoutStore
	Progress ProgressStore
}

// TrackingTx runs fn so that no other request observes a workout status
// change without the matching journal update.
type TrackingTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores TrackingStores) error) error
}
