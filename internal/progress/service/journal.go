package service

import (
	"context"

	"fittrack/internal/storage"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
)

// Journal maintains workouts_completed. Build it on the ProgressStore of an
// open transaction so the counter commits with the workout transition.
type Journal struct {
	store storage.ProgressStore
}

func NewJournal(store storage.ProgressStore) *Journal {
	return &Journal{store: store}
}

// IncrementCompleted creates the entry for date when it does not exist yet.
func (j *Journal) IncrementCompleted(ctx context.Context, userID domain.UserID, date domain.Date) error {
	if err := j.store.IncrementCompleted(ctx, userID, date); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update progress")
	}
	return nil
}

// DecrementCompleted never goes below zero and ignores dates without an entry.
func (j *Journal) DecrementCompleted(ctx context.Context, userID domain.UserID, date domain.Date) error {
	if err := j.store.DecrementCompleted(ctx, userID, date); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update progress")
	}
	return nil
}
