package storage

import (
	"context"
	"database/sql"
	"time"

	progressstore "fittrack/internal/progress/store"
	schedulestore "fittrack/internal/schedule/store"
	"fittrack/pkg/platform/tx"
)

// PostgresTracking runs the callback in one SQL transaction. The workout row
// is locked FOR UPDATE on lookup, so concurrent transitions of the same
// workout serialize.
type PostgresTracking struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPostgresTracking uses tx.DefaultTimeout when timeout is zero.
func NewPostgresTracking(db *sql.DB, timeout time.Duration) *PostgresTracking {
	return &PostgresTracking{db: db, timeout: timeout}
}

func (t *PostgresTracking) RunInTx(ctx context.Context, fn func(ctx context.Context, stores TrackingStores) error) error {
	return tx.Run(ctx, t.db, t.timeout, func(ctx context.Context, sqlTx *sql.Tx) error {
		return fn(ctx, TrackingStores{
			Workouts: schedulestore.NewPostgresTx(sqlTx),
			Progress: progressstore.NewPostgres(sqlTx),
		})
	})
}
