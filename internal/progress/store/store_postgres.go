package store

import (
	"context"
	"database/sql"
	"fmt"

	"fittrack/internal/progress/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/tx"
)

// PostgresStore persists the journal in progress_entries. Counter updates are
// single statements, so they are atomic with respect to each other; callers
// that pair them with a workout transition run both in one transaction.
type PostgresStore struct {
	db tx.DBTX
}

func NewPostgres(db tx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID domain.UserID) ([]*models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char(entry_date, 'YYYY-MM-DD'), weight, workouts_completed
		FROM progress_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query progress entries: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpsertWeight(ctx context.Context, userID domain.UserID, date domain.Date, weight float64) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO progress_entries (user_id, entry_date, weight, workouts_completed)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET weight = EXCLUDED.weight
		RETURNING to_char(entry_date, 'YYYY-MM-DD'), weight, workouts_completed
	`, userID.String(), date.String(), weight)
	e, err := scanEntry(row, userID)
	if err != nil {
		return nil, fmt.Errorf("upsert weight: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) IncrementCompleted(ctx context.Context, userID domain.UserID, date domain.Date) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress_entries (user_id, entry_date, weight, workouts_completed)
		VALUES ($1, $2, NULL, 1)
		ON CONFLICT (user_id, entry_date)
		DO UPDATE SET workouts_completed = progress_entries.workouts_completed + 1
	`, userID.String(), date.String())
	if err != nil {
		return fmt.Errorf("increment completed: %w", err)
	}
	return nil
}

func (s *PostgresStore) DecrementCompleted(ctx context.Context, userID domain.UserID, date domain.Date) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE progress_entries
		SET workouts_completed = GREATEST(workouts_completed - 1, 0)
		WHERE user_id = $1 AND entry_date = $2
	`, userID.String(), date.String())
	if err != nil {
		return fmt.Errorf("decrement completed: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteAllForUser(ctx context.Context, userID domain.UserID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM progress_entries WHERE user_id = $1`, userID.String()); err != nil {
		return fmt.Errorf("delete progress entries: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner, userID domain.UserID) (*models.Entry, error) {
	var (
		date   string
		weight sql.NullFloat64
		e      = models.Entry{UserID: userID}
	)
	if err := row.Scan(&date, &weight, &e.WorkoutsCompleted); err != nil {
		return nil, err
	}
	e.Date = domain.Date(date)
	if weight.Valid {
		w := weight.Float64
		e.Weight = &w
	}
	return &e, nil
}
