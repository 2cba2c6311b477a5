package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fittrack/internal/schedule/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/sentinel"
	"fittrack/pkg/platform/tx"
)

// PostgresStore persists daily workouts in the daily_workouts table.
type PostgresStore struct {
	db        tx.DBTX
	forUpdate bool
}

func NewPostgres(db tx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx binds the store to an open transaction. Single-row lookups
// lock the row until the transaction ends.
func NewPostgresTx(sqlTx *sql.Tx) *PostgresStore {
	return &PostgresStore{db: sqlTx, forUpdate: true}
}

const selectWorkout = `
	SELECT id, user_id, template_id, to_char(workout_date, 'YYYY-MM-DD'), status,
	       template_name, description, exercises, duration_seconds, created_at
	FROM daily_workouts`

func (s *PostgresStore) Create(ctx context.Context, w *models.DailyWorkout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_workouts (id, user_id, template_id, workout_date, status,
			template_name, description, exercises, duration_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, w.ID.String(), w.UserID.String(), w.TemplateID.String(), w.Date.String(), string(w.Status),
		w.TemplateName, w.Description, exercises, nullInt(w.DurationSeconds), w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert daily workout: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByIDForUser(ctx context.Context, userID domain.UserID, id domain.WorkoutID) (*models.DailyWorkout, error) {
	query := selectWorkout + ` WHERE id = $1 AND user_id = $2`
	if s.forUpdate {
		query += ` FOR UPDATE`
	}
	w, err := scanWorkout(s.db.QueryRowContext(ctx, query, id.String(), userID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return w, err
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID domain.UserID) ([]*models.DailyWorkout, error) {
	rows, err := s.db.QueryContext(ctx, selectWorkout+`
		WHERE user_id = $1
		ORDER BY workout_date DESC, created_at ASC`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query daily workouts: %w", err)
	}
	defer rows.Close()

	out := make([]*models.DailyWorkout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, w *models.DailyWorkout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE daily_workouts
		SET status = $3, exercises = $4, duration_seconds = $5
		WHERE id = $1 AND user_id = $2
	`, w.ID.String(), w.UserID.String(), string(w.Status), exercises, nullInt(w.DurationSeconds))
	if err != nil {
		return fmt.Errorf("update daily workout: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteForUser(ctx context.Context, userID domain.UserID, id domain.WorkoutID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM daily_workouts WHERE id = $1 AND user_id = $2`,
		id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("delete daily workout: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteAllForUser(ctx context.Context, userID domain.UserID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM daily_workouts WHERE user_id = $1`, userID.String()); err != nil {
		return fmt.Errorf("delete daily workouts: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (*models.DailyWorkout, error) {
	var (
		w                      models.DailyWorkout
		id, userID, templateID uuid.UUID
		date, status           string
		exercises              []byte
		duration               sql.NullInt32
	)
	if err := row.Scan(&id, &userID, &templateID, &date, &status,
		&w.TemplateName, &w.Description, &exercises, &duration, &w.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	if w.Exercises == nil {
		w.Exercises = []domain.Exercise{}
	}
	if duration.Valid {
		d := int(duration.Int32)
		w.DurationSeconds = &d
	}
	w.ID = domain.WorkoutID(id)
	w.UserID = domain.UserID(userID)
	w.TemplateID = domain.TemplateID(templateID)
	w.Date = domain.Date(date)
	w.Status = models.Status(status)
	return &w, nil
}

func nullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
