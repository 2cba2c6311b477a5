package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fittrack/internal/catalog/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/sentinel"
)

// PostgresStore persists templates in the workout_templates table. Tag sets
// are TEXT[] columns so equipment filtering runs as array containment.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectTemplate = `
	SELECT id, user_id, name, description, exercises, is_global, muscle_groups,
	       goal, difficulty, equipment, duration_category, created_at
	FROM workout_templates`

func (s *PostgresStore) Create(ctx context.Context, t *models.Template) error {
	exercises, err := json.Marshal(t.Exercises)
	if err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO workout_templates (id, user_id, name, description, exercises, is_global,
			muscle_groups, goal, difficulty, equipment, duration_category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, t.ID.String(), t.OwnerID.String(), t.Name, t.Description, exercises, t.IsGlobal,
		pq.Array(t.MuscleGroups), t.Goal, t.Difficulty, pq.Array(t.Equipment), t.DurationCategory, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.TemplateID) (*models.Template, error) {
	row := s.db.QueryRowContext(ctx, selectTemplate+` WHERE id = $1`, id.String())
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return t, err
}

func (s *PostgresStore) List(ctx context.Context, userID domain.UserID, filter models.Filter) ([]*models.Template, error) {
	where := []string{`(is_global OR user_id = $1)`}
	args := []any{userID.String()}
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.MuscleGroup != "" {
		add(`$%d = ANY(muscle_groups)`, filter.MuscleGroup)
	}
	if filter.Goal != "" {
		add(`goal = $%d`, filter.Goal)
	}
	if filter.Difficulty != "" {
		add(`difficulty = $%d`, filter.Difficulty)
	}
	if filter.DurationCategory != "" {
		add(`duration_category = $%d`, filter.DurationCategory)
	}
	if len(filter.Equipment) > 0 {
		add(`equipment @> $%d::text[]`, pq.Array(filter.Equipment))
	}

	query := selectTemplate + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, t *models.Template) error {
	exercises, err := json.Marshal(t.Exercises)
	if err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE workout_templates SET
			name = $2, description = $3, exercises = $4, is_global = $5, muscle_groups = $6,
			goal = $7, difficulty = $8, equipment = $9, duration_category = $10
		WHERE id = $1
	`, t.ID.String(), t.Name, t.Description, exercises, t.IsGlobal, pq.Array(t.MuscleGroups),
		t.Goal, t.Difficulty, pq.Array(t.Equipment), t.DurationCategory)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id domain.TemplateID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workout_templates WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*models.Template, error) {
	var (
		t         models.Template
		id        uuid.UUID
		owner     uuid.NullUUID
		exercises []byte
		muscles   pq.StringArray
		equipment pq.StringArray
	)
	err := row.Scan(&id, &owner, &t.Name, &t.Description, &exercises, &t.IsGlobal, &muscles,
		&t.Goal, &t.Difficulty, &equipment, &t.DurationCategory, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}
	if err := json.Unmarshal(exercises, &t.Exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	t.ID = domain.TemplateID(id)
	if owner.Valid {
		t.OwnerID = domain.UserID(owner.UUID)
	}
	t.MuscleGroups = []string(muscles)
	t.Equipment = []string(equipment)
	if t.MuscleGroups == nil {
		t.MuscleGroups = []string{}
	}
	if t.Equipment == nil {
		t.Equipment = []string{}
	}
	return &t, nil
}
