package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fittrack/internal/identity/models"
	"fittrack/internal/platform/postgres"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/sentinel"
	"fittrack/pkg/platform/tx"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateIfAvailable inserts user with a role derived from the current row
// count. The table lock serializes concurrent registrations so exactly one
// of them can observe an empty table.
func (s *PostgresStore) CreateIfAvailable(ctx context.Context, user *models.User) error {
	return tx.Run(ctx, s.db, tx.DefaultTimeout, func(ctx context.Context, sqlTx *sql.Tx) error {
		if _, err := sqlTx.ExecContext(ctx, `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock users: %w", err)
		}
		if err := checkAvailable(ctx, sqlTx, user.ID, user.Email, user.Username); err != nil {
			return err
		}
		var existing int
		if err := sqlTx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&existing); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		user.Role = models.RoleForPosition(existing)

		_, err := sqlTx.ExecContext(ctx, `
			INSERT INTO users (id, username, email, password_hash, role, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, user.ID.String(), user.Username, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt)
		if err != nil {
			return translateUniqueViolation(err, "insert user")
		}
		return nil
	})
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.UserID) (*models.User, error) {
	return s.findOne(ctx, `WHERE id = $1`, id.String())
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, `WHERE email = $1`, email)
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, id domain.UserID, username, email string) (*models.User, error) {
	var updated *models.User
	err := tx.Run(ctx, s.db, tx.DefaultTimeout, func(ctx context.Context, sqlTx *sql.Tx) error {
		if err := checkAvailable(ctx, sqlTx, id, email, username); err != nil {
			return err
		}
		res, err := sqlTx.ExecContext(ctx, `UPDATE users SET username = $2, email = $3 WHERE id = $1`,
			id.String(), username, email)
		if err != nil {
			return translateUniqueViolation(err, "update user")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sentinel.ErrNotFound
		}
		updated, err = scanUser(sqlTx.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id.String()))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

const selectUser = `SELECT id, username, email, password_hash, role, created_at FROM users`

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, selectUser+" "+where, arg))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u    models.User
		id   uuid.UUID
		role string
	)
	if err := row.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = domain.UserID(id)
	u.Role = domain.Role(role)
	return &u, nil
}

func checkAvailable(ctx context.Context, db tx.DBTX, self domain.UserID, email, username string) error {
	var taken bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`, email, self.String()).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	err = db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`, username, self.String()).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}
	return nil
}

// translateUniqueViolation covers the race the existence checks cannot see.
func translateUniqueViolation(err error, op string) error {
	switch {
	case postgres.IsUniqueViolation(err, "users_email_key"):
		return ErrEmailTaken
	case postgres.IsUniqueViolation(err, "users_username_key"):
		return ErrUsernameTaken
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
