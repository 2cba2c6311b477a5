package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	catalogservice "fittrack/internal/catalog/service"
	catalogstore "fittrack/internal/catalog/store"
	identityservice "fittrack/internal/identity/service"
	"fittrack/internal/identity/store/revocation"
	userstore "fittrack/internal/identity/store/user"
	"fittrack/internal/platform/config"
	"fittrack/internal/platform/postgres"
	redisclient "fittrack/internal/platform/redis"
	progressstore "fittrack/internal/progress/store"
	schedulestore "fittrack/internal/schedule/store"
	"fittrack/internal/storage"
	httptransport "fittrack/internal/transport/http"
)

type userStore interface {
	identityservice.UserStore
	Count(ctx context.Context) (int, error)
}

type revocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// backends holds the stores selected by configuration: PostgreSQL when
// DATABASE_URL is set, in-memory otherwise. Token revocation prefers Redis,
// then PostgreSQL, then memory.
type backends struct {
	name       string
	users      userStore
	revocation revocationList
	templates  catalogservice.Store
	workouts   storage.WorkoutStore
	progress   storage.ProgressStore
	tracking   storage.TrackingTx
	redis      *redisclient.Client
	checks     map[string]httptransport.HealthCheck
	closers    []func() error
}

func openBackends(ctx context.Context, cfg config.Server, log *slog.Logger) (*backends, error) {
	b := &backends{checks: make(map[string]httptransport.HealthCheck)}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		b.closers = append(b.closers, db.Close)
		b.checks["postgres"] = db.PingContext

		b.name = "postgres"
		b.users = userstore.NewPostgres(db)
		b.templates = catalogstore.NewPostgres(db)
		b.workouts = schedulestore.NewPostgres(db)
		b.progress = progressstore.NewPostgres(db)
		b.tracking = storage.NewPostgresTracking(db, cfg.TxTimeout)
		b.revocation = revocation.NewPostgresTRL(db)
	} else {
		tracking := storage.NewInMemoryTracking()
		b.name = "memory"
		b.users = userstore.New()
		b.templates = catalogstore.NewInMemory()
		b.workouts = tracking.Workouts
		b.progress = tracking.Progress
		b.tracking = tracking
		b.revocation = revocation.NewInMemoryTRL(nil)
	}

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("open redis: %w", err)
	}
	if rdb != nil {
		b.redis = rdb
		b.closers = append(b.closers, rdb.Close)
		b.checks["redis"] = rdb.Health
		b.revocation = revocation.NewRedisTRL(rdb.Client)
	}

	log.InfoContext(ctx, "storage backends ready",
		"store", b.name,
		"revocation", revocationBackend(db != nil, rdb != nil),
	)
	return b, nil
}

func revocationBackend(hasDB, hasRedis bool) string {
	switch {
	case hasRedis:
		return "redis"
	case hasDB:
		return "postgres"
	default:
		return "memory"
	}
}

// Close releases connections in reverse order of acquisition.
func (b *backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
