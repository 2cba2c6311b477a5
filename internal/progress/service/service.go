package service

import (
	"context"
	"log/slog"

	"fittrack/internal/platform/metrics"
	"fittrack/internal/progress/models"
	"fittrack/internal/storage"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/requestcontext"
)

// Service owns the weight journal and the per-user data reset.
type Service struct {
	store    storage.ProgressStore
	tracking storage.TrackingTx
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store storage.ProgressStore, tracking storage.TrackingTx, opts ...Option) *Service {
	s := &Service{store: store, tracking: tracking}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the user's entries, newest date first.
func (s *Service) List(ctx context.Context, userID domain.UserID) ([]*models.Entry, error) {
	entries, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list progress")
	}
	return entries, nil
}

// LogWeight records weight for the requested date, or today in UTC when none
// is given. The completed count of an existing entry is preserved.
func (s *Service) LogWeight(ctx context.Context, userID domain.UserID, req *models.LogWeightRequest) (*models.Entry, error) {
	weight, date, err := req.Parse(domain.DateOf(requestcontext.Now(ctx)))
	if err != nil {
		return nil, err
	}
	entry, err := s.store.UpsertWeight(ctx, userID, date, weight)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to log weight")
	}
	if s.metrics != nil {
		s.metrics.IncrementWeightLogged()
	}
	return entry, nil
}

// ResetAll deletes every progress entry and daily workout of the user in one
// transaction. Templates are left alone.
func (s *Service) ResetAll(ctx context.Context, userID domain.UserID) error {
	err := s.tracking.RunInTx(ctx, func(ctx context.Context, stores storage.TrackingStores) error {
		if err := stores.Workouts.DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		return stores.Progress.DeleteAllForUser(ctx, userID)
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeTimeout) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset user data")
	}
	s.logAudit(ctx, "user_data_reset", "user_id", userID.String())
	return nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
