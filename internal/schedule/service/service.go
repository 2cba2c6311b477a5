package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	catalogmodels "fittrack/internal/catalog/models"
	"fittrack/internal/platform/metrics"
	progressservice "fittrack/internal/progress/service"
	"fittrack/internal/schedule/models"
	"fittrack/internal/storage"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/platform/sentinel"
	"fittrack/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks TemplateReader

// TemplateReader resolves a template the user may read. It fails NotFound or
// Forbidden with the same rules as reading the template directly.
type TemplateReader interface {
	Get(ctx context.Context, userID domain.UserID, id domain.TemplateID) (*catalogmodels.Template, error)
}

// Service schedules template snapshots and drives their completion. Status
// transitions and the progress counter change in one transaction.
type Service struct {
	workouts  storage.WorkoutStore
	templates TemplateReader
	tracking  storage.TrackingTx
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
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

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(workouts storage.WorkoutStore, templates TemplateReader, tracking storage.TrackingTx, opts ...Option) *Service {
	s := &Service{
		workouts:  workouts,
		templates: templates,
		tracking:  tracking,
		tracer:    otel.Tracer("fittrack/schedule"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule copies the template's name, description and exercises into a new
// upcoming workout.
func (s *Service) Schedule(ctx context.Context, userID domain.UserID, req *models.ScheduleRequest) (*models.DailyWorkout, error) {
	ctx, span := s.tracer.Start(ctx, "schedule.Schedule")
	defer span.End()

	templateID, date, err := req.Parse()
	if err != nil {
		return nil, s.fail(span, err)
	}
	tmpl, err := s.templates.Get(ctx, userID, templateID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	w := &models.DailyWorkout{
		ID:           domain.NewWorkoutID(),
		UserID:       userID,
		TemplateID:   tmpl.ID,
		Date:         date,
		Status:       models.StatusUpcoming,
		TemplateName: tmpl.Name,
		Description:  tmpl.Description,
		Exercises:    domain.WithoutActuals(tmpl.Exercises),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.workouts.Create(ctx, w); err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule workout"))
	}
	span.SetAttributes(attribute.String("workout.id", w.ID.String()), attribute.String("workout.date", date.String()))

	s.logAudit(ctx, "workout_scheduled",
		"workout_id", w.ID.String(),
		"template_id", tmpl.ID.String(),
		"user_id", userID.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementWorkoutsScheduled()
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, userID domain.UserID, id domain.WorkoutID) (*models.DailyWorkout, error) {
	w, err := s.workouts.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, translateLookup(err)
	}
	return w, nil
}

// List returns the user's workouts, newest date first.
func (s *Service) List(ctx context.Context, userID domain.UserID) ([]*models.DailyWorkout, error) {
	workouts, err := s.workouts.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list workouts")
	}
	return workouts, nil
}

// Delete fails NotFound for workouts of other users. The progress counter is
// not touched.
func (s *Service) Delete(ctx context.Context, userID domain.UserID, id domain.WorkoutID) error {
	if err := s.workouts.DeleteForUser(ctx, userID, id); err != nil {
		return translateLookup(err)
	}
	s.logAudit(ctx, "workout_deleted", "workout_id", id.String(), "user_id", userID.String())
	return nil
}

// Complete records the performed exercises and duration, then increments the
// journal for the workout's date.
func (s *Service) Complete(ctx context.Context, userID domain.UserID, id domain.WorkoutID, req *models.CompleteRequest) (*models.DailyWorkout, error) {
	ctx, span := s.tracer.Start(ctx, "schedule.Complete", trace.WithAttributes(
		attribute.String("workout.id", id.String()),
	))
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, s.fail(span, err)
	}

	var completed *models.DailyWorkout
	err := s.tracking.RunInTx(ctx, func(ctx context.Context, stores storage.TrackingStores) error {
		w, err := stores.Workouts.FindByIDForUser(ctx, userID, id)
		if err != nil {
			return translateLookup(err)
		}
		if err := w.Complete(req.Exercises, req.Duration()); err != nil {
			return err
		}
		if err := stores.Workouts.Update(ctx, w); err != nil {
			return translateLookup(err)
		}
		if err := progressservice.NewJournal(stores.Progress).IncrementCompleted(ctx, userID, w.Date); err != nil {
			return err
		}
		completed = w
		return nil
	})
	if err != nil {
		return nil, s.fail(span, coded(err, "failed to complete workout"))
	}

	s.logAudit(ctx, "workout_completed",
		"workout_id", id.String(),
		"user_id", userID.String(),
		"date", completed.Date.String(),
		"duration_seconds", req.Duration(),
	)
	if s.metrics != nil {
		s.metrics.IncrementWorkoutsCompleted()
	}
	return completed, nil
}

// ResetStatus returns a completed workout to upcoming and decrements the
// journal for its date.
func (s *Service) ResetStatus(ctx context.Context, userID domain.UserID, id domain.WorkoutID) (*models.DailyWorkout, error) {
	ctx, span := s.tracer.Start(ctx, "schedule.ResetStatus", trace.WithAttributes(
		attribute.String("workout.id", id.String()),
	))
	defer span.End()

	var reset *models.DailyWorkout
	err := s.tracking.RunInTx(ctx, func(ctx context.Context, stores storage.TrackingStores) error {
		w, err := stores.Workouts.FindByIDForUser(ctx, userID, id)
		if err != nil {
			return translateLookup(err)
		}
		if err := w.Reset(); err != nil {
			return err
		}
		if err := stores.Workouts.Update(ctx, w); err != nil {
			return translateLookup(err)
		}
		if err := progressservice.NewJournal(stores.Progress).DecrementCompleted(ctx, userID, w.Date); err != nil {
			return err
		}
		reset = w
		return nil
	})
	if err != nil {
		return nil, s.fail(span, coded(err, "failed to reset workout"))
	}

	s.logAudit(ctx, "workout_reset", "workout_id", id.String(), "user_id", userID.String())
	if s.metrics != nil {
		s.metrics.IncrementWorkoutsReset()
	}
	return reset, nil
}

func translateLookup(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "workout not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load workout")
}

// coded leaves domain errors alone and wraps anything else, such as a failed
// commit, as internal.
func coded(err error, msg string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) fail(span trace.Span, err error) error {
	span.SetAttributes(attribute.String("error.code", string(dErrors.CodeOf(err))))
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
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
