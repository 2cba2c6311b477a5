package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fittrack/internal/catalog/models"
	"fittrack/internal/platform/metrics"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/platform/sentinel"
	"fittrack/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

type Store interface {
	Create(ctx context.Context, t *models.Template) error
	FindByID(ctx context.Context, id domain.TemplateID) (*models.Template, error)
	List(ctx context.Context, userID domain.UserID, filter models.Filter) ([]*models.Template, error)
	Update(ctx context.Context, t *models.Template) error
	Delete(ctx context.Context, id domain.TemplateID) error
}

// Service enforces template visibility and mutation rights.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
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

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tracer: otel.Tracer("fittrack/catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns global templates plus the caller's own, narrowed by filter.
func (s *Service) List(ctx context.Context, userID domain.UserID, filter models.Filter) ([]*models.Template, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.List")
	defer span.End()

	templates, err := s.store.List(ctx, userID, filter)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list templates"))
	}
	span.SetAttributes(attribute.Int("templates.count", len(templates)))
	return templates, nil
}

// Get fails NotFound when absent and Forbidden when not visible to userID.
func (s *Service) Get(ctx context.Context, userID domain.UserID, id domain.TemplateID) (*models.Template, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Get", trace.WithAttributes(
		attribute.String("template.id", id.String()),
	))
	defer span.End()

	t, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if !t.VisibleTo(userID) {
		return nil, s.fail(span, dErrors.New(dErrors.CodeForbidden, "you do not have access to this template"))
	}
	return t, nil
}

// Create is admin-only. The caller is recorded as owner whatever the visibility.
func (s *Service) Create(ctx context.Context, principal domain.Principal, req *models.CreateRequest) (*models.Template, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Create")
	defer span.End()

	if !principal.Role.IsAdmin() {
		return nil, s.fail(span, dErrors.New(dErrors.CodeForbidden, "only admins can create templates"))
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.fail(span, err)
	}

	t := &models.Template{
		ID:               domain.NewTemplateID(),
		OwnerID:          principal.UserID,
		Name:             req.Name,
		Description:      req.Description,
		Exercises:        domain.CloneExercises(req.Exercises),
		IsGlobal:         req.IsGlobal,
		MuscleGroups:     req.MuscleGroups,
		Goal:             req.Goal,
		Difficulty:       req.Difficulty,
		Equipment:        req.Equipment,
		DurationCategory: req.DurationCategory,
		CreatedAt:        requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create template"))
	}
	span.SetAttributes(attribute.String("template.id", t.ID.String()), attribute.Bool("template.global", t.IsGlobal))

	s.logAudit(ctx, "template_created",
		"template_id", t.ID.String(),
		"user_id", principal.UserID.String(),
		"is_global", t.IsGlobal,
	)
	if s.metrics != nil {
		s.metrics.IncrementTemplatesCreated()
	}
	return t, nil
}

// Update overwrites the fields present in req. An owner who publishes a
// personal template as global gives up the right to edit it further.
func (s *Service) Update(ctx context.Context, principal domain.Principal, id domain.TemplateID, req *models.UpdateRequest) (*models.Template, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Update", trace.WithAttributes(
		attribute.String("template.id", id.String()),
	))
	defer span.End()

	t, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if !t.MutableBy(principal) {
		return nil, s.fail(span, dErrors.New(dErrors.CodeForbidden, "you do not have permission to edit this template"))
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.fail(span, err)
	}

	req.Apply(t)
	if err := s.store.Update(ctx, t); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.fail(span, dErrors.New(dErrors.CodeNotFound, "template not found"))
		}
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update template"))
	}
	s.logAudit(ctx, "template_updated", "template_id", id.String(), "user_id", principal.UserID.String())
	return t, nil
}

// Delete removes the template. Workouts already scheduled from it keep their snapshot.
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id domain.TemplateID) error {
	ctx, span := s.tracer.Start(ctx, "catalog.Delete", trace.WithAttributes(
		attribute.String("template.id", id.String()),
	))
	defer span.End()

	t, err := s.load(ctx, id)
	if err != nil {
		return s.fail(span, err)
	}
	if !t.MutableBy(principal) {
		return s.fail(span, dErrors.New(dErrors.CodeForbidden, "you do not have permission to delete this template"))
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.fail(span, dErrors.New(dErrors.CodeNotFound, "template not found"))
		}
		return s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete template"))
	}
	s.logAudit(ctx, "template_deleted", "template_id", id.String(), "user_id", principal.UserID.String())
	return nil
}

func (s *Service) load(ctx context.Context, id domain.TemplateID) (*models.Template, error) {
	t, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "template not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load template")
	}
	return t, nil
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
