package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fittrack/internal/catalog/models"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/platform/httputil"
	tags "fittrack/pkg/platform/strings"
)

type Service interface {
	List(ctx context.Context, userID domain.UserID, filter models.Filter) ([]*models.Template, error)
	Get(ctx context.Context, userID domain.UserID, id domain.TemplateID) (*models.Template, error)
	Create(ctx context.Context, principal domain.Principal, req *models.CreateRequest) (*models.Template, error)
	Update(ctx context.Context, principal domain.Principal, id domain.TemplateID, req *models.UpdateRequest) (*models.Template, error)
	Delete(ctx context.Context, principal domain.Principal, id domain.TemplateID) error
}

type Authenticator interface {
	Authenticate(r *http.Request) (domain.Principal, error)
}

// Handler serves the workout template catalog.
type Handler struct {
	svc    Service
	auth   Authenticator
	logger *slog.Logger
}

func New(svc Service, auth Authenticator, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, auth: auth, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/workout_templates", h.HandleList)
	r.Post("/workout_templates", h.HandleCreate)
	r.Get("/workout_templates/{id}", h.HandleGet)
	r.Put("/workout_templates/{id}", h.HandleUpdate)
	r.Delete("/workout_templates/{id}", h.HandleDelete)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	templates, err := h.svc.List(ctx, principal.UserID, filterFromQuery(r))
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to list templates")
		return
	}
	if templates == nil {
		templates = []*models.Template{}
	}
	httputil.WriteJSON(w, http.StatusOK, templates)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "invalid template request")
		return
	}
	t, err := h.svc.Create(ctx, principal, &req)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "template creation failed")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.MessageResponse{
		Message: "template created",
		ID:      t.ID.String(),
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := templateIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	t, err := h.svc.Get(ctx, principal.UserID, id)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to get template")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := templateIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "invalid template update request")
		return
	}
	if _, err := h.svc.Update(ctx, principal, id, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "template update failed")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "template updated")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := templateIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(ctx, principal, id); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "template deletion failed")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "template deleted")
}

// templateIDFromPath treats an unparsable id like an unknown one.
func templateIDFromPath(r *http.Request) (domain.TemplateID, error) {
	id, err := domain.ParseTemplateID(chi.URLParam(r, "id"))
	if err != nil {
		return domain.TemplateID{}, dErrors.New(dErrors.CodeNotFound, "template not found")
	}
	return id, nil
}

// filterFromQuery reads muscle_group, goal, difficulty, duration_category and
// repeated equipment parameters. "equipment[]" is accepted as an alias.
func filterFromQuery(r *http.Request) models.Filter {
	q := r.URL.Query()
	equipment := append(append([]string{}, q["equipment"]...), q["equipment[]"]...)
	return models.Filter{
		MuscleGroup:      q.Get("muscle_group"),
		Goal:             q.Get("goal"),
		Difficulty:       q.Get("difficulty"),
		DurationCategory: q.Get("duration_category"),
		Equipment:        tags.NormalizeTags(equipment),
	}
}
