package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fittrack/internal/progress/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context, userID domain.UserID) ([]*models.Entry, error)
	LogWeight(ctx context.Context, userID domain.UserID, req *models.LogWeightRequest) (*models.Entry, error)
	ResetAll(ctx context.Context, userID domain.UserID) error
}

type Authenticator interface {
	Authenticate(r *http.Request) (domain.Principal, error)
}

// Handler serves the progress journal and the data reset.
type Handler struct {
	svc    Service
	auth   Authenticator
	logger *slog.Logger
}

func New(svc Service, auth Authenticator, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, auth: auth, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/my_progress", h.HandleList)
	r.Post("/my_progress", h.HandleLogWeight)
	r.Delete("/reset_my_data", h.HandleReset)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	entries, err := h.svc.List(ctx, principal.UserID)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to list progress")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) HandleLogWeight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.LogWeightRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "invalid progress request")
		return
	}
	if _, err := h.svc.LogWeight(ctx, principal.UserID, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to log weight")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "progress logged")
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.ResetAll(ctx, principal.UserID); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to reset user data")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "all workout and progress data has been reset")
}
