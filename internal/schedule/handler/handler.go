package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fittrack/internal/schedule/models"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/platform/httputil"
)

type Service interface {
	Schedule(ctx context.Context, userID domain.UserID, req *models.ScheduleRequest) (*models.DailyWorkout, error)
	Get(ctx context.Context, userID domain.UserID, id domain.WorkoutID) (*models.DailyWorkout, error)
	List(ctx context.Context, userID domain.UserID) ([]*models.DailyWorkout, error)
	Delete(ctx context.Context, userID domain.UserID, id domain.WorkoutID) error
	Complete(ctx context.Context, userID domain.UserID, id domain.WorkoutID, req *models.CompleteRequest) (*models.DailyWorkout, error)
	ResetStatus(ctx context.Context, userID domain.UserID, id domain.WorkoutID) (*models.DailyWorkout, error)
}

type Authenticator interface {
	Authenticate(r *http.Request) (domain.Principal, error)
}

// Handler serves the caller's daily workouts.
type Handler struct {
	svc    Service
	auth   Authenticator
	logger *slog.Logger
}

func New(svc Service, auth Authenticator, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, auth: auth, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/daily_workouts", h.HandleList)
	r.Post("/daily_workouts", h.HandleSchedule)
	r.Get("/daily_workouts/{id}", h.HandleGet)
	r.Delete("/daily_workouts/{id}", h.HandleDelete)
	r.Post("/daily_workouts/{id}/complete", h.HandleComplete)
	r.Post("/daily_workouts/{id}/reset_status", h.HandleResetStatus)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	workouts, err := h.svc.List(ctx, principal.UserID)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to list workouts")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, workouts)
}

func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.ScheduleRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "invalid schedule request")
		return
	}
	workout, err := h.svc.Schedule(ctx, principal.UserID, &req)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to schedule workout")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.MessageResponse{
		Message: "workout scheduled",
		ID:      workout.ID.String(),
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := workoutIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	workout, err := h.svc.Get(ctx, principal.UserID, id)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to get workout")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, workout)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := workoutIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(ctx, principal.UserID, id); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to delete workout")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "workout deleted")
}

// HandleComplete accepts an empty body, which keeps the scheduled exercises
// and records a zero duration.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := workoutIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.CompleteRequest
	if err := httputil.DecodeOptionalJSON(r, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "invalid complete request")
		return
	}
	if _, err := h.svc.Complete(ctx, principal.UserID, id, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to complete workout")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "workout completed")
}

func (h *Handler) HandleResetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := workoutIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, err := h.svc.ResetStatus(ctx, principal.UserID, id); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to reset workout")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "workout status reset")
}

func workoutIDFromPath(r *http.Request) (domain.WorkoutID, error) {
	id, err := domain.ParseWorkoutID(chi.URLParam(r, "id"))
	if err != nil {
		return domain.WorkoutID{}, dErrors.New(dErrors.CodeNotFound, "workout not found")
	}
	return id, nil
}
