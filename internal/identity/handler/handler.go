package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fittrack/internal/identity/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/httputil"
)

// Service defines the identity operations the handler needs.
type Service interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	Profile(ctx context.Context, userID domain.UserID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID domain.UserID, req *models.UpdateProfileRequest) (*models.User, error)
	Logout(ctx context.Context, principal domain.Principal) error
}

type Authenticator interface {
	Authenticate(r *http.Request) (domain.Principal, error)
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Handler serves registration, login, profile and logout.
type Handler struct {
	svc    Service
	auth   Authenticator
	logger *slog.Logger
}

func New(svc Service, auth Authenticator, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, auth: auth, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Get("/my_profile_data", h.HandleGetProfile)
	r.Put("/my_profile_data", h.HandleUpdateProfile)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "invalid register request")
		return
	}
	user, err := h.svc.Register(ctx, &req)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "registration failed")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.MessageResponse{
		Message: "registration successful",
		ID:      user.ID.String(),
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "invalid login request")
		return
	}
	res, err := h.svc.Login(ctx, &req)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "login failed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:   "login successful",
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC(),
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Logout(ctx, principal); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "logout failed")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "logged out")
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.svc.Profile(ctx, principal.UserID)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "failed to load profile")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user.Profile())
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := h.auth.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.UpdateProfileRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "invalid profile update request")
		return
	}
	if _, err := h.svc.UpdateProfile(ctx, principal.UserID, &req); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, err, "profile update failed")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "profile updated")
}
