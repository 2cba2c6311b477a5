package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fittrack/internal/identity/models"
	userstore "fittrack/internal/identity/store/user"
	jwttoken "fittrack/internal/jwt_token"
	"fittrack/internal/platform/metrics"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/platform/sentinel"
	"fittrack/pkg/requestcontext"
)

type UserStore interface {
	CreateIfAvailable(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id domain.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id domain.UserID, username, email string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(userID domain.UserID, ttl time.Duration) (jwttoken.IssuedToken, error)
}

type RevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Service owns registration, login and profile maintenance.
type Service struct {
	users      UserStore
	tokens     TokenIssuer
	revocation RevocationList
	tokenTTL   time.Duration
	bcryptCost int
	logger     *slog.Logger
	metrics    *metrics.Metrics
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

// WithBcryptCost lowers the hashing cost, for tests and seeding.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func New(users UserStore, tokens TokenIssuer, revocation RevocationList, tokenTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		users:      users,
		tokens:     tokens,
		revocation: revocation,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account. The first account ever registered is admin.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "password is too long")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.User{
		ID:           domain.NewUserID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.users.CreateIfAvailable(ctx, user); err != nil {
		return nil, translateConflict(err, "failed to register user")
	}

	s.logAudit(ctx, "user_registered", "user_id", user.ID.String(), "role", string(user.Role))
	if s.metrics != nil {
		s.metrics.IncrementUsersRegistered()
	}
	return user, nil
}

// Login resolves email and password to a user and issues an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "login rejected",
				"user_id", user.ID.String(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	issued, err := s.tokens.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	s.logAudit(ctx, "user_logged_in", "user_id", user.ID.String())
	return &models.LoginResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt}, nil
}

// Profile returns the caller's own account.
func (s *Service) Profile(ctx context.Context, userID domain.UserID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// UpdateProfile replaces username and email. Both stay unique across users.
func (s *Service) UpdateProfile(ctx context.Context, userID domain.UserID, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.users.UpdateProfile(ctx, userID, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, translateConflict(err, "failed to update profile")
	}
	s.logAudit(ctx, "profile_updated", "user_id", userID.String())
	return user, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, principal domain.Principal) error {
	ttl := principal.ExpiresAt.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		return nil
	}
	if err := s.revocation.RevokeToken(ctx, principal.TokenID, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	s.logAudit(ctx, "user_logged_out", "user_id", principal.UserID.String())
	return nil
}

func translateConflict(err error, fallback string) error {
	switch {
	case errors.Is(err, userstore.ErrEmailTaken):
		return dErrors.New(dErrors.CodeConflict, "a user with this email already exists")
	case errors.Is(err, userstore.ErrUsernameTaken):
		return dErrors.New(dErrors.CodeConflict, "a user with this username already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, fallback)
	}
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
