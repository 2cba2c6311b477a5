// Package authn resolves the credential on a request to a domain.Principal.
// Handlers call Authenticate first thing and pass the principal on; nothing
// is stashed in the request context.
package authn

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fittrack/internal/identity/models"
	jwttoken "fittrack/internal/jwt_token"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/platform/sentinel"
	"fittrack/pkg/requestcontext"
)

// HeaderAccessToken carries a raw token. Authorization: Bearer is accepted too.
const HeaderAccessToken = "x-access-token"

type TokenValidator interface {
	Validate(token string) (*jwttoken.Claims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id domain.UserID) (*models.User, error)
}

type Authenticator struct {
	tokens     TokenValidator
	revocation RevocationChecker
	users      UserLookup
	logger     *slog.Logger
}

func New(tokens TokenValidator, revocation RevocationChecker, users UserLookup, logger *slog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, revocation: revocation, users: users, logger: logger}
}

// Authenticate fails with CodeUnauthorized when the token is missing,
// malformed, expired, revoked, or names a user that no longer exists.
func (a *Authenticator) Authenticate(r *http.Request) (domain.Principal, error) {
	ctx := r.Context()

	raw := TokenFromRequest(r)
	if raw == "" {
		a.warn(ctx, "unauthorized access - missing token")
		return domain.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "token is missing")
	}

	claims, err := a.tokens.Validate(raw)
	if err != nil {
		a.warn(ctx, "unauthorized access - invalid token", "error", err)
		return domain.Principal{}, err
	}

	revoked, err := a.revocation.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.Principal{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check token revocation")
	}
	if revoked {
		a.warn(ctx, "unauthorized access - revoked token", "jti", claims.ID)
		return domain.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "token has been revoked")
	}

	user, err := a.users.FindByID(ctx, claims.Subject())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			a.warn(ctx, "unauthorized access - unknown user", "user_id", claims.UserID)
			return domain.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "user not found")
		}
		return domain.Principal{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	principal := domain.Principal{
		UserID:  user.ID,
		Role:    user.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return principal, nil
}

// TokenFromRequest prefers x-access-token and falls back to a Bearer header.
func TokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(HeaderAccessToken)); token != "" {
		return token
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func (a *Authenticator) warn(ctx context.Context, msg string, args ...any) {
	if a.logger == nil {
		return
	}
	args = append(args, "request_id", requestcontext.RequestID(ctx))
	a.logger.WarnContext(ctx, msg, args...)
}
