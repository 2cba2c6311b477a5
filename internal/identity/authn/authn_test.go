package authn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fittrack/internal/identity/models"
	"fittrack/internal/identity/store/revocation"
	userstore "fittrack/internal/identity/store/user"
	jwttoken "fittrack/internal/jwt_token"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	"fittrack/pkg/testutil"
)

type AuthenticatorSuite struct {
	suite.Suite
	users *userstore.InMemoryUserStore
	trl   *revocation.InMemoryTRL
	jwt   *jwttoken.JWTService
	auth  *Authenticator
	user  *models.User
}

func TestAuthenticatorSuite(t *testing.T) {
	suite.Run(t, new(AuthenticatorSuite))
}

func (s *AuthenticatorSuite) SetupTest() {
	s.users = userstore.New()
	s.trl = revocation.NewInMemoryTRL(nil)
	s.jwt = jwttoken.NewJWTService("key", "fittrack", "fittrack-api")
	s.auth = New(s.jwt, s.trl, s.users, nil)

	s.user = &models.User{ID: domain.NewUserID(), Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	s.Require().NoError(s.users.CreateIfAvailable(context.Background(), s.user))
}

func (s *AuthenticatorSuite) issue(userID domain.UserID, ttl time.Duration) jwttoken.IssuedToken {
	issued, err := s.jwt.Issue(userID, ttl)
	s.Require().NoError(err)
	return issued
}

func (s *AuthenticatorSuite) request() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/my_profile_data", nil)
}

func (s *AuthenticatorSuite) TestAcceptsBothHeaderForms() {
	issued := s.issue(s.user.ID, time.Hour)

	for name, req := range map[string]*http.Request{
		"x-access-token": testutil.WithAccessToken(s.request(), issued.Token),
		"bearer":         testutil.WithBearer(s.request(), issued.Token),
	} {
		s.Run(name, func() {
			p, err := s.auth.Authenticate(req)
			s.Require().NoError(err)
			s.Equal(s.user.ID, p.UserID)
			s.Equal(domain.RoleAdmin, p.Role)
			s.Equal(issued.JTI, p.TokenID)
			s.WithinDuration(issued.ExpiresAt, p.ExpiresAt, time.Second)
		})
	}
}

func (s *AuthenticatorSuite) TestRejections() {
	s.Run("missing token", func() {
		_, err := s.auth.Authenticate(s.request())
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("garbage token", func() {
		_, err := s.auth.Authenticate(testutil.WithBearer(s.request(), "garbage"))
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("expired token", func() {
		issued := s.issue(s.user.ID, -time.Minute)
		_, err := s.auth.Authenticate(testutil.WithBearer(s.request(), issued.Token))
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
	})

	s.Run("revoked token", func() {
		issued := s.issue(s.user.ID, time.Hour)
		s.Require().NoError(s.trl.RevokeToken(context.Background(), issued.JTI, time.Hour))
		_, err := s.auth.Authenticate(testutil.WithBearer(s.request(), issued.Token))
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnauthorized, "token has been revoked"))
	})

	s.Run("user no longer exists", func() {
		issued := s.issue(domain.NewUserID(), time.Hour)
		_, err := s.auth.Authenticate(testutil.WithBearer(s.request(), issued.Token))
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnauthorized, "user not found"))
	})
}

func (s *AuthenticatorSuite) TestTokenFromRequest() {
	req := s.request()
	req.Header.Set("Authorization", "Basic abc")
	s.Empty(TokenFromRequest(req))

	req = testutil.WithAccessToken(testutil.WithBearer(s.request(), "bearer-token"), "header-token")
	s.Equal("header-token", TokenFromRequest(req))
}
