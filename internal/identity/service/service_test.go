package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"fittrack/internal/identity/models"
	"fittrack/internal/identity/store/revocation"
	userstore "fittrack/internal/identity/store/user"
	jwttoken "fittrack/internal/jwt_token"
	"fittrack/internal/platform/metrics"
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	users   *userstore.InMemoryUserStore
	trl     *revocation.InMemoryTRL
	jwt     *jwttoken.JWTService
	metrics *metrics.Metrics
	svc     *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = userstore.New()
	s.trl = revocation.NewInMemoryTRL(nil)
	s.jwt = jwttoken.NewJWTService("test-key", "fittrack", "fittrack-api")
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = New(s.users, s.jwt, s.trl, time.Hour,
		WithBcryptCost(bcrypt.MinCost),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) register(username, email, password string) *models.User {
	u, err := s.svc.Register(s.ctx, &models.RegisterRequest{Username: username, Email: email, Password: password})
	s.Require().NoError(err)
	return u
}

func (s *ServiceSuite) TestRegister() {
	s.Run("first user is admin, second is user", func() {
		alice := s.register("alice", "a@x.com", "pw")
		bob := s.register("bob", "b@x.com", "pw2")

		s.Equal(domain.RoleAdmin, alice.Role)
		s.Equal(domain.RoleUser, bob.Role)
		s.Equal(2.0, promtest.ToFloat64(s.metrics.UsersRegistered))
	})

	s.Run("password is stored hashed", func() {
		stored, err := s.users.FindByEmail(s.ctx, "a@x.com")
		s.Require().NoError(err)
		s.NotEqual("pw", stored.PasswordHash)
		s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")))
	})

	s.Run("duplicate email conflicts", func() {
		_, err := s.svc.Register(s.ctx, &models.RegisterRequest{Username: "carol", Email: "a@x.com", Password: "pw"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("duplicate username conflicts", func() {
		_, err := s.svc.Register(s.ctx, &models.RegisterRequest{Username: "alice", Email: "c@x.com", Password: "pw"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("missing fields are invalid input", func() {
		_, err := s.svc.Register(s.ctx, &models.RegisterRequest{Username: "dave"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestLogin() {
	alice := s.register("alice", "a@x.com", "pw")

	s.Run("valid credentials issue a token for the user", func() {
		res, err := s.svc.Login(s.ctx, &models.LoginRequest{Email: "a@x.com", Password: "pw"})
		s.Require().NoError(err)
		claims, err := s.jwt.Validate(res.Token)
		s.Require().NoError(err)
		s.Equal(alice.ID, claims.Subject())
		s.WithinDuration(time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)
	})

	s.Run("wrong password is unauthorized", func() {
		_, err := s.svc.Login(s.ctx, &models.LoginRequest{Email: "a@x.com", Password: "nope"})
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))
	})

	s.Run("unknown email is unauthorized", func() {
		_, err := s.svc.Login(s.ctx, &models.LoginRequest{Email: "z@x.com", Password: "pw"})
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))
	})

	s.Run("missing password is invalid input", func() {
		_, err := s.svc.Login(s.ctx, &models.LoginRequest{Email: "a@x.com"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestUpdateProfile() {
	alice := s.register("alice", "a@x.com", "pw")
	s.register("bob", "b@x.com", "pw")

	s.Run("updates username and email", func() {
		u, err := s.svc.UpdateProfile(s.ctx, alice.ID, &models.UpdateProfileRequest{Username: "alicia", Email: "alicia@x.com"})
		s.Require().NoError(err)
		s.Equal("alicia", u.Username)

		profile, err := s.svc.Profile(s.ctx, alice.ID)
		s.Require().NoError(err)
		s.Equal("alicia@x.com", profile.Email)
		s.Equal(domain.RoleAdmin, profile.Role)
	})

	s.Run("collision with another user conflicts", func() {
		_, err := s.svc.UpdateProfile(s.ctx, alice.ID, &models.UpdateProfileRequest{Username: "bob", Email: "alicia@x.com"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("empty values are invalid input", func() {
		_, err := s.svc.UpdateProfile(s.ctx, alice.ID, &models.UpdateProfileRequest{Username: "", Email: "x@x.com"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown user is not found", func() {
		_, err := s.svc.Profile(s.ctx, domain.NewUserID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestLogoutRevokesToken() {
	principal := domain.Principal{
		UserID:    domain.NewUserID(),
		Role:      domain.RoleUser,
		TokenID:   "jti-logout",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.Require().NoError(s.svc.Logout(s.ctx, principal))

	revoked, err := s.trl.IsRevoked(s.ctx, "jti-logout")
	s.Require().NoError(err)
	s.True(revoked)

	s.Run("already expired token is a no-op", func() {
		expired := principal
		expired.TokenID = "jti-expired"
		expired.ExpiresAt = time.Now().Add(-time.Minute)
		s.Require().NoError(s.svc.Logout(s.ctx, expired))

		revoked, err := s.trl.IsRevoked(s.ctx, "jti-expired")
		s.Require().NoError(err)
		s.False(revoked)
	})
}
