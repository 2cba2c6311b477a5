package models

import (
	"strings"
	"time"

	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
)

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the service layer.
type User struct {
	ID           domain.UserID
	Username     string
	Email        string
	PasswordHash string
	Role         domain.Role
	CreatedAt    time.Time
}

// RoleForPosition assigns admin to the first account ever stored and user to
// every later one. existing is the number of users already present.
func RoleForPosition(existing int) domain.Role {
	if existing == 0 {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

// Profile is the public view of a user.
type Profile struct {
	ID       domain.UserID `json:"id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Role     domain.Role   `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate rejects empty fields. Values are compared case-sensitively, so
// only surrounding whitespace is trimmed.
func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "username, email and password are required")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "email and password are required")
	}
	return nil
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (r *UpdateProfileRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" || r.Email == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "username and email must not be empty")
	}
	return nil
}

// LoginResult carries the issued access token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}
