package user

import (
	"fmt"

	"fittrack/pkg/platform/sentinel"
)

// Both wrap sentinel.ErrConflict so callers can match either the general or
// the specific failure.
var (
	ErrEmailTaken    = fmt.Errorf("email already registered: %w", sentinel.ErrConflict)
	ErrUsernameTaken = fmt.Errorf("username already taken: %w", sentinel.ErrConflict)
)
