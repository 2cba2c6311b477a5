package domain

import "time"

// Role is the coarse authorization level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Principal is the authenticated actor of a request. Handlers obtain it
// explicitly and pass it to services; it is never read from ambient state.
type Principal struct {
	UserID    UserID
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}
