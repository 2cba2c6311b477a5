package domain

import (
	"github.com/google/uuid"

	dErrors "fittrack/pkg/domain-errors"
)

// Typed identifiers keep user, template and workout ids from being mixed up
// at call sites. All are UUIDs on the wire.
type (
	UserID     uuid.UUID
	TemplateID uuid.UUID
	WorkoutID  uuid.UUID
)

func NewUserID() UserID { return UserID(uuid.New()) }
func NewTemplateID() TemplateID { return TemplateID(uuid.New()) }
func NewWorkoutID() WorkoutID { return WorkoutID(uuid.New()) }

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id TemplateID) String() string { return uuid.UUID(id).String() }
func (id WorkoutID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id TemplateID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id WorkoutID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id TemplateID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id WorkoutID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *TemplateID) UnmarshalText(b []byte) error {
	parsed, err := ParseTemplateID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *WorkoutID) UnmarshalText(b []byte) error {
	parsed, err := ParseWorkoutID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseUserID parses external input into a UserID.
// Errors: CodeInvalidInput for empty, malformed or nil UUIDs.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

// ParseTemplateID parses external input into a TemplateID.
func ParseTemplateID(s string) (TemplateID, error) {
	u, err := parseUUID(s, "template id")
	return TemplateID(u), err
}

// ParseWorkoutID parses external input into a WorkoutID.
func ParseWorkoutID(s string) (WorkoutID, error) {
	u, err := parseUUID(s, "workout id")
	return WorkoutID(u), err
}

func parseUUID(s, name string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, name+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+name)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+name)
	}
	return u, nil
}
