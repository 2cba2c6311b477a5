package models

import (
	"strings"
	"time"

	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
	tags "fittrack/pkg/platform/strings"
)

// Template is a reusable workout. Global templates are readable by every
// user; personal ones only by their owner.
type Template struct {
	ID               domain.TemplateID `json:"id"`
	OwnerID          domain.UserID     `json:"user_id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Exercises        []domain.Exercise `json:"exercises"`
	IsGlobal         bool              `json:"is_global"`
	MuscleGroups     []string          `json:"muscle_groups"`
	Goal             string            `json:"goal"`
	Difficulty       string            `json:"difficulty"`
	Equipment        []string          `json:"equipment"`
	DurationCategory string            `json:"duration_category"`
	CreatedAt        time.Time         `json:"-"`
}

// VisibleTo reports whether userID may read the template.
func (t *Template) VisibleTo(userID domain.UserID) bool {
	return t.IsGlobal || t.OwnerID == userID
}

// MutableBy reports whether p may update or delete the template: admins
// always, owners only while the template is personal.
func (t *Template) MutableBy(p domain.Principal) bool {
	if p.Role.IsAdmin() {
		return true
	}
	return t.OwnerID == p.UserID && !t.IsGlobal
}

// Clone returns a deep copy so callers never share slices with a store.
func (t *Template) Clone() *Template {
	c := *t
	c.Exercises = domain.CloneExercises(t.Exercises)
	c.MuscleGroups = append([]string{}, t.MuscleGroups...)
	c.Equipment = append([]string{}, t.Equipment...)
	return &c
}

// Filter narrows a listing. Zero-valued fields do not narrow.
type Filter struct {
	MuscleGroup      string
	Goal             string
	Difficulty       string
	DurationCategory string
	// Equipment lists tags that must all be present on a match.
	Equipment []string
}

func (f Filter) Matches(t *Template) bool {
	if f.MuscleGroup != "" && !tags.Contains(t.MuscleGroups, f.MuscleGroup) {
		return false
	}
	if f.Goal != "" && t.Goal != f.Goal {
		return false
	}
	if f.Difficulty != "" && t.Difficulty != f.Difficulty {
		return false
	}
	if f.DurationCategory != "" && t.DurationCategory != f.DurationCategory {
		return false
	}
	return tags.ContainsAll(t.Equipment, f.Equipment)
}

type CreateRequest struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Exercises        []domain.Exercise `json:"exercises"`
	IsGlobal         bool              `json:"is_global"`
	MuscleGroups     []string          `json:"muscle_groups"`
	Goal             string            `json:"goal"`
	Difficulty       string            `json:"difficulty"`
	Equipment        []string          `json:"equipment"`
	DurationCategory string            `json:"duration_category"`
}

func (r *CreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.MuscleGroups = tags.NormalizeTags(r.MuscleGroups)
	r.Equipment = tags.NormalizeTags(r.Equipment)
}

func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "template name is required")
	}
	return validateExercises(r.Exercises)
}

// UpdateRequest is a partial update: nil fields keep their current value.
type UpdateRequest struct {
	Name             *string            `json:"name"`
	Description      *string            `json:"description"`
	Exercises        *[]domain.Exercise `json:"exercises"`
	IsGlobal         *bool              `json:"is_global"`
	MuscleGroups     *[]string          `json:"muscle_groups"`
	Goal             *string            `json:"goal"`
	Difficulty       *string            `json:"difficulty"`
	Equipment        *[]string          `json:"equipment"`
	DurationCategory *string            `json:"duration_category"`
}

func (r *UpdateRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.MuscleGroups != nil {
		mg := tags.NormalizeTags(*r.MuscleGroups)
		r.MuscleGroups = &mg
	}
	if r.Equipment != nil {
		eq := tags.NormalizeTags(*r.Equipment)
		r.Equipment = &eq
	}
}

func (r *UpdateRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "template name must not be empty")
	}
	if r.Exercises != nil {
		return validateExercises(*r.Exercises)
	}
	return nil
}

// Apply overwrites the fields present in r.
func (r *UpdateRequest) Apply(t *Template) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Exercises != nil {
		t.Exercises = domain.CloneExercises(*r.Exercises)
	}
	if r.IsGlobal != nil {
		t.IsGlobal = *r.IsGlobal
	}
	if r.MuscleGroups != nil {
		t.MuscleGroups = *r.MuscleGroups
	}
	if r.Goal != nil {
		t.Goal = *r.Goal
	}
	if r.Difficulty != nil {
		t.Difficulty = *r.Difficulty
	}
	if r.Equipment != nil {
		t.Equipment = *r.Equipment
	}
	if r.DurationCategory != nil {
		t.DurationCategory = *r.DurationCategory
	}
}

func validateExercises(exercises []domain.Exercise) error {
	for _, e := range exercises {
		if strings.TrimSpace(e.Name) == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "exercise name is required")
		}
		if e.Sets < 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "exercise sets must not be negative")
		}
	}
	return nil
}
