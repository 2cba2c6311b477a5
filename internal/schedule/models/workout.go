package models

import (
	"math"
	"time"

	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

// DailyWorkout is a template snapshot scheduled for one calendar date. Name,
// description and exercises are copied at scheduling time and never follow
// later template edits.
type DailyWorkout struct {
	ID              domain.WorkoutID  `json:"id"`
	UserID          domain.UserID     `json:"user_id"`
	TemplateID      domain.TemplateID `json:"template_id"`
	Date            domain.Date       `json:"date"`
	Status          Status            `json:"status"`
	TemplateName    string            `json:"template_name"`
	Description     string            `json:"description"`
	Exercises       []domain.Exercise `json:"exercises"`
	DurationSeconds *int              `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time         `json:"-"`
}

func (w *DailyWorkout) Clone() *DailyWorkout {
	c := *w
	c.Exercises = domain.CloneExercises(w.Exercises)
	if w.DurationSeconds != nil {
		d := *w.DurationSeconds
		c.DurationSeconds = &d
	}
	return &c
}

// Complete moves the workout to completed. A nil exercises slice keeps the
// scheduled snapshot.
func (w *DailyWorkout) Complete(exercises []domain.Exercise, durationSeconds int) error {
	if w.Status == StatusCompleted {
		return dErrors.New(dErrors.CodeInvalidState, "workout is already completed")
	}
	if exercises != nil {
		w.Exercises = domain.CloneExercises(exercises)
	}
	w.DurationSeconds = &durationSeconds
	w.Status = StatusCompleted
	return nil
}

// Reset moves a completed workout back to upcoming and drops what was
// recorded on completion.
func (w *DailyWorkout) Reset() error {
	if w.Status != StatusCompleted {
		return dErrors.New(dErrors.CodeInvalidState, "workout is not completed")
	}
	w.Exercises = domain.WithoutActuals(w.Exercises)
	w.DurationSeconds = nil
	w.Status = StatusUpcoming
	return nil
}

type ScheduleRequest struct {
	TemplateID string `json:"template_id"`
	Date       string `json:"date"`
}

// Parse validates the request.
// Errors: CodeInvalidInput when template_id or date is missing or malformed.
func (r *ScheduleRequest) Parse() (domain.TemplateID, domain.Date, error) {
	templateID, err := domain.ParseTemplateID(r.TemplateID)
	if err != nil {
		return domain.TemplateID{}, "", err
	}
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.TemplateID{}, "", err
	}
	return templateID, date, nil
}

type CompleteRequest struct {
	Exercises       []domain.Exercise `json:"exercises"`
	DurationSeconds *int              `json:"duration_seconds"`
}

func (r *CompleteRequest) Validate() error {
	if r.DurationSeconds != nil && *r.DurationSeconds < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "duration_seconds must not be negative")
	}
	if r.DurationSeconds != nil && *r.DurationSeconds > math.MaxInt32 {
		return dErrors.New(dErrors.CodeInvalidInput, "duration_seconds is too large")
	}
	for _, e := range r.Exercises {
		if e.Sets < 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "exercise sets must not be negative")
		}
	}
	return nil
}

// Duration returns the recorded duration, zero when absent.
func (r *CompleteRequest) Duration() int {
	if r.DurationSeconds == nil {
		return 0
	}
	return *r.DurationSeconds
}
