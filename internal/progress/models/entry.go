package models

import (
	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
)

// Entry is the journal row for one user and one calendar date.
// WorkoutsCompleted is maintained incrementally and never goes below zero.
type Entry struct {
	UserID            domain.UserID `json:"-"`
	Date              domain.Date   `json:"date"`
	Weight            *float64      `json:"weight"`
	WorkoutsCompleted int           `json:"workouts_completed"`
}

func (e *Entry) Clone() *Entry {
	c := *e
	if e.Weight != nil {
		w := *e.Weight
		c.Weight = &w
	}
	return &c
}

type LogWeightRequest struct {
	Weight *float64 `json:"weight"`
	Date   string   `json:"date"`
}

// Parse validates the request. An empty date resolves to today.
// Errors: CodeInvalidInput when weight is absent or not positive, or the date is malformed.
func (r *LogWeightRequest) Parse(today domain.Date) (float64, domain.Date, error) {
	if r.Weight == nil {
		return 0, "", dErrors.New(dErrors.CodeInvalidInput, "weight is required")
	}
	if *r.Weight <= 0 {
		return 0, "", dErrors.New(dErrors.CodeInvalidInput, "weight must be positive")
	}
	if r.Date == "" {
		return *r.Weight, today, nil
	}
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return 0, "", err
	}
	return *r.Weight, date, nil
}
