package domain

import (
	"time"

	dErrors "fittrack/pkg/domain-errors"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. The zero value means "absent".
// Lexical order of valid dates equals chronological order.
type Date string

// ParseDate validates external input.
// Errors: CodeInvalidInput when empty or not a real calendar date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "date is required")
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD")
	}
	return Date(s), nil
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

func (d Date) String() string { return string(d) }

func (d Date) IsZero() bool { return d == "" }
