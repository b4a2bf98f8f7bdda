package models

import (
	"time"
)

const DateLayout = "2006-01-02"

// Period is an inclusive reporting window, both ends in YYYY-MM-DD.
type Period struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ParsePeriod validates both ends and returns start at 00:00 and end extended
// to 23:59:59 of its day.
func ParsePeriod(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, NewValidationError("period", "start and end dates are required")
	}
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("start", "expected YYYY-MM-DD, got %q", start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("end", "expected YYYY-MM-DD, got %q", end)
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, NewValidationError("period", "end date %s is before start date %s", end, start)
	}
	e = e.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return s, e, nil
}
