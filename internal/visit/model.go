// Package visit provides the visit domain model, rolling-window accounting,
// and data access.
package visit

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the accepted input and storage format for visit dates.
const DateLayout = "2006-01-02"

var (
	ErrInvalidRange    = errors.New("exit date is before enter date")
	ErrInvalidRules    = errors.New("invalid window rules")
	ErrNoAvailableDate = errors.New("no available date found")
)

// Visit represents a stay between an entry and an exit date, both inclusive.
// A Visit with ID 0 is hypothetical and has not been stored.
type Visit struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	EnterAt   civil.Date `json:"enter_at"`
	ExitAt    civil.Date `json:"exit_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// New builds an unsaved visit for a user.
func New(userID int64, enterAt, exitAt civil.Date) (Visit, error) {
	v := Visit{UserID: userID, EnterAt: enterAt, ExitAt: exitAt}
	if err := v.Validate(); err != nil {
		return Visit{}, err
	}
	return v, nil
}

// Validate checks that both dates are real calendar dates and that the visit
// does not end before it starts.
func (v Visit) Validate() error {
	if !v.EnterAt.IsValid() {
		return fmt.Errorf("invalid enter date %q", v.EnterAt)
	}
	if !v.ExitAt.IsValid() {
		return fmt.Errorf("invalid exit date %q", v.ExitAt)
	}
	if v.ExitAt.Before(v.EnterAt) {
		return fmt.Errorf("%s to %s: %w", v.EnterAt, v.ExitAt, ErrInvalidRange)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}
	return d, nil
}

// Today returns the calendar date of t in UTC.
func Today(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}
