package visit

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// NextAvailable finds the earliest visit of rules.Length days, entering on or
// after today, that keeps usage of the rolling window within rules.MaxDays.
// The returned visit is not stored.
func NextAvailable(history []Visit, today civil.Date, rules Rules) (Visit, error) {
	return NextAvailableFor(0, history, today, rules)
}

// NextAvailableFor is NextAvailable with the candidate owned by userID.
func NextAvailableFor(userID int64, history []Visit, today civil.Date, rules Rules) (Visit, error) {
	if err := rules.Validate(); err != nil {
		return Visit{}, err
	}
	if !today.IsValid() {
		return Visit{}, fmt.Errorf("invalid start date %q", today)
	}

	candidate := Visit{
		UserID:  userID,
		EnterAt: today,
		ExitAt:  today.AddDays(rules.Length - 1),
	}
	cutoff := candidate.WindowStart(rules.Period)

	// Once the cutoff passes the last exit nothing in history overlaps the
	// window, so the loop can never need more steps than this.
	limit := rules.Period + rules.Length + 1
	if last, ok := latestExit(history); ok && last.After(today) {
		limit += last.DaysSince(today)
	}

	for i := 0; i <= limit; i++ {
		used := candidate.SumAllDaysSince(cutoff, history)
		if rules.MaxDays-used >= rules.Length {
			return candidate, nil
		}
		candidate.EnterAt = candidate.EnterAt.AddDays(1)
		candidate.ExitAt = candidate.ExitAt.AddDays(1)
		cutoff = cutoff.AddDays(1)
	}

	return Visit{}, fmt.Errorf("searching %d days from %s: %w", limit, today, ErrNoAvailableDate)
}

func latestExit(vs []Visit) (civil.Date, bool) {
	var last civil.Date
	found := false
	for _, v := range vs {
		if !found || v.ExitAt.After(last) {
			last = v.ExitAt
			found = true
		}
	}
	return last, found
}
