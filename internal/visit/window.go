package visit

import "cloud.google.com/go/civil"

// Days counts the calendar days of the visit, both endpoints included.
func (v Visit) Days() int {
	return v.ExitAt.DaysSince(v.EnterAt) + 1
}

// DaysSince counts the days of the visit that fall on or after cutoff.
func (v Visit) DaysSince(cutoff civil.Date) int {
	switch {
	case cutoff.After(v.ExitAt):
		return 0
	case cutoff.After(v.EnterAt):
		return v.ExitAt.DaysSince(cutoff) + 1
	default:
		return v.Days()
	}
}

// DaysUntil returns how many days from today the visit starts. It is
// negative for visits that have already started.
func (v Visit) DaysUntil(today civil.Date) int {
	return v.EnterAt.DaysSince(today)
}

// WindowStart returns the cutoff of the rolling window of period days that
// ends on the visit's exit date.
func (v Visit) WindowStart(period int) civil.Date {
	return v.ExitAt.AddDays(-period)
}

// SumAllDaysSince totals the days used since cutoff by every visit in vs
// that started before v's exit date.
func (v Visit) SumAllDaysSince(cutoff civil.Date, vs []Visit) int {
	total := 0
	for _, other := range vs {
		if !other.EnterAt.Before(v.ExitAt) {
			continue
		}
		total += other.DaysSince(cutoff)
	}
	return total
}

// SumAllDays totals the days of every visit, ignoring any window.
func SumAllDays(vs []Visit) int {
	total := 0
	for _, v := range vs {
		total += v.Days()
	}
	return total
}
