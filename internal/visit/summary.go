package visit

import "cloud.google.com/go/civil"

// Row is one line of a visit summary.
type Row struct {
	ID       int64      `json:"id"`
	EnterAt  civil.Date `json:"enter_at"`
	ExitAt   civil.Date `json:"exit_at"`
	Days     int        `json:"days"`
	DaysLeft int        `json:"days_left"`
}

// Summary reports window usage as of each visit's exit date.
type Summary struct {
	Period        int   `json:"period"`
	MaxDays       int   `json:"max_days"`
	Rows          []Row `json:"visits"`
	TotalDays     int   `json:"total_days"`
	DaysLeftToday int   `json:"days_left_today"`
}

// Candidate is the report for a proposed visit.
type Candidate struct {
	EnterAt   civil.Date `json:"enter_at"`
	ExitAt    civil.Date `json:"exit_at"`
	Days      int        `json:"days"`
	DaysUntil int        `json:"days_until"`
}

// Summarize computes, for every visit in history, the allowance left in
// the window ending on its exit date. Rows keep the order of history.
// rules.Length is not used.
func Summarize(history []Visit, today civil.Date, rules Rules) (Summary, error) {
	if err := rules.validateWindow(); err != nil {
		return Summary{}, err
	}

	s := Summary{
		Period:    rules.Period,
		MaxDays:   rules.MaxDays,
		Rows:      make([]Row, 0, len(history)),
		TotalDays: SumAllDays(history),
	}
	for _, v := range history {
		s.Rows = append(s.Rows, Row{
			ID:       v.ID,
			EnterAt:  v.EnterAt,
			ExitAt:   v.ExitAt,
			Days:     v.Days(),
			DaysLeft: rules.MaxDays - v.SumAllDaysSince(v.WindowStart(rules.Period), history),
		})
	}

	ref := Visit{EnterAt: today, ExitAt: today}
	s.DaysLeftToday = rules.MaxDays - ref.SumAllDaysSince(ref.WindowStart(rules.Period), history)

	return s, nil
}

// Report describes v relative to today.
func (v Visit) Report(today civil.Date) Candidate {
	return Candidate{
		EnterAt:   v.EnterAt,
		ExitAt:    v.ExitAt,
		Days:      v.Days(),
		DaysUntil: v.DaysUntil(today),
	}
}
