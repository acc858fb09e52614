package visit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	history := []Visit{
		{ID: 1, EnterAt: searchToday.AddDays(-120), ExitAt: searchToday.AddDays(-91)}, // 30 days
		{ID: 2, EnterAt: searchToday.AddDays(-60), ExitAt: searchToday.AddDays(-41)},  // 20 days
		{ID: 3, EnterAt: searchToday.AddDays(-10), ExitAt: searchToday.AddDays(-1)},   // 10 days
	}

	s, err := Summarize(history, searchToday, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, 180, s.Period)
	assert.Equal(t, 90, s.MaxDays)
	assert.Equal(t, 60, s.TotalDays)
	require.Len(t, s.Rows, 3)

	assert.Equal(t, Row{ID: 1, EnterAt: history[0].EnterAt, ExitAt: history[0].ExitAt, Days: 30, DaysLeft: 60}, s.Rows[0])
	assert.Equal(t, 40, s.Rows[1].DaysLeft)
	assert.Equal(t, 30, s.Rows[2].DaysLeft)
	assert.Equal(t, 30, s.DaysLeftToday)
}

func TestSummarizeWindowExpires(t *testing.T) {
	history := []Visit{
		{ID: 1, EnterAt: searchToday.AddDays(-400), ExitAt: searchToday.AddDays(-311)}, // 90 days
		{ID: 2, EnterAt: searchToday.AddDays(-5), ExitAt: searchToday.AddDays(-1)},     // 5 days
	}

	s, err := Summarize(history, searchToday, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, 0, s.Rows[0].DaysLeft)
	assert.Equal(t, 85, s.Rows[1].DaysLeft)
	assert.Equal(t, 85, s.DaysLeftToday)
}

func TestSummarizeEmpty(t *testing.T) {
	s, err := Summarize(nil, searchToday, DefaultRules())
	require.NoError(t, err)

	assert.Empty(t, s.Rows)
	assert.NotNil(t, s.Rows)
	assert.Equal(t, 0, s.TotalDays)
	assert.Equal(t, 90, s.DaysLeftToday)
}

func TestSummarizeInvalidRules(t *testing.T) {
	tests := []Rules{
		{Period: 0, MaxDays: 90},
		{Period: 180, MaxDays: -1},
	}
	for _, rules := range tests {
		_, err := Summarize(nil, searchToday, rules)
		if !errors.Is(err, ErrInvalidRules) {
			t.Errorf("Summarize(%+v) error = %v, want ErrInvalidRules", rules, err)
		}
	}
}

func TestSummarizeIgnoresLength(t *testing.T) {
	_, err := Summarize(nil, searchToday, Rules{Period: 180, MaxDays: 90, Length: 0})
	assert.NoError(t, err)
}

func TestReport(t *testing.T) {
	v := Visit{EnterAt: searchToday.AddDays(14), ExitAt: searchToday.AddDays(20)}
	c := v.Report(searchToday)

	assert.Equal(t, v.EnterAt, c.EnterAt)
	assert.Equal(t, v.ExitAt, c.ExitAt)
	assert.Equal(t, 7, c.Days)
	assert.Equal(t, 14, c.DaysUntil)
}
