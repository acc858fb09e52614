package visit

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchToday = civil.Date{Year: 2026, Month: time.March, Day: 1}

func span(enterOffset, exitOffset int) Visit {
	return Visit{EnterAt: searchToday.AddDays(enterOffset), ExitAt: searchToday.AddDays(exitOffset)}
}

func TestNextAvailable(t *testing.T) {
	tests := []struct {
		name      string
		history   []Visit
		rules     Rules
		wantEnter int
	}{
		{
			name:      "empty history enters today",
			rules:     DefaultRules(),
			wantEnter: 0,
		},
		{
			name:      "full allowance used up to yesterday",
			history:   []Visit{span(-90, -1)},
			rules:     DefaultRules(),
			wantEnter: 91,
		},
		{
			name:      "days left equal to length is feasible",
			history:   []Visit{span(-85, -1)},
			rules:     Rules{Period: 180, MaxDays: 90, Length: 5},
			wantEnter: 0,
		},
		{
			name:      "one day more than left waits for the window",
			history:   []Visit{span(-85, -1)},
			rules:     Rules{Period: 180, MaxDays: 90, Length: 6},
			wantEnter: 91,
		},
		{
			name:      "old history outside the window is ignored",
			history:   []Visit{span(-400, -311)},
			rules:     DefaultRules(),
			wantEnter: 0,
		},
		{
			name:      "planned visit starting after candidate exit is ignored",
			history:   []Visit{span(10, 99)},
			rules:     DefaultRules(),
			wantEnter: 0,
		},
		{
			name:      "length equal to allowance",
			history:   []Visit{span(-10, -1)},
			rules:     Rules{Period: 180, MaxDays: 90, Length: 90},
			wantEnter: 91, // the window must clear yesterday entirely
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextAvailable(tt.history, searchToday, tt.rules)
			require.NoError(t, err)

			assert.Equal(t, searchToday.AddDays(tt.wantEnter), got.EnterAt)
			assert.Equal(t, tt.rules.Length, got.Days())
			assert.Zero(t, got.ID)
		})
	}
}

func TestNextAvailableInvalidRules(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
	}{
		{"zero period", Rules{Period: 0, MaxDays: 90, Length: 1}},
		{"negative period", Rules{Period: -1, MaxDays: 90, Length: 1}},
		{"zero max days", Rules{Period: 180, MaxDays: 0, Length: 1}},
		{"zero length", Rules{Period: 180, MaxDays: 90, Length: 0}},
		{"negative length", Rules{Period: 180, MaxDays: 90, Length: -3}},
		{"length above allowance", Rules{Period: 180, MaxDays: 90, Length: 91}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextAvailable(nil, searchToday, tt.rules)
			if !errors.Is(err, ErrInvalidRules) {
				t.Fatalf("error = %v, want ErrInvalidRules", err)
			}
		})
	}
}

func TestNextAvailableForSetsOwner(t *testing.T) {
	got, err := NextAvailableFor(42, nil, searchToday, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
}

func TestNextAvailableDoesNotMutateHistory(t *testing.T) {
	history := []Visit{span(-90, -1), span(-200, -150)}
	before := append([]Visit(nil), history...)

	_, err := NextAvailable(history, searchToday, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, before, history)
}

// feasible reports whether a visit entering on enter fits the rules.
func feasible(history []Visit, enter civil.Date, rules Rules) bool {
	c := Visit{EnterAt: enter, ExitAt: enter.AddDays(rules.Length - 1)}
	return rules.MaxDays-c.SumAllDaysSince(c.WindowStart(rules.Period), history) >= rules.Length
}

func TestNextAvailableIsEarliestFeasible(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		rules := Rules{
			Period:  30 + r.IntN(200),
			MaxDays: 1 + r.IntN(60),
		}
		rules.Length = 1 + r.IntN(rules.MaxDays)

		var history []Visit
		for n := r.IntN(6); n > 0; n-- {
			enter := r.IntN(400) - 300
			history = append(history, span(enter, enter+r.IntN(40)))
		}

		got, err := NextAvailable(history, searchToday, rules)
		require.NoError(t, err, "case %d rules %+v", i, rules)

		require.False(t, got.EnterAt.Before(searchToday), "case %d entered before today", i)
		require.Equal(t, rules.Length, got.ExitAt.DaysSince(got.EnterAt)+1, "case %d length", i)
		require.True(t, feasible(history, got.EnterAt, rules), "case %d result infeasible", i)
		for d := searchToday; d.Before(got.EnterAt); d = d.AddDays(1) {
			require.False(t, feasible(history, d, rules), "case %d: %s is feasible and earlier than %s", i, d, got.EnterAt)
		}
	}
}
