package visit

import "fmt"

// Default rolling-window rule: 90 days in any 180-day period, for a one-day stay.
const (
	DefaultPeriod  = 180
	DefaultMaxDays = 90
	DefaultLength  = 1
)

// Rules describes a rolling-window allowance and a requested stay length.
type Rules struct {
	Period  int `json:"period"`
	MaxDays int `json:"max_days"`
	Length  int `json:"length"`
}

// DefaultRules returns the 90/180 rule for a one-day stay.
func DefaultRules() Rules {
	return Rules{Period: DefaultPeriod, MaxDays: DefaultMaxDays, Length: DefaultLength}
}

// validateWindow checks the fields needed for accounting only.
func (r Rules) validateWindow() error {
	if r.Period <= 0 {
		return fmt.Errorf("period must be positive (got %d): %w", r.Period, ErrInvalidRules)
	}
	if r.MaxDays <= 0 {
		return fmt.Errorf("max days must be positive (got %d): %w", r.MaxDays, ErrInvalidRules)
	}
	return nil
}

// Validate checks the rules before a next-date search. A length above the
// allowance can never fit, so it is rejected rather than searched for.
func (r Rules) Validate() error {
	if err := r.validateWindow(); err != nil {
		return err
	}
	if r.Length <= 0 {
		return fmt.Errorf("length must be positive (got %d): %w", r.Length, ErrInvalidRules)
	}
	if r.Length > r.MaxDays {
		return fmt.Errorf("length %d exceeds max days %d: %w", r.Length, r.MaxDays, ErrInvalidRules)
	}
	return nil
}
