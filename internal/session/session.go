// Package session binds one user to the user and visit stores and runs the
// accounting against a fresh snapshot of that user's history.
package session

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/liamgriffiths/visits/internal/user"
	"github.com/liamgriffiths/visits/internal/visit"
)

// Session lets a single user record and inspect visits.
type Session struct {
	visits visit.Store
	user   *user.User
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the clock used to determine today's date.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New resolves username, creating the user if needed.
func New(ctx context.Context, users user.Store, visits visit.Store, username string, opts ...Option) (*Session, error) {
	u, err := users.FindOrCreate(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}

	s := &Session{visits: visits, user: u, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// User returns the session's user.
func (s *Session) User() *user.User {
	return s.user
}

// Today returns the current UTC date.
func (s *Session) Today() civil.Date {
	return visit.Today(s.now())
}

// AllVisits returns the user's visits, oldest entry first.
func (s *Session) AllVisits(ctx context.Context) ([]visit.Visit, error) {
	visits, err := s.visits.ListForUser(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("loading visits: %w", err)
	}
	return visits, nil
}

// AddVisit records a visit for the user.
func (s *Session) AddVisit(ctx context.Context, enterAt, exitAt civil.Date) (*visit.Visit, error) {
	v, err := s.visits.Insert(ctx, s.user.ID, enterAt, exitAt)
	if err != nil {
		return nil, fmt.Errorf("adding visit: %w", err)
	}
	return v, nil
}

// RemoveVisit deletes one of the user's visits and reports how many rows
// were removed. A visit that is missing or not the user's yields 0.
func (s *Session) RemoveVisit(ctx context.Context, id int64) (int64, error) {
	n, err := s.visits.DeleteForUser(ctx, s.user.ID, id)
	if err != nil {
		return 0, fmt.Errorf("removing visit %d: %w", id, err)
	}
	return n, nil
}

// Summary reports window usage for every visit.
func (s *Session) Summary(ctx context.Context, rules visit.Rules) (visit.Summary, error) {
	visits, err := s.AllVisits(ctx)
	if err != nil {
		return visit.Summary{}, err
	}
	return visit.Summarize(visits, s.Today(), rules)
}

// NextVisit finds the earliest visit of rules.Length days that fits the
// allowance. The result is not stored.
func (s *Session) NextVisit(ctx context.Context, rules visit.Rules) (visit.Visit, error) {
	if err := rules.Validate(); err != nil {
		return visit.Visit{}, err
	}
	visits, err := s.AllVisits(ctx)
	if err != nil {
		return visit.Visit{}, err
	}
	return visit.NextAvailableFor(s.user.ID, visits, s.Today(), rules)
}
