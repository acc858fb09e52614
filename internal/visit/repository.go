package visit

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/civil"
)

// Store loads, records, and removes a user's visits.
type Store interface {
	// ListForUser returns the user's visits, oldest entry first.
	ListForUser(ctx context.Context, userID int64) ([]Visit, error)
	// Insert stores a new visit and returns it with its assigned ID.
	Insert(ctx context.Context, userID int64, enterAt, exitAt civil.Date) (*Visit, error)
	// DeleteForUser removes the visit only if userID owns it and reports
	// how many rows were removed.
	DeleteForUser(ctx context.Context, userID, id int64) (int64, error)
}

// Repository is the SQLite Store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a visit repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, user_id, enter_at, exit_at, created_at, updated_at`

// Insert records a new visit for a user.
func (r *Repository) Insert(ctx context.Context, userID int64, enterAt, exitAt civil.Date) (*Visit, error) {
	if _, err := New(userID, enterAt, exitAt); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO visits (user_id, enter_at, exit_at) VALUES (?, ?, ?)",
		userID, enterAt.String(), exitAt.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting visit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	v, err := scanVisit(r.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM visits WHERE id = ?", id,
	))
	if err != nil {
		return nil, fmt.Errorf("reading back visit: %w", err)
	}

	return v, nil
}

// ListForUser returns all visits for a user ordered by entry date.
func (r *Repository) ListForUser(ctx context.Context, userID int64) (visits []Visit, err error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM visits WHERE user_id = ? ORDER BY enter_at, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		visits = append(visits, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	return visits, nil
}

// DeleteForUser removes a visit by ID when it belongs to userID. A visit
// that is missing or owned by someone else yields 0 without an error.
func (r *Repository) DeleteForUser(ctx context.Context, userID, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM visits WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting visit: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}

	return n, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVisit(s scanner) (*Visit, error) {
	var v Visit
	var enterAt, exitAt string
	if err := s.Scan(&v.ID, &v.UserID, &enterAt, &exitAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if v.EnterAt, err = civil.ParseDate(enterAt); err != nil {
		return nil, fmt.Errorf("parsing enter_at %q: %w", enterAt, err)
	}
	if v.ExitAt, err = civil.ParseDate(exitAt); err != nil {
		return nil, fmt.Errorf("parsing exit_at %q: %w", exitAt, err)
	}

	return &v, nil
}
