package postgres

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"

	"github.com/liamgriffiths/visits/internal/visit"
)

// VisitRepository is the PostgreSQL visit.Store.
type VisitRepository struct {
	pool *Pool
}

func NewVisitRepository(pool *Pool) *VisitRepository {
	return &VisitRepository{pool: pool}
}

// Insert records a new visit for a user.
func (r *VisitRepository) Insert(ctx context.Context, userID int64, enterAt, exitAt civil.Date) (*visit.Visit, error) {
	if _, err := visit.New(userID, enterAt, exitAt); err != nil {
		return nil, err
	}

	v, err := scanVisit(r.pool.QueryRow(ctx, `
		INSERT INTO visits (user_id, enter_at, exit_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, enter_at, exit_at, created_at, updated_at
	`, userID, enterAt.In(time.UTC), exitAt.In(time.UTC)))
	if err != nil {
		return nil, fmt.Errorf("inserting visit: %w", err)
	}
	return v, nil
}

// ListForUser returns all visits for a user ordered by entry date.
func (r *VisitRepository) ListForUser(ctx context.Context, userID int64) ([]visit.Visit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, enter_at, exit_at, created_at, updated_at
		FROM visits
		WHERE user_id = $1
		ORDER BY enter_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer rows.Close()

	var visits []visit.Visit
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

// DeleteForUser removes a visit by ID when it belongs to userID.
func (r *VisitRepository) DeleteForUser(ctx context.Context, userID, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM visits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting visit: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanVisit(row pgx.Row) (*visit.Visit, error) {
	var v visit.Visit
	var enterAt, exitAt time.Time
	if err := row.Scan(&v.ID, &v.UserID, &enterAt, &exitAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.EnterAt = civil.DateOf(enterAt)
	v.ExitAt = civil.DateOf(exitAt)
	return &v, nil
}
