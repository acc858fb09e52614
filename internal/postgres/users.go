package postgres

import (
	"context"
	"fmt"

	"github.com/liamgriffiths/visits/internal/user"
)

// UserRepository is the PostgreSQL user.Store.
type UserRepository struct {
	pool *Pool
}

func NewUserRepository(pool *Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindOrCreate upserts a user keyed by username.
func (r *UserRepository) FindOrCreate(ctx context.Context, username string) (*user.User, error) {
	username, err := user.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO users (username) VALUES ($1)
		ON CONFLICT (username) DO NOTHING
	`, username); err != nil {
		return nil, fmt.Errorf("adding user: %w", err)
	}

	var u user.User
	err = r.pool.QueryRow(ctx, `
		SELECT id, username, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}
