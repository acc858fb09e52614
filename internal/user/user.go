// Package user provides traveler identity and lookup.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUsernameRequired is returned for a blank username.
var ErrUsernameRequired = errors.New("username is required")

// User is the identity that visits are scoped to.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store resolves users by name.
type Store interface {
	// FindOrCreate returns the user with this username, creating it first
	// if needed. Calling it again with the same name returns the same user.
	FindOrCreate(ctx context.Context, username string) (*User, error)
}

// NormalizeUsername trims surrounding whitespace and rejects empty names.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrUsernameRequired
	}
	return username, nil
}

// Repository is the SQLite Store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a user repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate upserts a user keyed by username.
func (r *Repository) FindOrCreate(ctx context.Context, username string) (*User, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username) VALUES (?) ON CONFLICT(username) DO NOTHING",
		username,
	); err != nil {
		return nil, fmt.Errorf("adding user: %w", err)
	}

	var u User
	err = r.db.QueryRowContext(ctx,
		"SELECT id, username, created_at, updated_at FROM users WHERE username = ?", username,
	).Scan(&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}
