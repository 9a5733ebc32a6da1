package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

// GetUserByEmail retrieves a user by email address.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (model.User, error) {
	var u model.User
	var createdAt string
	err := db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, domain.NotFoundError{Resource: "user", ID: email, Err: err}
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		u.CreatedAt = t
	}
	return u, nil
}

// InsertUser creates a new user.
func InsertUser(ctx context.Context, db *sql.DB, u model.User) (int64, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	if !u.CreatedAt.IsZero() {
		createdAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	result, err := db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, u.Name, u.Email, u.PasswordHash, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// CountUsers returns the number of registered users.
func CountUsers(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// UserStore adapts the users table to account.UserStore.
type UserStore struct {
	DB *sql.DB
}

func (s UserStore) UserByEmail(ctx context.Context, email string) (model.User, error) {
	return GetUserByEmail(ctx, s.DB, email)
}

func (s UserStore) InsertUser(ctx context.Context, u model.User) (int64, error) {
	return InsertUser(ctx, s.DB, u)
}
