package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// UserStore handles database operations for admin users.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// GetByEmail retrieves a user by email, nil when it does not exist.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var u model.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", email, err)
	}

	return &u, nil
}

// GetByID retrieves a user by id, nil when it does not exist.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`

	var u model.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	return &u, nil
}

// Upsert creates a user or replaces the password hash of an existing one.
func (s *UserStore) Upsert(ctx context.Context, email, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id, email, password_hash, created_at
	`

	var u model.User
	err := s.db.QueryRowContext(ctx, query, uuid.NewString(), email, passwordHash, time.Now()).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", email, err)
	}

	return &u, nil
}

// UpdatePassword replaces a user's password hash. Returns false when the id
// does not exist.
func (s *UserStore) UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return false, fmt.Errorf("failed to update password for user %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update password for user %s: %w", id, err)
	}
	return n > 0, nil
}
