package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiva-srivastav/zest-products/internal/domain"
	"github.com/shiva-srivastav/zest-products/pkg/database"
	apperrors "github.com/shiva-srivastav/zest-products/pkg/errors"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated ID.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, full_name, role, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.Role,
		u.Enabled,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		// The service checks existence up front; hitting a constraint here
		// means a concurrent registration won the race.
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "users_email_key") {
				return apperrors.DuplicateEmail(u.Email)
			}
			return apperrors.DuplicateUsername(u.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their identifier.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, full_name, role, enabled, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(ctx, query, id)
}

// GetByUsername retrieves a user by their username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, full_name, role, enabled, created_at, updated_at
		FROM users
		WHERE username = $1`

	return r.scanUser(ctx, query, username)
}

// scanUser executes a query expected to return a single user row.
func (r *UserRepository) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Role,
		&u.Enabled,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// --- Refresh Token Repository ---

// RefreshTokenRepository implements repository.RefreshTokenRepository using PostgreSQL.
type RefreshTokenRepository struct {
	db database.DBTX
}

// NewRefreshTokenRepository creates a new PostgreSQL-backed refresh token repository.
func NewRefreshTokenRepository(db database.DBTX) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// GetByToken retrieves a refresh token record by its opaque value.
func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1`

	return r.scanToken(ctx, query, token)
}

// GetByUser retrieves the refresh token row for the given user, if any.
func (r *RefreshTokenRepository) GetByUser(ctx context.Context, userID int64) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE user_id = $1`

	return r.scanToken(ctx, query, userID)
}

// Replace atomically removes any existing token row for the user and inserts
// a new one. Rotation always issues a fresh row so an old token value can
// never be resurrected.
func (r *RefreshTokenRepository) Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete old refresh token: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		userID, token, expiresAt, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Delete removes a refresh token row by its opaque value.
func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// DeleteByUser removes the refresh token row for the given user.
func (r *RefreshTokenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete refresh tokens by user: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) scanToken(ctx context.Context, query string, arg any) (*domain.RefreshToken, error) {
	var rt domain.RefreshToken
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&rt.ID,
		&rt.UserID,
		&rt.Token,
		&rt.ExpiresAt,
		&rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan refresh token: %w", err)
	}

	return &rt, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
