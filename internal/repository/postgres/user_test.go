package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva-srivastav/zest-products/internal/domain"
	apperrors "github.com/shiva-srivastav/zest-products/pkg/errors"
)

func newUserTestFixture(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewUserRepository(mock)
	return repo, mock
}

func sampleUser() *domain.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash-abc",
		FullName:     "Alice Smith",
		Role:         domain.RoleUser,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func userColumns() []string {
	return []string{
		"id", "username", "email", "password_hash", "full_name",
		"role", "enabled", "created_at", "updated_at",
	}
}

func userRow(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns()).AddRow(
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName,
		u.Role, u.Enabled, u.CreatedAt, u.UpdatedAt,
	)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestUserRepository_Create_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()
	u.ID = 0

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(
			u.Username, u.Email, u.PasswordHash, u.FullName,
			u.Role, u.Enabled, u.CreatedAt, u.UpdatedAt,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	err := repo.Create(context.Background(), u)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()
	u.ID = 0

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(
			u.Username, u.Email, u.PasswordHash, u.FullName,
			u.Role, u.Enabled, u.CreatedAt, u.UpdatedAt,
		).
		WillReturnError(fmt.Errorf(`ERROR: duplicate key value violates unique constraint "users_username_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()
	u.ID = 0

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(
			u.Username, u.Email, u.PasswordHash, u.FullName,
			u.Role, u.Enabled, u.CreatedAt, u.UpdatedAt,
		).
		WillReturnError(fmt.Errorf(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), u)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_EMAIL", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// GetByUsername / GetByID
// ---------------------------------------------------------------------------

func TestUserRepository_GetByUsername_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("alice").
		WillReturnRows(userRow(u))

	got, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(userColumns()))

	got, err := repo.GetByUsername(context.Background(), "ghost")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	u := sampleUser()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(1)).
		WillReturnRows(userRow(u))

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// ExistsByUsername / ExistsByEmail
// ---------------------------------------------------------------------------

func TestUserRepository_ExistsByUsername(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail_False(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("new@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Refresh tokens
// ---------------------------------------------------------------------------

func newTokenTestFixture(t *testing.T) (*RefreshTokenRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewRefreshTokenRepository(mock)
	return repo, mock
}

func tokenColumns() []string {
	return []string{"id", "user_id", "token", "expires_at", "created_at"}
}

func TestRefreshTokenRepository_GetByToken_Success(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens").
		WithArgs("tok-123").
		WillReturnRows(pgxmock.NewRows(tokenColumns()).
			AddRow(int64(10), int64(1), "tok-123", now.Add(time.Hour), now))

	got, err := repo.GetByToken(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "tok-123", got.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_GetByToken_NotFound(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(tokenColumns()))

	got, err := repo.GetByToken(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Replace_DeletesThenInserts(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	expiresAt := time.Now().UTC().Add(7 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(int64(1), "new-token", expiresAt, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.Replace(context.Background(), 1, "new-token", expiresAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Replace_RollsBackOnInsertError(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	expiresAt := time.Now().UTC().Add(7 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(int64(1), "new-token", expiresAt, pgxmock.AnyArg()).
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), 1, "new-token", expiresAt)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Delete(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs("tok-123").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Delete(context.Background(), "tok-123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteByUser_NoRowsIsFine(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.DeleteByUser(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
