package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("product", int64(5))
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "product with id 5 not found")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, NotFound("product", 5), ErrNotFound)
	assert.ErrorIs(t, DuplicateUsername("alice"), ErrAlreadyExists)
	assert.ErrorIs(t, DuplicateEmail("a@b.c"), ErrAlreadyExists)
	assert.ErrorIs(t, InvalidCredentials(), ErrInvalidCredentials)
	assert.ErrorIs(t, TokenNotFound(), ErrTokenNotFound)
	assert.ErrorIs(t, TokenExpired(), ErrTokenExpired)
}

func TestConstructors_CodesAndStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("product", 5), "NOT_FOUND", http.StatusNotFound},
		{"invalid input", InvalidInput("bad id"), "INVALID_INPUT", http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"internal", Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"duplicate username", DuplicateUsername("alice"), "DUPLICATE_USERNAME", http.StatusBadRequest},
		{"duplicate email", DuplicateEmail("a@b.c"), "DUPLICATE_EMAIL", http.StatusBadRequest},
		{"invalid credentials", InvalidCredentials(), "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"token not found", TokenNotFound(), "TOKEN_NOT_FOUND", http.StatusUnauthorized},
		{"token expired", TokenExpired(), "TOKEN_EXPIRED", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestInvalidCredentials_StableMessage(t *testing.T) {
	// The message must not vary by failure cause so accounts cannot be
	// enumerated through the login endpoint.
	assert.Equal(t, "invalid username or password", InvalidCredentials().Message)
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("product", 5)))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(TokenExpired()))
}

func TestHTTPStatus_WrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", DuplicateEmail("a@b.c"))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))
}

func TestHTTPStatus_Sentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrAlreadyExists))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrInvalidInput))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrInvalidCredentials))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrTokenNotFound))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrForbidden))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestWrap(t *testing.T) {
	base := errors.New("connect refused")
	wrapped := Wrap(base, "dial postgres")

	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "dial postgres")
}
