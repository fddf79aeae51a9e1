package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternal           = errors.New("internal error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenNotFound      = errors.New("refresh token not found")
	ErrTokenExpired       = errors.New("refresh token expired")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource string, id any) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %v not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// DuplicateUsername creates a 400 error for a registration username conflict.
func DuplicateUsername(username string) *AppError {
	return &AppError{
		Code:    "DUPLICATE_USERNAME",
		Message: fmt.Sprintf("username %q is already taken", username),
		Status:  http.StatusBadRequest,
		Err:     ErrAlreadyExists,
	}
}

// DuplicateEmail creates a 400 error for a registration email conflict.
func DuplicateEmail(email string) *AppError {
	return &AppError{
		Code:    "DUPLICATE_EMAIL",
		Message: fmt.Sprintf("email %q is already registered", email),
		Status:  http.StatusBadRequest,
		Err:     ErrAlreadyExists,
	}
}

// InvalidCredentials creates a 401 error. The message is deliberately identical
// for unknown username, disabled account, and password mismatch so that callers
// cannot enumerate accounts.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid username or password",
		Status:  http.StatusUnauthorized,
		Err:     ErrInvalidCredentials,
	}
}

// TokenNotFound creates a 401 error for a refresh token that is not in the store.
func TokenNotFound() *AppError {
	return &AppError{
		Code:    "TOKEN_NOT_FOUND",
		Message: "refresh token not found, please login again",
		Status:  http.StatusUnauthorized,
		Err:     ErrTokenNotFound,
	}
}

// TokenExpired creates a 401 error for a refresh token past its expiry.
func TokenExpired() *AppError {
	return &AppError{
		Code:    "TOKEN_EXPIRED",
		Message: "refresh token has expired, please login again",
		Status:  http.StatusUnauthorized,
		Err:     ErrTokenExpired,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrTokenNotFound),
		errors.Is(err, ErrTokenExpired), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
