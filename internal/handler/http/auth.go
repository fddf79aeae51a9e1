package http

import (
	"log/slog"
	"net/http"

	"github.com/shiva-srivastav/zest-products/internal/service"
	"github.com/shiva-srivastav/zest-products/pkg/errors"
	"github.com/shiva-srivastav/zest-products/pkg/httputil"
	"github.com/shiva-srivastav/zest-products/pkg/middleware"
	"github.com/shiva-srivastav/zest-products/pkg/validator"
)

// AuthHandler handles HTTP requests for auth endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// RegisterRequest is the JSON request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=6,max=40"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
}

// LoginRequest is the JSON request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the JSON request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// --- Handlers ---

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	result, err := h.service.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	// A fresh account is signed in immediately, same response shape as login.
	httputil.WriteJSON(w, http.StatusCreated, result)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// RefreshToken handles POST /api/v1/auth/refresh-token
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req RefreshTokenRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		httputil.WriteError(w, r, errors.Unauthorized("authentication required"))
		return
	}

	if err := h.service.Logout(r.Context(), username); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// writeValidationError renders field-level validation failures; non-validator
// errors fall back to a generic invalid input response.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	if valErr, ok := err.(*validator.ValidationError); ok {
		httputil.WriteValidationError(w, r, valErr.Fields())
		return
	}
	httputil.WriteError(w, r, errors.InvalidInput(err.Error()))
}
