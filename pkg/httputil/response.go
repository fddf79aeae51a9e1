package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/shiva-srivastav/zest-products/pkg/errors"
	"github.com/shiva-srivastav/zest-products/pkg/logger"
	"github.com/shiva-srivastav/zest-products/pkg/pagination"
)

// Response is the standard API response envelope.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(Response{Data: data})
	}
}

// WriteError writes a structured error response. AppError values keep their
// code and status; anything else is reported as a generic internal error.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status := apperrors.HTTPStatus(err)

	errResp := &ErrorResponse{
		Code:      "INTERNAL_ERROR",
		Message:   "an internal error occurred",
		RequestID: logger.CorrelationIDFromContext(ctx),
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		errResp.Code = appErr.Code
		errResp.Message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.FromContext(ctx).Error("request failed",
			"error", err.Error(),
			"status", status,
			"path", r.URL.Path,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Error: errResp})
}

// WriteValidationError writes a 400 response carrying per-field messages.
func WriteValidationError(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	errResp := &ErrorResponse{
		Code:      "VALIDATION_FAILED",
		Message:   "request validation failed",
		Fields:    fields,
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(Response{Error: errResp})
}

// WritePaginated writes a paginated collection response.
func WritePaginated[T any](w http.ResponseWriter, status int, result pagination.Result[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Data: result})
}

// ParseID parses a numeric path parameter into an int64 identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("invalid id: must be a positive integer")
	}
	return id, nil
}

// DecodeJSON decodes a request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	return nil
}
