package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shiva-srivastav/zest-products/pkg/errors"
	"github.com/shiva-srivastav/zest-products/pkg/pagination"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"name": "Widget"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeEnvelope(t, rec)
	assert.Nil(t, resp.Error)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Widget", data["name"])
}

func TestWriteJSON_NilData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil)

	WriteError(rec, req, apperrors.NotFound("product", int64(99)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "product with id 99")
}

func TestWriteError_WrappedAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)

	wrapped := apperrors.Wrap(apperrors.DuplicateUsername("alice"), "register")
	WriteError(rec, req, wrapped)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_USERNAME", resp.Error.Code)
}

func TestWriteError_UnknownErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

	WriteError(rec, req, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection refused")
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)

	WriteValidationError(rec, req, map[string]string{
		"product_name": "is required",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.Equal(t, "is required", resp.Error.Fields["product_name"])
}

func TestWritePaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	result := pagination.NewResult([]string{"a", "b"}, 12, pagination.Params{Page: 1, PerPage: 2})

	WritePaginated(rec, http.StatusOK, result)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(12), data["total_count"])
	assert.Equal(t, float64(6), data["total_pages"])
	assert.Equal(t, true, data["has_next"])
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-5", "1.5"} {
		_, err := ParseID(raw)
		assert.Error(t, err, "ParseID(%q) should fail", raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Widget"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Widget", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{broken`))
	err := DecodeJSON(req, &dst)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
