package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivenessHandler_AlwaysUp(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	h.LivenessHandler()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUp, resp.Status)
}

func TestReadinessHandler_NoCheckers(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	h.ReadinessHandler()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessHandler_AllUp(t *testing.T) {
	h := NewHandler()
	h.Register("postgres", func(ctx context.Context) error { return nil })
	h.Register("kafka", func(ctx context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	h.ReadinessHandler()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUp, resp.Status)
	assert.Len(t, resp.Checks, 2)
	assert.Equal(t, StatusUp, resp.Checks["postgres"].Status)
}

func TestReadinessHandler_OneDown(t *testing.T) {
	h := NewHandler()
	h.Register("postgres", func(ctx context.Context) error { return nil })
	h.Register("kafka", func(ctx context.Context) error { return errors.New("broker unreachable") })

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	h.ReadinessHandler()(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusDown, resp.Status)
	assert.Equal(t, StatusUp, resp.Checks["postgres"].Status)
	assert.Equal(t, StatusDown, resp.Checks["kafka"].Status)
	assert.Equal(t, "broker unreachable", resp.Checks["kafka"].Error)
}
