package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_EmitsServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("zest-products", "info", &buf)

	l.Info("starting")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "zest-products", entry["service"])
	assert.Equal(t, "starting", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("zest-products", "warn", &buf)

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("zest-products", "chatty", &buf)

	l.Debug("dropped")
	assert.Empty(t, buf.String())

	l.Info("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", CorrelationIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}

func TestUsername_RoundTrip(t *testing.T) {
	ctx := WithUsername(context.Background(), "alice")
	assert.Equal(t, "alice", UsernameFromContext(ctx))
	assert.Empty(t, UsernameFromContext(context.Background()))
}

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("zest-products", "info", &buf)

	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	// Falls back to the default logger when none is stored.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithContext_EnrichesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("zest-products", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "abc-123")
	ctx = WithUsername(ctx, "alice")

	WithContext(ctx, l).Info("handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc-123", entry["correlation_id"])
	assert.Equal(t, "alice", entry["username"])
}
