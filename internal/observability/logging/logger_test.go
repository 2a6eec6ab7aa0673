package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"amal-cms/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger returns a JSON logger writing into buf so assertions can
// decode what was emitted.
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLoggerHonorsLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		debug bool
	}{
		{"default is info", "", false},
		{"debug enables debug", "debug", true},
		{"unknown level falls back to info", "verbose", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			logger := NewLogger()
			require.NotNil(t, logger)
			assert.Equal(t, tt.debug, logger.Enabled(context.Background(), slog.LevelDebug))
			assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
		})
	}
}

func TestNewTextLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := NewTextLogger()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestWithRequestID(t *testing.T) {
	t.Run("id from context lands in every line", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := requestid.WithRequestID(context.Background(), "req-42")

		WithRequestID(ctx, captureLogger(&buf)).Info("publishing program")

		entry := decodeLine(t, &buf)
		assert.Equal(t, "req-42", entry["request_id"])
		assert.Equal(t, "publishing program", entry["msg"])
	})

	t.Run("no id leaves the logger unchanged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := captureLogger(&buf)

		got := WithRequestID(context.Background(), logger)
		assert.Same(t, logger, got)

		got.Info("listing faqs")
		entry := decodeLine(t, &buf)
		_, present := entry["request_id"]
		assert.False(t, present)
	})
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer

	WithFields(captureLogger(&buf), map[string]interface{}{
		"kind": "publication",
		"id":   7,
	}).Info("download counted")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "publication", entry["kind"])
	assert.Equal(t, float64(7), entry["id"])
}

func TestLoggerContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
