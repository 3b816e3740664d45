package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/sememe-cli/internal/config"
)

func TestNew_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := New(config.LogConfig{Level: "info", Format: "json"})
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, config.LogConfig{Level: tt.level, Format: "text"})

			logger.Log(context.TODO(), tt.want, "should appear")
			assert.NotZero(t, buf.Len())

			buf.Reset()
			logger.Log(context.TODO(), tt.want-1, "should be suppressed")
			assert.Zero(t, buf.Len(), buf.String())
		})
	}
}

func TestNewWithWriter_TextAddsSourceJSONDoesNot(t *testing.T) {
	var textBuf, jsonBuf bytes.Buffer

	NewWithWriter(&textBuf, config.LogConfig{Level: "info", Format: "text"}).Info("hello")
	NewWithWriter(&jsonBuf, config.LogConfig{Level: "info", Format: "JSON"}).Info("hello", slog.String("sense", "3"))

	assert.Contains(t, textBuf.String(), "source=")

	var m map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &m))
	assert.NotContains(t, m, "source")
	assert.Equal(t, "3", m["sense"])
}
