package log

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo}, // 默认值
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("ENV", "")

		cfg := NewConfigFromEnv()

		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
		assert.Equal(t, 50, cfg.MaxSizeMB)
	})

	t.Run("custom config", func(t *testing.T) {
		t.Setenv("ENV", "")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_MAX_BACKUPS", "2")

		cfg := NewConfigFromEnv()

		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, 2, cfg.MaxBackups)
	})

	t.Run("development mode", func(t *testing.T) {
		t.Setenv("ENV", "development")
		t.Setenv("LOG_LEVEL", "error") // 应该被覆盖

		cfg := NewConfigFromEnv()

		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.True(t, cfg.AddSource)
	})
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		defaultValue bool
		envValue     string
		expected     bool
	}{
		{"true value", false, "true", true},
		{"false value", true, "false", false},
		{"invalid value", true, "invalid", true},
		{"missing env", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.envValue)
			assert.Equal(t, tt.expected, getEnvBool("TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestInit_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.log")

	Init(&Config{Level: "debug", Format: "console", Output: "file:" + path, MaxSizeMB: 1})
	t.Cleanup(func() { Init(&Config{Level: "info", Format: "console", Output: "stdout"}) })

	assert.True(t, IsDebugMode())

	ctx := WithConversationID(WithRequestID(context.Background(), "req-42"), "conv-7")
	NewModuleLogger("test", "file").InfoContext(ctx, "written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "req-42")
	assert.Contains(t, string(data), "conv-7")
}

func TestLogCtxFromContext(t *testing.T) {
	assert.Empty(t, LogCtxFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "r1")
	attrs := LogCtxFromContext(ctx)
	require.Len(t, attrs, 1)
	assert.Equal(t, "request_id", attrs[0].Key)
	assert.Equal(t, "r1", RequestIDFromContext(ctx))
}

func TestNewModuleLogger(t *testing.T) {
	Init(nil)
	assert.NotNil(t, NewModuleLogger("test", "component"))
}
