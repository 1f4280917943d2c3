package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/moderation/internal/shared/config"
)

func newJSONTestLogger(buf *bytes.Buffer, minSource slog.Level) *slog.Logger {
	base := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(newSourceHandler(base, minSource))
}

func TestSourceHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		minSource  slog.Level
		level      slog.Level
		wantSource bool
	}{
		{"info below warn threshold", slog.LevelWarn, slog.LevelInfo, false},
		{"debug below warn threshold", slog.LevelWarn, slog.LevelDebug, false},
		{"warn at threshold", slog.LevelWarn, slog.LevelWarn, true},
		{"error above threshold", slog.LevelWarn, slog.LevelError, true},
		{"debug mode covers info", slog.LevelDebug, slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newJSONTestLogger(&buf, tt.minSource).Log(context.Background(), tt.level, "msg")
			assert.Equal(t, tt.wantSource, strings.Contains(buf.String(), `"source"`), buf.String())
		})
	}
}

func TestSourceHandler_KeepsAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONTestLogger(&buf, slog.LevelWarn).With("component", "test")
	l.Warn("msg", "id", "r-1")

	var entry map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "r-1", entry["id"])
	assert.Contains(t, entry, "source")
}

func TestInterface_ReportsCallerLocation(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithSlog(newJSONTestLogger(&buf, slog.LevelDebug))

	log.Infow("hello", "key", "value")

	var entry struct {
		Msg    string `json:"msg"`
		Key    string `json:"key"`
		Source struct {
			File string `json:"file"`
		} `json:"source"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry.Msg)
	assert.Equal(t, "value", entry.Key)
	assert.Equal(t, filepath.Join("logger", "logger_test.go"), entry.Source.File)
}

func TestInterface_NamedAndFatal(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithSlog(newJSONTestLogger(&buf, slog.LevelError)).Named("worker")

	assert.PanicsWithValue(t, "fatal: stop", func() { log.Fatalw("stop") })
	assert.Contains(t, buf.String(), `"logger":"worker"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInit_JSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moderation.log")
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}, "release"))
	t.Cleanup(func() {
		require.NoError(t, Init(&config.LoggerConfig{}, "release"))
	})

	NewLogger().Debugw("hidden")
	NewLogger().Infow("written", "n", 1)
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"written"`)
}
