package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krcglobal/gbms/internal/errors"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(Config{Level: level, Format: format, Output: buf, ServiceName: "gbms-test"}), buf
}

func TestNew_JSONIncludesService(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	logger.Info("hello", "path", "/projects")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "gbms-test", entry["service"])
	assert.Equal(t, "/projects", entry["path"])
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.False(t, logger.Enabled(context.Background(), LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestWithError_GBMSError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	err := errors.Wrap(errors.ErrCodeAPITransport, "request failed", fmt.Errorf("connection refused"))
	logger.WithError(fmt.Errorf("list projects: %w", err)).Error("boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "API-002", entry["error_code"])
	assert.Equal(t, "request failed", entry["error"])
	assert.Equal(t, "connection refused", entry["cause"])
}

func TestWithError_PlainError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	logger.WithError(fmt.Errorf("plain")).Warn("masked")

	assert.Contains(t, buf.String(), `"error":"plain"`)
	assert.Same(t, logger, logger.WithError(nil))
}

func TestLogError_NilIsNoop(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	logger.LogError(context.Background(), "ignored", nil)

	assert.Empty(t, buf.String())
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))

	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("console"))
	assert.Equal(t, "json", FormatJSON.String())
}

func TestDefaultLogger(t *testing.T) {
	custom := Discard()
	SetDefaultLogger(custom)
	t.Cleanup(func() { SetDefaultLogger(nil) })

	assert.Same(t, custom, DefaultLogger())
	assert.Same(t, custom, OrDefault(nil))

	other := Discard()
	assert.Same(t, other, OrDefault(other))
}

func TestWithGroup(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.WithGroup("http").Info("request", "status", 200)

	assert.True(t, strings.Contains(buf.String(), "http.status=200"))
}
