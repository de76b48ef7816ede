package tagwalk_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/stretchr/testify/assert"
)

// memoryLogger records "level message" lines.
type memoryLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *memoryLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, level+" "+msg)
}

func (l *memoryLogger) Debug(msg string, _ map[string]interface{}) { l.add("debug", msg) }
func (l *memoryLogger) Info(msg string, _ map[string]interface{})  { l.add("info", msg) }
func (l *memoryLogger) Warn(msg string, _ map[string]interface{})  { l.add("warn", msg) }
func (l *memoryLogger) Error(msg string, _ map[string]interface{}) { l.add("error", msg) }

func (l *memoryLogger) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.entries...)
}

func TestSlogLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := tagwalk.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Error("MediasClient.Get unexpected status code", map[string]interface{}{
		"code":    500,
		"message": "boom",
	})
	logger.Debug("HTTP Request", nil)

	output := buf.String()
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, `msg="MediasClient.Get unexpected status code"`)
	assert.Contains(t, output, "code=500")
	assert.Contains(t, output, "message=boom")
	assert.Contains(t, output, "level=DEBUG")
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := tagwalk.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	logger.Info("ignored", nil)
	logger.Warn("kept", nil)

	assert.NotContains(t, buf.String(), "ignored")
	assert.Contains(t, buf.String(), "kept")
}

func TestNoopLogger(t *testing.T) {
	t.Parallel()

	var logger tagwalk.Logger = tagwalk.NoopLogger{}

	assert.NotPanics(t, func() {
		logger.Debug("debug", nil)
		logger.Info("info", nil)
		logger.Warn("warn", nil)
		logger.Error("error", map[string]interface{}{"code": 500})
	})
}
