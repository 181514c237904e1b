package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithZap(zap.New(core)).Named("jobs").With("component", "store")

	l.Info("job collection refreshed", "stored", 12)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		e := entries[0]
		assert.Equal(t, "jobs", e.LoggerName)
		assert.Equal(t, "job collection refreshed", e.Message)
		assert.Equal(t, map[string]any{"component": "store", "stored": int64(12)}, e.ContextMap())
	}
}

func TestEnabled(t *testing.T) {
	core, _ := observer.New(zapcore.WarnLevel)
	l := NewWithZap(zap.New(core))

	assert.False(t, l.Enabled("info"))
	assert.True(t, l.Enabled("warn"))
	assert.True(t, l.Enabled("error"))
}

func TestNewHonorsLevel(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatConsole, ""} {
		l := New("error", format)
		assert.False(t, l.Enabled("warn"), format)
		assert.True(t, l.Enabled("error"), format)
	}
}
