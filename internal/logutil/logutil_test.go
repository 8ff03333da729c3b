package logutil

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelTrace)
	require.True(t, TraceEnabled(logger))

	Trace(logger, "rule entered", "rule", "value", "pos", 5)
	out := buf.String()
	assert.Contains(t, out, "level=TRACE")
	assert.Contains(t, out, "rule=value")
	assert.Contains(t, out, "pos=5")
	assert.Contains(t, out, "source=logutil_test.go:")
}

func TestTraceDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug)
	assert.False(t, TraceEnabled(logger))
	assert.False(t, TraceEnabled(nil))

	Trace(logger, "hidden")
	Trace(nil, "hidden")
	assert.Empty(t, buf.String())

	logger.Debug("shown")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestParseLevel(t *testing.T) {
	samples := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		"":        slog.LevelInfo,
		" info ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, expected := range samples {
		level, valid := ParseLevel(name)
		assert.True(t, valid, name)
		assert.Equal(t, expected, level, name)
	}

	level, valid := ParseLevel("verbose")
	assert.False(t, valid)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
