package logx

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withCapturedLogger swaps in a buffer-backed logger for the duration of
// fn, restoring the previous one afterward so tests don't leak state.
func withCapturedLogger(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	prev := get()
	buf := &bytes.Buffer{}
	SetDefault(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { SetDefault(prev) })
	return buf
}

func TestWarn_WritesMessageAndArgs(t *testing.T) {
	buf := withCapturedLogger(t, slog.LevelDebug)
	Warn("ambiguous reference", "name", "Foo", "unit", "a.go")

	out := buf.String()
	assert.True(t, strings.Contains(out, "ambiguous reference"))
	assert.True(t, strings.Contains(out, "name=Foo"))
	assert.True(t, strings.Contains(out, "unit=a.go"))
	assert.True(t, strings.Contains(out, "level=WARN"))
}

func TestDebug_WritesBelowWarnSeverity(t *testing.T) {
	buf := withCapturedLogger(t, slog.LevelDebug)
	Debug("type inference depth cap reached", "unit", "b.go")

	out := buf.String()
	assert.True(t, strings.Contains(out, "level=DEBUG"))
	assert.True(t, strings.Contains(out, "type inference depth cap reached"))
}

func TestDebug_SuppressedWhenHandlerLevelAboveDebug(t *testing.T) {
	buf := withCapturedLogger(t, slog.LevelWarn)
	Debug("should not appear")
	assert.Equal(t, "", buf.String())
}

func TestError_WritesErrorLevel(t *testing.T) {
	buf := withCapturedLogger(t, slog.LevelDebug)
	Error("malformed input", "path", "x.rs")

	out := buf.String()
	assert.True(t, strings.Contains(out, "level=ERROR"))
	assert.True(t, strings.Contains(out, "malformed input"))
}

func TestSetDefault_SwapIsVisibleToSubsequentCalls(t *testing.T) {
	firstBuf := withCapturedLogger(t, slog.LevelDebug)
	Warn("first")
	assert.True(t, strings.Contains(firstBuf.String(), "first"))

	secondBuf := &bytes.Buffer{}
	SetDefault(slog.New(slog.NewTextHandler(secondBuf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Warn("second")

	assert.False(t, strings.Contains(firstBuf.String(), "second"))
	assert.True(t, strings.Contains(secondBuf.String(), "second"))
}
