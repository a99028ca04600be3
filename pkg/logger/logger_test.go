package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := L()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestError_BareErrorBecomesAttr(t *testing.T) {
	buf := capture(t)

	Error("failed to save selection", errors.New("redis down"))

	assert.Contains(t, buf.String(), `msg="failed to save selection"`)
	assert.Contains(t, buf.String(), `error="redis down"`)
}

func TestInfo_KeyValuePairs(t *testing.T) {
	buf := capture(t)

	Info("server starting", "address", ":8080")

	assert.Contains(t, buf.String(), "address=:8080")
}

func TestWarn_TrailingValue(t *testing.T) {
	buf := capture(t)

	Warn("odd call", 42)
	Warn("dangling", "value")

	assert.Contains(t, buf.String(), "detail=42")
	assert.Contains(t, buf.String(), "detail=value")
}
