package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := slog.New(NewHandler(&out, &errOut, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("item registered", "id", "abc")
	logger.Error("save failed", "error", "disk full")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "item registered")
	assert.Contains(t, out.String(), "id=abc")
	assert.NotContains(t, out.String(), "save failed")
	assert.Contains(t, errOut.String(), "save failed")
}

func TestWithAttrsKeepsRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := slog.New(NewHandler(&out, &errOut, slog.LevelDebug)).With("component", "api")

	logger.Debug("visible")
	logger.Error("boom")

	assert.Contains(t, out.String(), "component=api")
	assert.Contains(t, errOut.String(), "component=api")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}
