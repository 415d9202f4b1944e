package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "svgpie.log")
	logger, cleanup, err := Setup(path, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Info("hello", "component", "test")
	logger.Debug("hidden")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestSetup_NoFile(t *testing.T) {
	logger, cleanup, err := Setup("", slog.LevelInfo, "text")
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, logger)
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, slog.LevelInfo, "text")
	require.NoError(t, err)
	slog.New(h).Info("ready", "port", 8080)
	assert.Contains(t, buf.String(), "msg=ready port=8080")

	_, err = NewHandler(&buf, slog.LevelInfo, "xml")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}
