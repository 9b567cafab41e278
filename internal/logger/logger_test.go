package logger

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	require.NoError(t, Setup(LogConfig{Level: "DEBUG", Format: "json", Output: "none"}))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Setup(LogConfig{Level: "warn", Format: "console", Output: path}))
	assert.FileExists(t, path)

	assert.Error(t, Setup(LogConfig{Level: "loud"}))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
}
