package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"banket/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileOutputWritesJSONWithAppFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, closer, err := New(
		config.LoggingConfig{Output: "file", FilePath: path},
		config.AppConfig{Name: "banket-admin", Environment: "test", Version: "1.2.3"},
	)
	require.NoError(t, err)

	logger.Info().Msg("started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "banket-admin", entry["app"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "started", entry["message"])
}

func TestNewLevelApplied(t *testing.T) {
	logger, _, err := New(config.LoggingConfig{Level: "debug"}, config.AppConfig{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	logger, _, err = New(config.LoggingConfig{}, config.AppConfig{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "loud"}, config.AppConfig{})
	assert.Error(t, err)
}

func TestNewRejectsUnknownOutput(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Output: "syslog"}, config.AppConfig{})
	assert.Error(t, err)
}

func TestNewFileOutputRequiresPath(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Output: "file"}, config.AppConfig{})
	assert.Error(t, err)
}
