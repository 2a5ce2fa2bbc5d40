package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLoggerSettings_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	store := NewStore(path)

	cfg, err := store.LoadLoggerSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultLoggerSettings(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "IsFullUnityLogs=true\nToKeepAllLogFiles=true\nActivateLogger=true\n", string(data))
}

func TestLoadLoggerSettings_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "ActivateLogger=False\nIsFullUnityLogs=false\nToKeepAllLogFiles=maybe\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewStore(path).LoadLoggerSettings()
	require.NoError(t, err)
	assert.False(t, cfg.FullTrace)
	assert.True(t, cfg.KeepAllFiles)
	assert.False(t, cfg.Active)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestIsKnownKey(t *testing.T) {
	assert.True(t, IsKnownKey(KeyFullTrace))
	assert.True(t, IsKnownKey(KeyKeepAllFiles))
	assert.True(t, IsKnownKey(KeyActivateLogger))
	assert.False(t, IsKnownKey("Unknown"))
}

func TestLoggerSettingsGet(t *testing.T) {
	cfg := LoggerSettings{FullTrace: true, KeepAllFiles: false, Active: true}

	assert.True(t, cfg.Get(KeyFullTrace))
	assert.False(t, cfg.Get(KeyKeepAllFiles))
	assert.True(t, cfg.Get(KeyActivateLogger))
	assert.False(t, cfg.Get("Unknown"))
}
