package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, time.Second, cfg.Notifications.BaseDelay())
	assert.Equal(t, 4*time.Second, cfg.Notifications.StepDelay())
	assert.True(t, cfg.Sound.Enabled)
}

func TestLoadConfigOverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
api:
  base_url: http://munchie.test:9000
notifications:
  step_delay_ms: 2500
sound:
  enabled: false
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://munchie.test:9000", cfg.API.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, cfg.Notifications.StepDelay())
	assert.Equal(t, time.Second, cfg.Notifications.BaseDelay(), "unset keys keep defaults")
	assert.False(t, cfg.Sound.Enabled)
	assert.Equal(t, 30, cfg.API.TimeoutSec)
}

func TestLoadConfigRejectsNegativeDelays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notifications:\n  base_delay_ms: -5\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.API.BaseURL = "http://saved.test"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved.test", loaded.API.BaseURL)
}
