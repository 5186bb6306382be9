package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionedConfig_LegacyConfig(t *testing.T) {
	// Legacy config without version field
	legacy := `
lang = "my"
toast_timeout_ms = 9000
log_file = "/tmp/legacy.log"
`

	cfg, err := ParseVersionedConfig([]byte(legacy))
	require.NoError(t, err)

	assert.Equal(t, "my", cfg.Language)
	assert.Equal(t, 9000, cfg.Notifications.DefaultDurationMs)
	assert.Equal(t, "/tmp/legacy.log", cfg.Log.File)
	assert.Equal(t, CurrentVersion, cfg.Version)
}

func TestParseVersionedConfig_LegacyNewKeysWin(t *testing.T) {
	legacy := `
lang = "my"
language = "en"
toast_timeout_ms = 9000

[notifications]
default_duration_ms = 4000
`

	cfg, err := ParseVersionedConfig([]byte(legacy))
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 4000, cfg.Notifications.DefaultDurationMs)
}

func TestParseVersionedConfig_Version1(t *testing.T) {
	v1 := `
version = 1
language = "my"

[notifications]
max_visible = 1
`

	cfg, err := ParseVersionedConfig([]byte(v1))
	require.NoError(t, err)
	assert.Equal(t, "my", cfg.Language)
	assert.Equal(t, 1, cfg.Notifications.MaxVisible)
	assert.Equal(t, DefaultDurationMs, cfg.Notifications.DefaultDurationMs)
}

func TestParseVersionedConfig_FutureVersion(t *testing.T) {
	_, err := ParseVersionedConfig([]byte("version = 999\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestParseVersionedConfig_Empty(t *testing.T) {
	cfg, err := ParseVersionedConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Notifications, cfg.Notifications)
}

func TestParseVersionedConfig_BadTableShape(t *testing.T) {
	_, err := ParseVersionedConfig([]byte("toast_timeout_ms = 1\nnotifications = 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 0 -> 1 failed")
}

func TestApplyMigrations_NoPath(t *testing.T) {
	_, err := ApplyMigrations(map[string]any{}, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no migration path")
}

func TestMarshalVersionedConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = 0

	data, err := MarshalVersionedConfig(cfg)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, toml.Unmarshal(data, &raw))
	assert.EqualValues(t, CurrentVersion, raw["version"])
	assert.Equal(t, 0, cfg.Version, "input is not mutated")

	notifications, ok := raw["notifications"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, DefaultDurationMs, notifications["default_duration_ms"])
}
