package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "LUJISA GUADALAJARA BASKET", cfg.Team.Name)
	assert.Equal(t, "scouting", cfg.Storage.Bucket)
	assert.Equal(t, 120, cfg.Storage.DownloadTimeoutSeconds)
	assert.Equal(t, 24, cfg.Cache.ExpiryHours)
	assert.Equal(t, "./data/cache/drive", cfg.Cache.Dir)
	assert.Equal(t, "./data/jugadores.xlsx", cfg.Roster.Path)
	assert.Equal(t, 4, cfg.Probe.TimeoutSeconds)
	assert.Equal(t, 60, cfg.Probe.TTLMinutes)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CACHE_EXPIRY_HOURS", "6")
	t.Setenv("TEAM_NAME", "CB RIVAL")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STORAGE_BUCKET=club-assets\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STORAGE_BUCKET") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Cache.ExpiryHours)
	assert.Equal(t, "CB RIVAL", cfg.Team.Name)
	assert.Equal(t, "club-assets", cfg.Storage.Bucket)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CACHE_EXPIRY_HOURS", "0")
	t.Setenv("ROSTER_PATH", "./data/jugadores.ods")

	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.expiry_hours")
	assert.Contains(t, err.Error(), "roster.path")
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.Team.Name = " "
	cfg.Database.Driver = "postgres"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team.name")
	assert.Contains(t, err.Error(), "database.driver")
}
