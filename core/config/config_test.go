package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Minute, cfg.Fetcher.CacheTTL)
	assert.Equal(t, "none", cfg.Fetcher.Persist)
	assert.Equal(t, []string{"D1", "D2"}, cfg.Esports.GrumbleDivisions)
	assert.Len(t, cfg.Esports.RitoLeagues, 4)
	assert.True(t, cfg.Esports.StatsEnabled)
	assert.Equal(t, "@every 1m", cfg.Esports.PollSchedule)
	assert.Equal(t, "log", cfg.Announce.Backend)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FETCHER_CACHE_TTL", "30s")
	t.Setenv("ESPORTS_GRUMBLE_DIVISIONS", "D1")
	t.Setenv("ESPORTS_STATS_ENABLED", "false")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Fetcher.CacheTTL)
	assert.Equal(t, []string{"D1"}, cfg.Esports.GrumbleDivisions)
	assert.False(t, cfg.Esports.StatsEnabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ANNOUNCE_BACKEND=redis\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ANNOUNCE_BACKEND") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Announce.Backend)
}
