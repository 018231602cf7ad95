package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.True(t, cfg.Directory.CacheEnabled)
	assert.Equal(t, time.Minute, cfg.Directory.CacheTTL)
	assert.Equal(t, 20, cfg.Directory.DefaultPageSize)
	assert.Equal(t, 100, cfg.Directory.MaxPageSize)
	assert.False(t, cfg.Exports.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Exports.SignedURLTTL)
	assert.Empty(t, cfg.Log.File)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DIRECTORY_CACHE_TTL", "5m")
	t.Setenv("EXPORTS_CLEANUP_INTERVAL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_FILE", "/tmp/community.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.Directory.CacheTTL)
	assert.Equal(t, time.Hour, cfg.Exports.CleanupInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "/tmp/community.log", cfg.Log.File)
}
