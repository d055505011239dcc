package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "reports", cfg.App.ReportDir)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
	assert.Equal(t, 6*time.Hour, cfg.JWT.Expiry)
}

func TestLoadConfigFallbackSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// Unset JWT_SECRET falls back to the insecure built-in and flags it
	assert.True(t, cfg.JWT.UsingFallbackSecret)
	assert.Equal(t, insecureFallbackSecret, cfg.JWT.Secret)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("JWT_SECRET", "configured-secret")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "configured-secret", cfg.JWT.Secret)
	assert.False(t, cfg.JWT.UsingFallbackSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadConfigInvalidExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 6*time.Hour, cfg.JWT.Expiry)
}
