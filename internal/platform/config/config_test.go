package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"FITTRACK_ADDR", "JWT_SIGNING_KEY", "TOKEN_TTL", "DATABASE_URL", "REDIS_URL", "SEED_DEMO_DATA"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.Redis.URL)
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, 5*time.Second, cfg.TxTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FITTRACK_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("REDIS_POOL_SIZE", "32")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, 32, cfg.Redis.PoolSize)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "forever")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "-1h")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("malformed bool", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "")
		t.Setenv("SEED_DEMO_DATA", "maybe")
		_, err := FromEnv()
		require.Error(t, err)
	})
}
