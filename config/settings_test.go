package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "STORE", "JWT_SECRET", "TOKEN_TTL", "FRONTEND_URL",
		"ENVIRONMENT", "ENV", "GIN_MODE", "LOG_LEVEL", "REDIS_URL", "RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, StorePostgres, s.Store)
	assert.Equal(t, 2*time.Hour, s.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, s.FrontendURLs)
	assert.Equal(t, "development", s.Environment)
	assert.Equal(t, "INFO", s.LogLevel)
	assert.Equal(t, 100, s.RateLimitPerMinute)
	assert.False(t, s.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORE", "Memory")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("FRONTEND_URL", "https://pcease.in, https://www.pcease.in ,")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "20")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", s.Port)
	assert.Equal(t, StoreMemory, s.Store)
	assert.Equal(t, 30*time.Minute, s.TokenTTL)
	assert.Equal(t, []string{"https://pcease.in", "https://www.pcease.in"}, s.FrontendURLs)
	assert.True(t, s.IsProduction())
	assert.Equal(t, 20, s.RateLimitPerMinute)
}

func TestLoadEnvironmentFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", s.Environment)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"ttl":       {"TOKEN_TTL", "soon"},
		"zero ttl":  {"TOKEN_TTL", "0s"},
		"limit":     {"RATE_LIMIT_PER_MINUTE", "lots"},
		"neg limit": {"RATE_LIMIT_PER_MINUTE", "-1"},
		"store":     {"STORE", "sqlite"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	s := Settings{Store: StorePostgres}
	assert.ErrorContains(t, s.Validate(), "JWT_SECRET")

	s.JWTSecret = "x"
	assert.ErrorContains(t, s.Validate(), "DATABASE_URL")

	s.Store = StoreMemory
	assert.NoError(t, s.Validate())
}

func TestMigrationsAreIdempotent(t *testing.T) {
	require.NotEmpty(t, Migrations)
	for _, stmt := range Migrations {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}
