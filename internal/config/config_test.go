package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-catalog-admin/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_URL", "")
	t.Setenv("TOKEN_REFRESH_THRESHOLD", "")
	t.Setenv("SESSION_STORE", "")

	c := config.New()
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "http://localhost:8000", c.GetAPIURL())
	require.Equal(t, 5*time.Minute, c.GetRefreshThreshold())
	require.Equal(t, config.SessionStoreMemory, c.GetSessionStore())
	require.NoError(t, config.Validate(c))
}

func TestConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("API_URL", "https://api.example.com/")
	t.Setenv("API_TIMEOUT", "10s")
	t.Setenv("JWT_VERIFY_SIGNATURE", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	c := config.New()
	require.Equal(t, ":9000", c.GetPort())
	require.Equal(t, "https://api.example.com", c.GetAPIURL())
	require.Equal(t, 10*time.Second, c.GetAPITimeout())
	require.True(t, c.GetVerifySignature())
	require.Equal(t, 3, c.GetRedisDB())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example.com"))
	require.False(t, c.GetAllowedOrigins().IsAllowedOrigin("https://c.example.com"))
}

func TestValidate(t *testing.T) {
	t.Run("bad api url", func(t *testing.T) {
		t.Setenv("API_URL", "not a url")
		require.Error(t, config.Validate(config.New()))
	})

	t.Run("unknown session store", func(t *testing.T) {
		t.Setenv("SESSION_STORE", "memcached")
		require.Error(t, config.Validate(config.New()))
	})
}
