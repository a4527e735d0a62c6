package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", " File ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATA_DIR", "/var/lib/menupage")
	t.Setenv("AUTH_RATE_LIMIT", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "/var/lib/menupage", cfg.Storage.DataDir)
	assert.Equal(t, 3, cfg.Redis.AuthRateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.UsesDefaultSecret())
}

func validConfig() *Config {
	return &Config{
		Env:     "development",
		Storage: StorageConfig{Driver: "file", DataDir: "data"},
		Auth:    AuthConfig{JWTSecret: "s3cret", TokenTTL: time.Hour},
	}
}

func TestValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("placeholder secret allowed outside production", func(t *testing.T) {
		c := validConfig()
		c.Auth.JWTSecret = DefaultJWTSecret
		assert.NoError(t, c.Validate())
		assert.True(t, c.UsesDefaultSecret())
	})

	t.Run("placeholder secret rejected in production", func(t *testing.T) {
		c := validConfig()
		c.Env = "Production"
		c.Auth.JWTSecret = DefaultJWTSecret
		assert.ErrorIs(t, c.Validate(), ErrInsecureSecret)
	})

	t.Run("empty secret", func(t *testing.T) {
		c := validConfig()
		c.Auth.JWTSecret = "  "
		assert.ErrorIs(t, c.Validate(), ErrInsecureSecret)
	})

	t.Run("unknown driver", func(t *testing.T) {
		c := validConfig()
		c.Storage.Driver = "mongo"
		assert.Error(t, c.Validate())
	})

	t.Run("postgres needs url", func(t *testing.T) {
		c := validConfig()
		c.Storage.Driver = "postgres"
		assert.Error(t, c.Validate())
		c.Database.URL = "postgres://localhost/menupage"
		assert.NoError(t, c.Validate())
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		c := validConfig()
		c.Auth.TokenTTL = 0
		assert.Error(t, c.Validate())
	})
}
