package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 72*time.Hour, cfg.ResetTokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 10, cfg.AuthRatePerMinute)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "tea", DBPassword: "pw", DBName: "teazen", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=tea password=pw dbname=teazen port=5432 sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.DSN())
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&Config{LogLevel: "warn"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
