package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	validEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "room_redesign.db", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "gemini-2.0-flash", cfg.IdentifyModel)
	assert.Equal(t, []string{"http://localhost:9002"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	validEnv(t)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "no api key", env: map[string]string{"GEMINI_API_KEY": "", "JWT_SECRET": "s"}},
		{name: "no jwt secret", env: map[string]string{"GEMINI_API_KEY": "k", "JWT_SECRET": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := Config{GeminiAPIKey: "k", JWTSecret: "s", TokenTTL: time.Hour, LogFormat: "text"}
	require.NoError(t, base.Validate())

	badFormat := base
	badFormat.LogFormat = "xml"
	assert.Error(t, badFormat.Validate())

	badTTL := base
	badTTL.TokenTTL = 0
	assert.Error(t, badTTL.Validate())

	badZone := base
	badZone.Timezone = "Not/AZone"
	assert.Error(t, badZone.Validate())
}

func TestLocation_LocalByDefault(t *testing.T) {
	t.Parallel()

	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
