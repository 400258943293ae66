package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SPOONACULAR_API_KEY", "abc123")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "abc123", cfg.SpoonacularAPIKey)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("REDIS_DB", "not-a-number")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfigRejectsBadPort(t *testing.T) {
	err := ValidateConfig(&Config{
		ServerPort: "http",
		DBHost:     "localhost", DBPort: "5432", DBUser: "postgres", DBName: "forkcast",
	})
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("APP_ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("APP_ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("APP_ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
