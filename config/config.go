package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// External recipe search provider
	SpoonacularAPIKey string
	SpoonacularAPIURL string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to a Docker-style secrets directory in
// development.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	secrets := map[string]string{}
	if GetEnvironment() == Development {
		secrets = loadSecretsDir()
	}

	get := func(envKey, secretKey, fallback string) string {
		if v := os.Getenv(envKey); v != "" {
			return v
		}
		if v, ok := secrets[secretKey]; ok && v != "" {
			return v
		}
		return fallback
	}

	cfg.ServerPort = get("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = get("SERVER_HOST", "server_host", "0.0.0.0")
	cfg.DBHost = get("DB_HOST", "db_host", "localhost")
	cfg.DBPort = get("DB_PORT", "db_port", "5432")
	cfg.DBUser = get("DB_USER", "db_user", "postgres")
	cfg.DBPassword = get("DB_PASSWORD", "db_password", "")
	cfg.DBName = get("DB_NAME", "db_name", "forkcast")
	cfg.DBSSLMode = get("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.RedisHost = get("REDIS_HOST", "redis_host", "localhost")
	cfg.RedisPort = get("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = get("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = get("REDIS_URL", "redis_url", "")
	cfg.JWTSecret = get("JWT_SECRET", "jwt_secret", "")
	cfg.SpoonacularAPIKey = get("SPOONACULAR_API_KEY", "spoonacular_api_key", "")
	cfg.SpoonacularAPIURL = get("SPOONACULAR_API_URL", "spoonacular_api_url", "")

	if dbStr := get("REDIS_DB", "redis_db", "0"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadSecretsDir reads Docker secrets from SECRETS_DIR (default
// /run/secrets). Missing files are not errors; env vars win anyway.
func loadSecretsDir() map[string]string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}

	secrets := make(map[string]string)
	entries, err := os.ReadDir(secretsDir)
	if err != nil {
		return secrets
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(secretsDir, entry.Name()))
		if err != nil {
			continue
		}
		secrets[entry.Name()] = strings.TrimSpace(string(content))
	}
	return secrets
}
