package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that the loaded configuration is usable.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("server port must be numeric, got %q", cfg.ServerPort)
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return fmt.Errorf("database host, port, user and name are required")
	}
	if cfg.JWTSecret == "" && GetEnvironment() == Production {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if cfg.SpoonacularAPIKey == "" && GetEnvironment() == Production {
		return fmt.Errorf("SPOONACULAR_API_KEY is required in production")
	}
	return nil
}
