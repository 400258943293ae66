package config

import (
	"os"
	"strings"
)

// Environment represents the runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current runtime environment
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch strings.ToLower(os.Getenv("APP_ENV")) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}
