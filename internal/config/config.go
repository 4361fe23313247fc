package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnv loads environment variables from a .env file if one is present.
// Missing files are not fatal: production deployments inject real env vars.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on process environment")
	}
}

// GetEnv retrieves an environment variable with a fallback.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
