// Package config provides configuration for the time capsule service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database. Empty selects the in-memory store; any other value is a
	// SQLite DSN.
	DatabaseURL string

	// Model API settings
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LLMBaseURL:  getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:   getEnv("OPENAI_API_KEY", ""),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o"),
		LLMTimeout:  time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
