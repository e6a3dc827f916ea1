package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Supports environment variables with sensible defaults.
//
// Environment Variables:
// Gemini Configuration:
// - GEMINI_API_KEY: API key for the Gemini image backend (required for translate/watch)
// - GEMINI_API_URL: API endpoint URL (default: https://generativelanguage.googleapis.com/v1beta/models)
// - GEMINI_MODEL: Model name to use (default: gemini-2.5-flash-image)
// - GEMINI_TIMEOUT: Request timeout in seconds (default: 300)
//
// Pipeline Configuration:
// - PRODUCTS_DIR: Root directory holding product folders (default: ./products)
// - TRANSLATE_COOLDOWN: Seconds between backend calls (default: 10)
// - DB_PATH: SQLite run history path (default: ./data/shotloc.db)
// - CRON_EXPR: Watch mode schedule (default: "0 3 * * *")
// - LOG_LEVEL: zap level name (default: info)

type Config struct {
	Gemini   GeminiConfig
	Pipeline PipelineConfig
	LogLevel string
}

// GeminiConfig holds the configuration for the image translation backend.
type GeminiConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// PipelineConfig holds the translate pipeline configuration.
type PipelineConfig struct {
	ProductsDir string
	Cooldown    time.Duration
	DBPath      string
	CronExpr    string
}

// Option is a function type for configuring Config.
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment
// variables and options. A .env file in the working directory is loaded
// first when present.
func NewFromEnv(opts ...Option) *Config {
	_ = godotenv.Load()

	config := &Config{
		Gemini: GeminiConfig{
			APIKey:  getEnvString("GEMINI_API_KEY", ""),
			APIURL:  getEnvString("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
			Model:   getEnvString("GEMINI_MODEL", "gemini-2.5-flash-image"),
			Timeout: getEnvSeconds("GEMINI_TIMEOUT", 300),
		},
		Pipeline: PipelineConfig{
			ProductsDir: getEnvString("PRODUCTS_DIR", "./products"),
			Cooldown:    getEnvSeconds("TRANSLATE_COOLDOWN", 10),
			DBPath:      getEnvString("DB_PATH", "./data/shotloc.db"),
			CronExpr:    getEnvString("CRON_EXPR", "0 3 * * *"),
		},
		LogLevel: getEnvString("LOG_LEVEL", "info"),
	}

	for _, opt := range opts {
		opt(config)
	}
	return config
}

// RequireAPIKey validates the backend credential. Commands that never
// call the backend (plan, locales, runs) skip this check.
func (c *Config) RequireAPIKey() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvSeconds gets a duration in whole seconds from environment
// variables with default.
func getEnvSeconds(key string, defaultValue int) time.Duration {
	ret := defaultValue
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			ret = intValue
		}
	}
	return time.Duration(ret) * time.Second
}
