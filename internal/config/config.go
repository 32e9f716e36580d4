// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Database
	DatabaseURL string // PostgreSQL connection string (optional, uses in-memory if not set)

	// Ollama (local language model)
	OllamaBaseURL        string
	OllamaModel          string
	OllamaTimeoutSeconds int

	// Risk assessment
	RiskKeywords []string // crisis phrases, any match escalates to high

	// HTTP
	AllowedOrigins []string
	RateLimitRPM   int

	// Observability
	OTLPEndpoint string // OTLP gRPC endpoint; empty disables tracing
}

// Defaults
const (
	DefaultPort           = "8080"
	DefaultEnv            = "development"
	DefaultLogLevel       = "info"
	DefaultOllamaBaseURL  = "http://localhost:11434"
	DefaultOllamaModel    = "llama3.1"
	DefaultOllamaTimeout  = 60
	DefaultRateLimitRPM   = 120
	DefaultAllowedOrigins = "http://localhost:5173,http://localhost:3000"
)

// Load reads configuration from environment variables.
// It loads .env file if present (for local development).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", DefaultPort),
		Env:                  getEnv("ENV", DefaultEnv),
		LogLevel:             getEnv("LOG_LEVEL", DefaultLogLevel),
		DatabaseURL:          os.Getenv("DATABASE_URL"), // Optional, uses in-memory if not set
		OllamaBaseURL:        strings.TrimSuffix(getEnv("OLLAMA_BASE_URL", DefaultOllamaBaseURL), "/"),
		OllamaModel:          getEnv("OLLAMA_MODEL", DefaultOllamaModel),
		OllamaTimeoutSeconds: getEnvInt("OLLAMA_TIMEOUT_SECONDS", DefaultOllamaTimeout),
		RiskKeywords:         getEnvList("RISK_KEYWORDS", nil),
		AllowedOrigins:       getEnvList("ALLOWED_ORIGINS", splitCSV(DefaultAllowedOrigins)),
		RateLimitRPM:         getEnvInt("RATE_LIMIT_RPM", DefaultRateLimitRPM),
		OTLPEndpoint:         os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.OllamaBaseURL == "" {
		return fmt.Errorf("OLLAMA_BASE_URL is required")
	}
	if !strings.HasPrefix(c.OllamaBaseURL, "http://") && !strings.HasPrefix(c.OllamaBaseURL, "https://") {
		return fmt.Errorf("OLLAMA_BASE_URL must be an http(s) URL, got %q", c.OllamaBaseURL)
	}
	if c.OllamaTimeoutSeconds <= 0 {
		return fmt.Errorf("OLLAMA_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvList reads a comma-separated env var. Empty entries are dropped and
// surrounding whitespace is trimmed.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return splitCSV(value)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
