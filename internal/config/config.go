package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"docugen/internal/logger"
)

type Config struct {
	// OpenAI Configuration
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAITemperature float32

	// Storage Configuration
	StorageBackend string // "file" or "redis"
	DataDir        string
	RedisURL       string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", ""),
		OpenAITemperature: parseFloatEnv("OPENAI_TEMPERATURE", 0.3),
		StorageBackend:    getEnv("DOCUGEN_STORAGE", "file"),
		DataDir:           getEnv("DOCUGEN_DATA_DIR", defaultDataDir()),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:         getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case "file", "redis":
	default:
		return fmt.Errorf("DOCUGEN_STORAGE must be \"file\" or \"redis\", got %q", c.StorageBackend)
	}
	// The API key is only required for generation; read-only commands
	// (list, show, render, export) must work without it, so it is
	// checked where the gateway is built.
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docugen"
	}
	return filepath.Join(home, ".docugen")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseFloatEnv(key string, defaultValue float32) float32 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return defaultValue
	}
	return float32(f)
}
