package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Groq     GroqConfig
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8000"`
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"0s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// GroqConfig describes the upstream vision model. An empty APIKey puts the
// service in fallback-only mode.
type GroqConfig struct {
	APIKey      string  `envconfig:"GROQ_API_KEY"`
	Model       string  `envconfig:"GROQ_MODEL" default:"llama-3.2-90b-vision-preview"`
	APIEndpoint string  `envconfig:"GROQ_ENDPOINT" default:"https://api.groq.com/openai/v1"`
	Temperature float64 `envconfig:"GROQ_TEMPERATURE" default:"0.3"`
	MaxTokens   int64   `envconfig:"GROQ_MAX_TOKENS" default:"512"`
}

// Configured reports whether an upstream credential is present.
func (c GroqConfig) Configured() bool {
	return c.APIKey != ""
}

// LoadConfig reads .env (if present) and then the process environment.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully", "model", cfg.Groq.Model, "groq_configured", cfg.Groq.Configured())
	return &cfg, nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
