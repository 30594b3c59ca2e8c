package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string `env:"PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	Debug      bool   `env:"DEBUG" envDefault:"false"`

	// DatabaseType is memory, sqlite, postgres or mysql. memory keeps all
	// state in process and nothing survives a restart.
	DatabaseType   string `env:"DB_TYPE" envDefault:"memory"`
	DatabasePath   string `env:"DB_PATH" envDefault:"./mythworld.db"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"./migrations"`

	ParentPin   string `env:"PARENT_PIN" envDefault:"1080"`
	TokenSecret string `env:"TOKEN_SECRET"`

	AudioPath string `env:"AUDIO_PATH" envDefault:"./static/audio"`

	AWSRegion    string `env:"AWS_REGION" envDefault:"us-east-1"`
	SESFromEmail string `env:"SES_FROM_EMAIL"`
	SESFromName  string `env:"SES_FROM_NAME" envDefault:"My Mythology World"`
	ParentEmail  string `env:"PARENT_EMAIL"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	// RateLimitPerMinute caps API requests per client; 0 disables the limit
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"300"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// A missing .env file is normal outside development
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations env.Parse cannot express
func (c *Config) Validate() error {
	switch strings.ToLower(c.DatabaseType) {
	case "memory", "sqlite", "sqlite3":
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for DB_TYPE=%s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DatabaseType)
	}
	if c.ParentPin == "" {
		return fmt.Errorf("PARENT_PIN must not be empty")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// PersistenceEnabled reports whether progress is mirrored to a database
func (c *Config) PersistenceEnabled() bool {
	return !strings.EqualFold(c.DatabaseType, "memory") && c.DatabaseType != ""
}
