// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server settings, populated from environment variables.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"8080"`

	// DBPath is the SQLite database file. Parent directories are created
	// on startup.
	DBPath string `env:"DB_PATH" envDefault:"./data/homehero.db"`

	// JWTSecret signs session tokens. Required.
	JWTSecret string `env:"JWT_SECRET,notEmpty"`

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// OpenRouterAPIKey enables LLM-based chore impact scoring. When
	// empty, every chore gets the fixed fallback impact.
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`

	// ImpactTimeout bounds each impact estimation request so chore
	// creation never blocks on a slow upstream.
	ImpactTimeout time.Duration `env:"IMPACT_TIMEOUT" envDefault:"5s"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
