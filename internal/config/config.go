// Package config parses service configuration from FLATHIVE_-prefixed
// environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Assistant providers.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderStatic = "static"
)

// Config holds the flathive service configuration.
// Example: FLATHIVE_HTTP_PORT=8080 FLATHIVE_STORE_DRIVER=sqlite
type Config struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// StoreDriver selects persistence: postgres, sqlite, or memory.
	// "auto" picks postgres when a DSN is set, sqlite otherwise.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"auto"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"flathive.db"`

	// Seed loads the demo household fixtures into the memory store on start.
	Seed bool `envconfig:"SEED" default:"false"`

	JWTSecret    string `envconfig:"JWT_SECRET" default:""`
	SessionHours int    `envconfig:"SESSION_HOURS" default:"24"`

	// AssistantProvider selects the completion backend: ollama, gemini, or
	// static.
	AssistantProvider string `envconfig:"ASSISTANT_PROVIDER" default:"static"`
	AssistantModel    string `envconfig:"ASSISTANT_MODEL" default:""`
	OllamaURL         string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	GeminiAPIKey      string `envconfig:"GEMINI_API_KEY" default:""`

	HealthIntervalSeconds int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"5"`
}

// ResolveDefaults derives the store driver when set to "auto" and rejects
// unknown driver and provider values.
func (c *Config) ResolveDefaults() error {
	if c.StoreDriver == "" || c.StoreDriver == "auto" {
		if c.PostgresDSN != "" {
			c.StoreDriver = DriverPostgres
		} else {
			c.StoreDriver = DriverSQLite
		}
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires POSTGRES_DSN")
		}
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	switch c.AssistantProvider {
	case ProviderOllama, ProviderStatic:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("ASSISTANT_PROVIDER=gemini requires GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unsupported ASSISTANT_PROVIDER: %s", c.AssistantProvider)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// New parses FLATHIVE_-prefixed environment variables into a Config.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("FLATHIVE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("store_driver", cfg.StoreDriver).
		Str("assistant_provider", cfg.AssistantProvider).
		Int("port", cfg.HTTPPort).
		Bool("seed", cfg.Seed).
		Msg("configuration loaded")

	return &cfg, nil
}
