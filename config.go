package hapticvision

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Desarso/hapticvision/models/gemini"
	"github.com/Desarso/hapticvision/stores"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingAPIKey is returned when neither GOOGLE_API_KEY nor GEMINI_API_KEY is set.
var ErrMissingAPIKey = gemini.ErrMissingAPIKey

// Config is read once at start-up and never changes afterwards.
type Config struct {
	APIKey       string `envconfig:"GOOGLE_API_KEY"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`

	ChatModel string `envconfig:"CHAT_MODEL" default:"gemini-2.5-flash-lite"`
	ToolModel string `envconfig:"TOOL_MODEL" default:"gemini-2.5-flash"`
	WrapWidth int    `envconfig:"WRAP_WIDTH" default:"87"`

	Host      string `envconfig:"HOST" default:"0.0.0.0"`
	Port      int    `envconfig:"PORT" default:"8000"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	TraceStoreType     string        `envconfig:"TRACE_STORE_TYPE"`
	TraceStoreDSN      string        `envconfig:"TRACE_STORE_DSN" default:"traces.sqlite"`
	TraceRetention     time.Duration `envconfig:"TRACE_RETENTION" default:"168h"`
	TraceRetentionCron string        `envconfig:"TRACE_RETENTION_CRON" default:"@daily"`
}

// LoadConfig reads a .env file if one exists, then the process environment.
func LoadConfig() (*Config, error) {
	// Not present in production
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = cfg.GeminiAPIKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise only fail on the first request.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.WrapWidth <= 0 {
		return fmt.Errorf("WRAP_WIDTH must be positive, got %d", c.WrapWidth)
	}
	switch c.TraceStoreType {
	case "", "none", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported TRACE_STORE_TYPE: %s", c.TraceStoreType)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// StoreConfig translates the trace settings for stores.NewStore.
func (c *Config) StoreConfig() *stores.StoreConfig {
	return stores.NewStoreConfig(c.TraceStoreType, c.TraceStoreDSN)
}

// TracingEnabled reports whether interactions are persisted.
func (c *Config) TracingEnabled() bool {
	return c.TraceStoreType != "" && c.TraceStoreType != "none"
}

// WithChatModel sets the free-text model for the configuration
func (c *Config) WithChatModel(model string) *Config {
	c.ChatModel = model
	return c
}

// WithToolModel sets the tool-calling model for the configuration
func (c *Config) WithToolModel(model string) *Config {
	c.ToolModel = model
	return c
}

// WithSQLiteTraces enables tracing to a SQLite file
func (c *Config) WithSQLiteTraces(path string) *Config {
	c.TraceStoreType = "sqlite"
	c.TraceStoreDSN = path
	return c
}

// WithPostgresTraces enables tracing to PostgreSQL
func (c *Config) WithPostgresTraces(host, user, password, dbname string, port int) *Config {
	c.TraceStoreType = "postgres"
	c.TraceStoreDSN = stores.PostgresDSN(host, user, password, dbname, port)
	return c
}
