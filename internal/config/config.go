package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the storefront client configuration.
// Environment variables are parsed from the KISSANBANDI_ prefix.
type Config struct {
	// Backend endpoint, including the /api prefix.
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:5000/api"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"true"`

	// Durable credential scope: Redis when RedisAddr is set, otherwise a file.
	CredentialsFile string        `envconfig:"CREDENTIALS_FILE" default:""`
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix     string        `envconfig:"REDIS_PREFIX" default:"kissanbandi:"`
	RedisTokenTTL   time.Duration `envconfig:"REDIS_TOKEN_TTL" default:"0s"`

	// Prometheus listener; empty disables it.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`
}

// Load reads configuration from the environment and resolves defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("KISSANBANDI", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults validates BaseURL and derives CredentialsFile when empty.
func (c *Config) ResolveDefaults() error {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BASE_URL: %q", c.BaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0")
	}
	if c.CredentialsFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve credentials file: %w", err)
		}
		c.CredentialsFile = filepath.Join(home, ".kissanbandi", "credentials.json")
	}
	return nil
}

// UseRedis reports whether the durable scope lives in Redis.
func (c *Config) UseRedis() bool { return c.RedisAddr != "" }
