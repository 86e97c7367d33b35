package pkg

import (
	"errors"
	"log/slog"
	"os"
	"strings"
)

const (
	defaultStoragePath = "guild_data.json"
	defaultHTTPAddr    = ":8000"
)

var ErrMissingToken = errors.New("DISCORD_TOKEN is not set")

type Config struct {
	Token       string
	StoragePath string
	DatabaseURL string
	HTTPAddr    string
	SentryDSN   string
	Environment string
	LogLevel    slog.Level
}

// ConfigFromEnv reads the bot configuration from the process environment.
func ConfigFromEnv() (*Config, error) {
	return ConfigFromLookup(os.LookupEnv)
}

func ConfigFromLookup(lookup func(key string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}
	c := &Config{
		Token:       get("DISCORD_TOKEN", ""),
		StoragePath: get("ALTERRA_STORAGE_PATH", defaultStoragePath),
		DatabaseURL: get("DATABASE_URL", ""),
		HTTPAddr:    get("ALTERRA_HTTP_ADDR", defaultHTTPAddr),
		SentryDSN:   get("SENTRY_DSN", ""),
		Environment: get("ALTERRA_ENVIRONMENT", ""),
		LogLevel:    slog.LevelInfo,
	}
	if strings.EqualFold(get("LOG_LEVEL", ""), "debug") {
		c.LogLevel = slog.LevelDebug
	}
	if c.Token == "" {
		return nil, ErrMissingToken
	}
	return c, nil
}

func (c *Config) Production() bool {
	return c.Environment == "PROD"
}
