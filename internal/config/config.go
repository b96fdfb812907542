package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR"             envDefault:":8080"`
	LogLevel      slog.Level    `env:"LOG_LEVEL"             envDefault:"info"`
	APIURL        string        `env:"TEMPLE_API_URL"        envDefault:"http://localhost:3000"`
	APITimeout    time.Duration `env:"TEMPLE_API_TIMEOUT"    envDefault:"30s"`
	ReadingTTL    time.Duration `env:"TEMPLE_READING_TTL"    envDefault:"30m"`
	RedisAddr     string        `env:"TEMPLE_REDIS_ADDR"`
	RedisPassword string        `env:"TEMPLE_REDIS_PASSWORD"`
	RedisDB       int           `env:"TEMPLE_REDIS_DB"       envDefault:"0"`
	HistoryPath   string        `env:"TEMPLE_HISTORY_PATH"   envDefault:"temple.db"`
	OTelEndpoint  string        `env:"TEMPLE_OTEL_ENDPOINT"`
}

// Load reads the configuration from the environment. An empty
// TEMPLE_REDIS_ADDR keeps readings in memory and an empty
// TEMPLE_OTEL_ENDPOINT disables tracing.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid TEMPLE_API_URL %q: want an absolute http(s) URL", c.APIURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("invalid TEMPLE_API_TIMEOUT %s: must be positive", c.APITimeout)
	}
	if c.ReadingTTL <= 0 {
		return fmt.Errorf("invalid TEMPLE_READING_TTL %s: must be positive", c.ReadingTTL)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("invalid TEMPLE_REDIS_DB %d", c.RedisDB)
	}
	return nil
}
