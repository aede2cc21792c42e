package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by ValidateClient when no credential is configured.
var ErrMissingAPIKey = errors.New("FXRATES_API_KEY is not set")

type Config struct {
	APIKey                 string        `mapstructure:"FXRATES_API_KEY"`
	BaseURL                string        `mapstructure:"FXRATES_BASE_URL"`
	HTTPTimeout            time.Duration `mapstructure:"HTTP_TIMEOUT"`
	CatalogTTL             time.Duration `mapstructure:"CATALOG_TTL"`
	HistoricalRateCacheTTL time.Duration `mapstructure:"HISTORICAL_RATE_CACHE_TTL"`
	CatalogCacheTTL        time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
	RedisAddr              string        `mapstructure:"REDIS_ADDR"`
	RedisPassword          string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                int           `mapstructure:"REDIS_DB"`
	LogLevel               string        `mapstructure:"LOG_LEVEL"`
	LogFormat              string        `mapstructure:"LOG_FORMAT"`
	StubPort               string        `mapstructure:"STUB_PORT"`
	StubAPIKey             string        `mapstructure:"STUB_API_KEY"`
}

// LoadConfig reads the configuration from the environment on top of the
// defaults below.
func LoadConfig() (*Config, error) {
	viper.SetDefault("FXRATES_API_KEY", "")
	viper.SetDefault("FXRATES_BASE_URL", "https://api.fxratesapi.com")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("CATALOG_TTL", "0s")
	viper.SetDefault("HISTORICAL_RATE_CACHE_TTL", "24h")
	viper.SetDefault("CATALOG_CACHE_TTL", "1h")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LOG_LEVEL", "error")
	viper.SetDefault("LOG_FORMAT", "text")

	viper.SetDefault("STUB_PORT", "8089")
	viper.SetDefault("STUB_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}
	cfg.APIKey = viper.GetString("FXRATES_API_KEY")
	cfg.BaseURL = viper.GetString("FXRATES_BASE_URL")

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", &cfg.HTTPTimeout},
		{"CATALOG_TTL", &cfg.CatalogTTL},
		{"HISTORICAL_RATE_CACHE_TTL", &cfg.HistoricalRateCacheTTL},
		{"CATALOG_CACHE_TTL", &cfg.CatalogCacheTTL},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(viper.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("invalid %s: must not be negative", d.key)
		}
		*d.dst = v
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.LogFormat = viper.GetString("LOG_FORMAT")

	cfg.StubPort = viper.GetString("STUB_PORT")
	cfg.StubAPIKey = viper.GetString("STUB_API_KEY")

	return cfg, nil
}

// ValidateClient checks the settings the console client cannot run without.
func (c *Config) ValidateClient() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// LogValue keeps credentials out of the logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", c.BaseURL),
		slog.Bool("api_key_set", c.APIKey != ""),
		slog.Duration("http_timeout", c.HTTPTimeout),
		slog.Duration("catalog_ttl", c.CatalogTTL),
		slog.Duration("historical_rate_cache_ttl", c.HistoricalRateCacheTTL),
		slog.Duration("catalog_cache_ttl", c.CatalogCacheTTL),
		slog.String("redis_addr", c.RedisAddr),
		slog.Int("redis_db", c.RedisDB),
		slog.String("log_level", c.LogLevel),
		slog.String("log_format", c.LogFormat),
		slog.String("stub_port", c.StubPort),
	)
}
