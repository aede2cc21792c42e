package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"t-convert/internals/adapter/cache"
	"t-convert/internals/adapter/fxratesapi"
	"t-convert/internals/config"
	"t-convert/internals/console"
	"t-convert/internals/logging"
	"t-convert/internals/repository"
	"t-convert/internals/service"

	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("T-Convert stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if _, err := logging.Setup(os.Stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Prefix: "tconvert"}); err != nil {
		return err
	}
	slog.Debug("Config loaded", "config", cfg)
	if err := cfg.ValidateClient(); err != nil {
		return err
	}

	ctx := context.Background()

	var rateCache cache.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			slog.Warn("Redis unavailable, continuing without cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			rateCache = cache.NewRedisCache(rdb, cfg.CatalogCacheTTL, cfg.HistoricalRateCacheTTL)
		}
	}

	apiClient := fxratesapi.NewClient(cfg.BaseURL, cfg.APIKey, &http.Client{Timeout: cfg.HTTPTimeout})
	catalog := repository.NewCurrencyCatalog(apiClient, rateCache, cfg.CatalogTTL)
	rateRepo := repository.NewCachedRateRepository(apiClient, rateCache)

	terminal := console.NewTerminal(os.Stdin, os.Stdout)
	conversionService := service.NewConversionService(catalog, rateRepo, service.WithNotifier(terminal.Notice))
	loop := console.NewInteractionLoop(terminal, catalog, conversionService)

	return loop.Run(ctx)
}
