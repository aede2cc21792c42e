package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"t-convert/internals/core/domain"

	"github.com/redis/go-redis/v9"
)

// Cache keeps data that is safe to reuse between menu cycles and program runs:
// the currency list snapshot and rates for dates that are already over.
type Cache interface {
	SetCurrencies(currencies []domain.CurrencyInfo, fetchedAt time.Time)
	GetCurrencies() ([]domain.CurrencyInfo, time.Time, bool)
	SetHistoricalRate(date string, from, to domain.Currency, rate HistoricalRate)
	GetHistoricalRate(date string, from, to domain.Currency) (HistoricalRate, bool)
}

// HistoricalRate is a rate for a past date together with the time it was
// fetched from the service.
type HistoricalRate struct {
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetchedAt"`
}

const (
	catalogKey      = "tconvert:catalog"
	catalogLockKey  = "tconvert:catalog_write_lock"
	catalogLockTTL  = 10 * time.Second
	catalogLockWait = 2 * time.Second
	opTimeout       = 3 * time.Second
)

type redisCache struct {
	client            *redis.Client
	catalogTTL        time.Duration
	historicalRateTTL time.Duration
}

func NewRedisCache(client *redis.Client, catalogTTL, historicalRateTTL time.Duration) Cache {
	return &redisCache{
		client:            client,
		catalogTTL:        catalogTTL,
		historicalRateTTL: historicalRateTTL,
	}
}

func historicalRateKey(date string, from, to domain.Currency) string {
	return fmt.Sprintf("tconvert:rate:%s:%s:%s", date, from, to)
}

type cachedCatalog struct {
	Currencies []domain.CurrencyInfo `json:"currencies"`
	FetchedAt  time.Time             `json:"fetchedAt"`
}

func (rc *redisCache) SetCurrencies(currencies []domain.CurrencyInfo, fetchedAt time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), catalogLockWait+opTimeout)
	defer cancel()

	lock := NewRedisLock(rc.client, catalogLockKey, catalogLockTTL)
	acquired, err := lock.Acquire(ctx, catalogLockWait)
	if err != nil || !acquired {
		slog.Warn("Could not acquire lock for catalog snapshot", "error", err)
		return
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			slog.Warn("Error releasing catalog lock", "error", err)
		}
	}()

	data, err := json.Marshal(cachedCatalog{Currencies: currencies, FetchedAt: fetchedAt})
	if err != nil {
		slog.Warn("Error marshaling catalog snapshot", "error", err)
		return
	}

	if err := rc.client.Set(ctx, catalogKey, data, rc.catalogTTL).Err(); err != nil {
		slog.Warn("Error caching catalog snapshot", "error", err)
		return
	}
	slog.Debug("Cached catalog snapshot", "count", len(currencies), "ttl", rc.catalogTTL)
}

func (rc *redisCache) GetCurrencies() ([]domain.CurrencyInfo, time.Time, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := rc.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Error reading catalog snapshot", "error", err)
		}
		return nil, time.Time{}, false
	}

	var data cachedCatalog
	if err := json.Unmarshal(raw, &data); err != nil {
		slog.Warn("Error unmarshaling catalog snapshot", "error", err)
		return nil, time.Time{}, false
	}
	if len(data.Currencies) == 0 {
		return nil, time.Time{}, false
	}

	slog.Debug("Catalog snapshot hit", "count", len(data.Currencies))
	return data.Currencies, data.FetchedAt, true
}

func (rc *redisCache) SetHistoricalRate(date string, from, to domain.Currency, rate HistoricalRate) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	key := historicalRateKey(date, from, to)
	data, err := json.Marshal(rate)
	if err != nil {
		slog.Warn("Error marshaling historical rate", "key", key, "error", err)
		return
	}
	if err := rc.client.Set(ctx, key, data, rc.historicalRateTTL).Err(); err != nil {
		slog.Warn("Error caching historical rate", "key", key, "error", err)
		return
	}
	slog.Debug("Cached historical rate", "key", key, "ttl", rc.historicalRateTTL)
}

func (rc *redisCache) GetHistoricalRate(date string, from, to domain.Currency) (HistoricalRate, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	key := historicalRateKey(date, from, to)
	raw, err := rc.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			slog.Debug("Cache miss", "key", key)
		} else {
			slog.Warn("Error reading historical rate", "key", key, "error", err)
		}
		return HistoricalRate{}, false
	}

	var rate HistoricalRate
	if err := json.Unmarshal(raw, &rate); err != nil {
		slog.Warn("Error unmarshaling historical rate", "key", key, "error", err)
		return HistoricalRate{}, false
	}

	slog.Debug("Cache hit", "key", key)
	return rate, true
}
