package repository

import (
	"context"
	"log/slog"
	"time"

	"t-convert/internals/adapter/cache"
	"t-convert/internals/adapter/fxratesapi"
	"t-convert/internals/core/domain"
	"t-convert/internals/helpers"
)

type RateRepository interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error)
}

type cachedRateRepository struct {
	apiClient fxratesapi.RateAPIClient
	cache     cache.Cache
	now       func() time.Time
}

// NewCachedRateRepository serves rates of past dates from the cache when it has
// them. Today's rate always comes from the service. c may be nil.
func NewCachedRateRepository(apiClient fxratesapi.RateAPIClient, c cache.Cache) RateRepository {
	return &cachedRateRepository{
		apiClient: apiClient,
		cache:     c,
		now:       time.Now,
	}
}

func (r *cachedRateRepository) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	historical := r.cache != nil && req.Date < helpers.Today(r.now(), time.UTC)

	if historical {
		if cached, found := r.cache.GetHistoricalRate(req.Date, req.From, req.To); found {
			slog.Debug("Using cached historical rate", "from", req.From, "to", req.To, "date", req.Date, "fetched_at", cached.FetchedAt)
			return domain.NewConversionResult(req, cached.Rate, cached.FetchedAt), nil
		}
	}

	result, err := r.apiClient.Convert(ctx, req)
	if err != nil {
		return nil, err
	}

	if historical {
		r.cache.SetHistoricalRate(req.Date, req.From, req.To, cache.HistoricalRate{Rate: result.Rate, FetchedAt: result.FetchedAt})
	}
	return result, nil
}
