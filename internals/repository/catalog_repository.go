package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"t-convert/internals/adapter/cache"
	"t-convert/internals/core/domain"
)

// CurrencySource is the part of the rate client the catalog needs.
type CurrencySource interface {
	FetchCurrencies(ctx context.Context) ([]domain.CurrencyInfo, error)
}

// CurrencyCatalog holds the currencies accepted for conversion. It is owned by
// the interaction loop and is not safe for concurrent use.
type CurrencyCatalog struct {
	source CurrencySource
	cache  cache.Cache
	ttl    time.Duration
	now    func() time.Time

	currencies []domain.CurrencyInfo
	codes      map[domain.Currency]struct{}
	fetchedAt  time.Time
}

// NewCurrencyCatalog creates an empty catalog. With ttl == 0 every Refresh goes
// past the in-memory copy; c may be nil.
func NewCurrencyCatalog(source CurrencySource, c cache.Cache, ttl time.Duration) *CurrencyCatalog {
	return &CurrencyCatalog{
		source: source,
		cache:  c,
		ttl:    ttl,
		now:    time.Now,
		codes:  map[domain.Currency]struct{}{},
	}
}

// Refresh replaces the catalog with the current currency list. On failure the
// previous contents are left untouched.
func (c *CurrencyCatalog) Refresh(ctx context.Context) error {
	if c.ttl > 0 && !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		slog.Debug("Catalog still fresh, skipping refresh", "age", c.now().Sub(c.fetchedAt))
		return nil
	}

	if c.cache != nil {
		if currencies, fetchedAt, found := c.cache.GetCurrencies(); found {
			c.replace(currencies, fetchedAt)
			return nil
		}
	}

	currencies, err := c.source.FetchCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh currency catalog: %w", err)
	}

	fetchedAt := c.now()
	c.replace(currencies, fetchedAt)
	if c.cache != nil {
		c.cache.SetCurrencies(currencies, fetchedAt)
	}
	slog.Debug("Catalog refreshed", "count", len(currencies))
	return nil
}

func (c *CurrencyCatalog) replace(currencies []domain.CurrencyInfo, fetchedAt time.Time) {
	codes := make(map[domain.Currency]struct{}, len(currencies))
	for _, info := range currencies {
		codes[info.Code] = struct{}{}
	}
	c.currencies = append([]domain.CurrencyInfo(nil), currencies...)
	c.codes = codes
	c.fetchedAt = fetchedAt
}

// Contains is an exact, case-sensitive lookup.
func (c *CurrencyCatalog) Contains(code domain.Currency) bool {
	_, ok := c.codes[code]
	return ok
}

// List returns the currencies in service response order.
func (c *CurrencyCatalog) List() []domain.CurrencyInfo {
	return append([]domain.CurrencyInfo(nil), c.currencies...)
}

func (c *CurrencyCatalog) Len() int {
	return len(c.currencies)
}

// FetchedAt is the zero time until the first successful refresh.
func (c *CurrencyCatalog) FetchedAt() time.Time {
	return c.fetchedAt
}
