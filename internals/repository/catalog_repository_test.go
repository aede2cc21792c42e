package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"t-convert/internals/core/domain"

	"github.com/stretchr/testify/assert"
)

var sampleCurrencies = []domain.CurrencyInfo{
	{Code: "USD", Name: "US Dollar"},
	{Code: "EUR", Name: "Euro"},
	{Code: "GBP", Name: "British Pound"},
}

func TestCatalog_EmptyAtStartup(t *testing.T) {
	catalog := NewCurrencyCatalog(&mockAPIClient{}, nil, 0)
	assert.Equal(t, 0, catalog.Len())
	assert.False(t, catalog.Contains("USD"))
	assert.True(t, catalog.FetchedAt().IsZero())
}

func TestCatalog_Refresh_Success(t *testing.T) {
	api := &mockAPIClient{currencies: sampleCurrencies}
	catalog := NewCurrencyCatalog(api, nil, 0)

	err := catalog.Refresh(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, sampleCurrencies, catalog.List())
	assert.Equal(t, 3, catalog.Len())
	assert.False(t, catalog.FetchedAt().IsZero())
	for _, c := range sampleCurrencies {
		assert.True(t, catalog.Contains(c.Code))
	}
}

func TestCatalog_Contains_CaseSensitive(t *testing.T) {
	catalog := NewCurrencyCatalog(&mockAPIClient{currencies: sampleCurrencies}, nil, 0)
	assert.NoError(t, catalog.Refresh(context.Background()))

	assert.True(t, catalog.Contains("USD"))
	assert.False(t, catalog.Contains("usd"))
	assert.False(t, catalog.Contains("XXX"))
	assert.False(t, catalog.Contains(""))
}

func TestCatalog_Refresh_ReplacesContents(t *testing.T) {
	api := &mockAPIClient{currencies: sampleCurrencies}
	catalog := NewCurrencyCatalog(api, nil, 0)
	assert.NoError(t, catalog.Refresh(context.Background()))

	api.currencies = []domain.CurrencyInfo{{Code: "JPY", Name: "Japanese Yen"}}
	assert.NoError(t, catalog.Refresh(context.Background()))

	assert.Equal(t, 1, catalog.Len())
	assert.True(t, catalog.Contains("JPY"))
	assert.False(t, catalog.Contains("USD"))
}

func TestCatalog_Refresh_FailureKeepsPrevious(t *testing.T) {
	api := &mockAPIClient{currencies: sampleCurrencies}
	catalog := NewCurrencyCatalog(api, nil, 0)
	assert.NoError(t, catalog.Refresh(context.Background()))
	fetchedAt := catalog.FetchedAt()

	api.currenciesErr = domain.ErrTransport
	err := catalog.Refresh(context.Background())

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, sampleCurrencies, catalog.List())
	assert.Equal(t, fetchedAt, catalog.FetchedAt())
}

func TestCatalog_Refresh_FailureOnFirstRun(t *testing.T) {
	catalog := NewCurrencyCatalog(&mockAPIClient{currenciesErr: errors.New("boom")}, nil, 0)

	err := catalog.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, catalog.Len())
}

func TestCatalog_Refresh_EveryCycleWithoutTTL(t *testing.T) {
	api := &mockAPIClient{currencies: sampleCurrencies}
	catalog := NewCurrencyCatalog(api, nil, 0)

	for i := 0; i < 3; i++ {
		assert.NoError(t, catalog.Refresh(context.Background()))
	}
	assert.Equal(t, 3, api.fetchCalls)
}

func TestCatalog_Refresh_TTLWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	api := &mockAPIClient{currencies: sampleCurrencies}
	catalog := NewCurrencyCatalog(api, nil, time.Minute)
	catalog.now = func() time.Time { return now }

	assert.NoError(t, catalog.Refresh(context.Background()))
	now = now.Add(30 * time.Second)
	assert.NoError(t, catalog.Refresh(context.Background()))
	assert.Equal(t, 1, api.fetchCalls)

	now = now.Add(time.Minute)
	assert.NoError(t, catalog.Refresh(context.Background()))
	assert.Equal(t, 2, api.fetchCalls)
}

func TestCatalog_Refresh_CacheHit(t *testing.T) {
	cachedAt := time.Now().Add(-10 * time.Minute)
	cache := &mockCache{currencies: sampleCurrencies, currenciesAt: cachedAt, currenciesFound: true}
	api := &mockAPIClient{}
	catalog := NewCurrencyCatalog(api, cache, 0)

	assert.NoError(t, catalog.Refresh(context.Background()))
	assert.Equal(t, 0, api.fetchCalls)
	assert.Equal(t, sampleCurrencies, catalog.List())
	assert.Equal(t, cachedAt, catalog.FetchedAt())
}

func TestCatalog_Refresh_CacheMissStoresSnapshot(t *testing.T) {
	cache := &mockCache{}
	api := &mockAPIClient{currencies: sampleCurrencies}
	catalog := NewCurrencyCatalog(api, cache, 0)

	assert.NoError(t, catalog.Refresh(context.Background()))
	assert.Equal(t, 1, api.fetchCalls)
	assert.Equal(t, 1, cache.setCurrencies)
	assert.Equal(t, sampleCurrencies, cache.currencies)
}

func TestCatalog_List_ReturnsCopy(t *testing.T) {
	catalog := NewCurrencyCatalog(&mockAPIClient{currencies: sampleCurrencies}, nil, 0)
	assert.NoError(t, catalog.Refresh(context.Background()))

	list := catalog.List()
	list[0].Code = "XXX"
	assert.True(t, catalog.Contains("USD"))
	assert.Equal(t, domain.Currency("USD"), catalog.List()[0].Code)
}
