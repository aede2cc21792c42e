package repository

import (
	"context"
	"time"

	"t-convert/internals/adapter/cache"
	"t-convert/internals/core/domain"
)

// --- Mock Cache ---
type mockCache struct {
	currencies      []domain.CurrencyInfo
	currenciesAt    time.Time
	currenciesFound bool
	setCurrencies   int

	rates      map[string]cache.HistoricalRate
	setRateLog []string
}

func (m *mockCache) SetCurrencies(currencies []domain.CurrencyInfo, fetchedAt time.Time) {
	m.setCurrencies++
	m.currencies = currencies
	m.currenciesAt = fetchedAt
}

func (m *mockCache) GetCurrencies() ([]domain.CurrencyInfo, time.Time, bool) {
	return m.currencies, m.currenciesAt, m.currenciesFound
}

func (m *mockCache) SetHistoricalRate(date string, from, to domain.Currency, rate cache.HistoricalRate) {
	if m.rates == nil {
		m.rates = map[string]cache.HistoricalRate{}
	}
	key := date + ":" + string(from) + ":" + string(to)
	m.rates[key] = rate
	m.setRateLog = append(m.setRateLog, key)
}

func (m *mockCache) GetHistoricalRate(date string, from, to domain.Currency) (cache.HistoricalRate, bool) {
	rate, ok := m.rates[date+":"+string(from)+":"+string(to)]
	return rate, ok
}

// --- Mock API Client ---
type mockAPIClient struct {
	currencies    []domain.CurrencyInfo
	currenciesErr error
	fetchCalls    int

	rate        float64
	convertErr  error
	convertReqs []domain.ConversionRequest
}

func (m *mockAPIClient) FetchCurrencies(ctx context.Context) ([]domain.CurrencyInfo, error) {
	m.fetchCalls++
	if m.currenciesErr != nil {
		return nil, m.currenciesErr
	}
	return m.currencies, nil
}

func (m *mockAPIClient) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	m.convertReqs = append(m.convertReqs, req)
	if m.convertErr != nil {
		return nil, m.convertErr
	}
	return domain.NewConversionResult(req, m.rate, time.Now()), nil
}
