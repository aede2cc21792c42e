package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"t-convert/internals/core/domain"
	"t-convert/internals/helpers"
	"t-convert/internals/repository"
)

// DateAdjustedNotice is shown when a future date is replaced by today (UTC).
const DateAdjustedNotice = "Date parameter adjusted to current UTC date."

// Catalog is the read side of the currency catalog.
type Catalog interface {
	Contains(code domain.Currency) bool
}

// ConversionService validates a request locally before any network call and
// then delegates to the rate repository.
type ConversionService interface {
	PerformConversion(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error)
}

type Option func(*conversionServiceImpl)

// WithClock overrides the source of "now" used for date clamping.
func WithClock(now func() time.Time) Option {
	return func(s *conversionServiceImpl) { s.now = now }
}

// WithNotifier receives informational messages such as DateAdjustedNotice.
func WithNotifier(notify func(msg string)) Option {
	return func(s *conversionServiceImpl) { s.notify = notify }
}

type conversionServiceImpl struct {
	catalog Catalog
	rates   repository.RateRepository
	now     func() time.Time
	notify  func(msg string)
}

func NewConversionService(catalog Catalog, rates repository.RateRepository, opts ...Option) ConversionService {
	s := &conversionServiceImpl{
		catalog: catalog,
		rates:   rates,
		now:     time.Now,
		notify:  func(string) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *conversionServiceImpl) validateCurrencies(currencies ...domain.Currency) error {
	for _, c := range currencies {
		if !s.catalog.Contains(c) {
			return fmt.Errorf("%w: %q", domain.ErrCurrencyNotSupported, c)
		}
	}
	return nil
}

func (s *conversionServiceImpl) PerformConversion(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	if err := s.validateCurrencies(req.From, req.To); err != nil {
		return nil, err
	}
	if !helpers.IsValidDateFormat(req.Date) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, req.Date)
	}
	if !(req.Amount > 0) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, req.Amount)
	}

	todayUTC := helpers.Today(s.now(), time.UTC)
	if clamped := helpers.NormalizeFutureDate(req.Date, todayUTC); clamped != req.Date {
		slog.Info("Future date clamped", "requested", req.Date, "used", clamped)
		s.notify(DateAdjustedNotice)
		req.Date = clamped
	}

	return s.rates.Convert(ctx, req)
}
