package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyRate(t *testing.T) {
	assert.Equal(t, 100*0.92, ApplyRate(100, 0.92))
	assert.Equal(t, 12.5*82.5, ApplyRate(12.5, 82.5))
	assert.Equal(t, 0.0, ApplyRate(0, 1.37))
}

func TestNewConversionResult(t *testing.T) {
	fetched := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	req := ConversionRequest{Amount: 100, From: "USD", To: "EUR", Date: "2024-01-01"}

	res := NewConversionResult(req, 0.92, fetched)

	assert.Equal(t, Currency("USD"), res.From)
	assert.Equal(t, Currency("EUR"), res.To)
	assert.Equal(t, 100.0, res.Amount)
	assert.InDelta(t, 92.0, res.ConvertedAmount, 1e-9)
	assert.Equal(t, 0.92, res.Rate)
	assert.Equal(t, "2024-01-01", res.Date)
	assert.Equal(t, fetched, res.FetchedAt)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(fmt.Errorf("%w: XXX", ErrCurrencyNotSupported)))
	assert.True(t, IsValidation(ErrInvalidDateFormat))
	assert.True(t, IsValidation(ErrInvalidAmount))
	assert.True(t, IsValidation(ErrInvalidChoice))
	assert.False(t, IsValidation(ErrTransport))
	assert.False(t, IsValidation(&APIError{Code: "invalid_date"}))
	assert.False(t, IsValidation(errors.New("boom")))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: "invalid_currency_code", Description: "XXX is not supported"}
	assert.Equal(t, "invalid_currency_code: XXX is not supported", err.Error())

	var target *APIError
	assert.True(t, errors.As(fmt.Errorf("convert: %w", err), &target))
}
