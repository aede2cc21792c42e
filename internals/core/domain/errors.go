package domain

import (
	"errors"
	"fmt"
)

// Validation errors never leave the process; callers recover by re-prompting.
var (
	ErrCurrencyNotSupported = errors.New("currency not supported")
	ErrInvalidDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidAmount        = errors.New("invalid amount, must be positive")
	ErrInvalidChoice        = errors.New("invalid choice")
)

// Fetch failures.
var (
	ErrTransport         = errors.New("exchange rate service unreachable")
	ErrUnexpectedStatus  = errors.New("unexpected response status from exchange rate service")
	ErrMalformedResponse = errors.New("failed to parse exchange rate data from API response")
)

// APIError is the service's own error envelope ({"success": false, ...}).
type APIError struct {
	Code        string `json:"error"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsValidation reports whether err belongs to the local validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrCurrencyNotSupported) ||
		errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidChoice)
}
