package domain

import "time"

// DateLayout is the only calendar date format accepted and sent upstream.
const DateLayout = "2006-01-02"

type ConversionRequest struct {
	Amount float64  `json:"amount"`
	From   Currency `json:"from"`
	To     Currency `json:"to"`
	// Date is a YYYY-MM-DD calendar date.
	Date string `json:"date"`
}

type ConversionResult struct {
	Amount          float64   `json:"amount"`
	From            Currency  `json:"from"`
	To              Currency  `json:"to"`
	ConvertedAmount float64   `json:"convertedAmount"`
	Rate            float64   `json:"rate"`
	Date            string    `json:"date"`
	FetchedAt       time.Time `json:"fetchedAt"`
}

// ApplyRate converts amount with rate. Full precision is kept; rounding is a
// display concern.
func ApplyRate(amount, rate float64) float64 {
	return amount * rate
}

// NewConversionResult builds the result of a successful round trip.
func NewConversionResult(req ConversionRequest, rate float64, fetchedAt time.Time) *ConversionResult {
	return &ConversionResult{
		Amount:          req.Amount,
		From:            req.From,
		To:              req.To,
		ConvertedAmount: ApplyRate(req.Amount, rate),
		Rate:            rate,
		Date:            req.Date,
		FetchedAt:       fetchedAt,
	}
}
