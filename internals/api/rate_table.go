package api

import (
	"t-convert/internals/core/domain"

	"github.com/shopspring/decimal"
)

// RateTable is a fixed set of currencies with their value in US dollars. Cross
// rates are derived through USD.
type RateTable struct {
	currencies []domain.CurrencyInfo
	perUSD     map[domain.Currency]decimal.Decimal
}

type tableEntry struct {
	code   domain.Currency
	name   string
	perUSD string
}

var defaultEntries = []tableEntry{
	{"USD", "US Dollar", "1"},
	{"EUR", "Euro", "0.92"},
	{"GBP", "British Pound Sterling", "0.79"},
	{"JPY", "Japanese Yen", "156.25"},
	{"INR", "Indian Rupee", "83.40"},
	{"PHP", "Philippine Peso", "58.65"},
	{"CAD", "Canadian Dollar", "1.37"},
	{"AUD", "Australian Dollar", "1.51"},
	{"CHF", "Swiss Franc", "0.90"},
	{"CNY", "Chinese Yuan", "7.24"},
}

// DefaultRateTable returns the table served by the stub binary.
func DefaultRateTable() *RateTable {
	t := &RateTable{perUSD: make(map[domain.Currency]decimal.Decimal, len(defaultEntries))}
	for _, e := range defaultEntries {
		t.currencies = append(t.currencies, domain.CurrencyInfo{Code: e.code, Name: e.name})
		t.perUSD[e.code] = decimal.RequireFromString(e.perUSD)
	}
	return t
}

func (t *RateTable) Currencies() []domain.CurrencyInfo {
	return t.currencies
}

// Rate returns how many units of to one unit of from buys.
func (t *RateTable) Rate(from, to domain.Currency) (decimal.Decimal, bool) {
	fromPerUSD, ok := t.perUSD[from]
	if !ok {
		return decimal.Zero, false
	}
	toPerUSD, ok := t.perUSD[to]
	if !ok {
		return decimal.Zero, false
	}
	return toPerUSD.DivRound(fromPerUSD, 8), true
}
