package domain

// Currency represents a currency code as the rate service spells it (e.g. "USD").
type Currency string

// CurrencyInfo is one entry of the service's currency list.
type CurrencyInfo struct {
	Code Currency `json:"code"`
	Name string   `json:"name"`
}
