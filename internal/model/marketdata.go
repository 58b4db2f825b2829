package model

import "time"

// ExchangeRate is a dated rate for a currency pair. Lookups resolve to the
// latest rate on or before the requested date; a pair with no eligible
// entry is an error, never an implicit 1:1.
type ExchangeRate struct {
	ID           string    `json:"id"`
	FromCurrency string    `json:"fromCurrency"`
	ToCurrency   string    `json:"toCurrency"`
	Date         time.Time `json:"date"`
	Rate         float64   `json:"rate"`
	Source       string    `json:"source,omitempty"` // yahoo, manual
}

// BenchmarkPoint is one (date, level) observation of a named index series.
type BenchmarkPoint struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"` // ^GSPC, ^GSPTSE
	Name   string    `json:"name,omitempty"`
	Date   time.Time `json:"date"`
	Level  float64   `json:"level"`
}

// Quote is a fetched market price for a symbol. Unavailable quotes carry
// the fetch error instead of a price so callers can fail closed per symbol
// rather than aborting the whole batch.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Source    string    `json:"source"` // yahoo, kraken
	FetchedAt time.Time `json:"fetchedAt"`
	Err       error     `json:"-"`
}

// Available reports whether the quote carries a usable price.
func (q Quote) Available() bool { return q.Err == nil }
