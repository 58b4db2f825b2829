package testutil

import (
	"context"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/marketdata"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// MockMarketDataSource is a mock implementation of marketdata.Source for
// testing. It returns predefined quotes, rates, and benchmark points
// instead of calling the upstream APIs.
type MockMarketDataSource struct {
	// QuotesBySymbol maps symbol to the quote to return for it. Symbols
	// with no entry get a quote carrying QuoteErr.
	QuotesBySymbol map[string]model.Quote
	// QuoteErr is returned for symbols absent from QuotesBySymbol.
	QuoteErr error
	// Rate is returned from ExchangeRate together with RateErr.
	Rate    model.ExchangeRate
	RateErr error
	// Points is returned from BenchmarkHistory together with PointsErr.
	Points    []model.BenchmarkPoint
	PointsErr error
	// QuoteCalls tracks how many quote requests were made.
	QuoteCalls int
}

var _ marketdata.Source = (*MockMarketDataSource)(nil)

// NewMockMarketDataSource creates an empty mock source.
func NewMockMarketDataSource() *MockMarketDataSource {
	return &MockMarketDataSource{QuotesBySymbol: map[string]model.Quote{}}
}

// WithQuote configures the quote returned for a symbol.
func (m *MockMarketDataSource) WithQuote(symbol string, price float64, currency string) *MockMarketDataSource {
	m.QuotesBySymbol[symbol] = model.Quote{
		Symbol:    symbol,
		Price:     price,
		Currency:  currency,
		FetchedAt: time.Now().UTC(),
	}
	return m
}

// WithQuoteError configures the error returned for symbols without a
// configured quote.
func (m *MockMarketDataSource) WithQuoteError(err error) *MockMarketDataSource {
	m.QuoteErr = err
	return m
}

// WithRate configures the exchange rate returned for every pair.
func (m *MockMarketDataSource) WithRate(from, to string, rate float64) *MockMarketDataSource {
	m.Rate = model.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		Date:         time.Now().UTC().Truncate(24 * time.Hour),
		Rate:         rate,
	}
	return m
}

// Quotes returns the configured quote per request, preserving order.
func (m *MockMarketDataSource) Quotes(_ context.Context, reqs []marketdata.QuoteRequest) []model.Quote {
	quotes := make([]model.Quote, len(reqs))
	for i, req := range reqs {
		m.QuoteCalls++
		quote, ok := m.QuotesBySymbol[req.Symbol]
		if !ok {
			quote = model.Quote{Symbol: req.Symbol, Err: m.QuoteErr}
		}
		quotes[i] = quote
	}
	return quotes
}

// ExchangeRate returns the configured rate for any pair.
func (m *MockMarketDataSource) ExchangeRate(from, to string) (model.ExchangeRate, error) {
	if m.RateErr != nil {
		return model.ExchangeRate{}, m.RateErr
	}
	rate := m.Rate
	rate.FromCurrency = from
	rate.ToCurrency = to
	return rate, nil
}

// BenchmarkHistory returns the configured points for any symbol.
func (m *MockMarketDataSource) BenchmarkHistory(symbol string, _, _ time.Time) ([]model.BenchmarkPoint, error) {
	if m.PointsErr != nil {
		return nil, m.PointsErr
	}
	points := make([]model.BenchmarkPoint, len(m.Points))
	copy(points, m.Points)
	for i := range points {
		points[i].Symbol = symbol
	}
	return points, nil
}
