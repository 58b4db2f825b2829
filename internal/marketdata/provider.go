// Package marketdata fetches current prices, exchange rates, and benchmark
// levels from external providers. Equities, FX pairs, and indices come from
// the Yahoo Finance chart API; crypto spot prices come from Kraken. A
// short-lived in-memory cache keeps repeated lookups from hammering the
// upstream APIs.
package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

const (
	quoteCacheTTL  = 15 * time.Minute
	maxConcurrency = 4
	sourceYahoo    = "yahoo"
	sourceKraken   = "kraken"
)

// QuoteRequest identifies one instrument to price. Crypto symbols route to
// Kraken, everything else to Yahoo.
type QuoteRequest struct {
	Symbol string
	Crypto bool
}

// Source is the provider surface the refresh service consumes. Tests
// substitute a mock; production code uses Provider.
type Source interface {
	Quotes(ctx context.Context, reqs []QuoteRequest) []model.Quote
	ExchangeRate(from, to string) (model.ExchangeRate, error)
	BenchmarkHistory(symbol string, start, end time.Time) ([]model.BenchmarkPoint, error)
}

// Provider is the unified market data entry point.
type Provider struct {
	yahoo  *YahooClient
	kraken *KrakenClient

	mu    sync.Mutex
	cache map[string]cachedQuote
	now   func() time.Time
}

var _ Source = (*Provider)(nil)

type cachedQuote struct {
	quote    model.Quote
	storedAt time.Time
}

// NewProvider creates a provider backed by the default Yahoo and Kraken
// clients.
func NewProvider() *Provider {
	return &Provider{
		yahoo:  NewYahooClient(),
		kraken: NewKrakenClient(),
		cache:  make(map[string]cachedQuote),
		now:    time.Now,
	}
}

// Quote returns the current price for one instrument. A failed fetch
// returns a Quote carrying the error rather than an empty value, so batch
// callers can report per-symbol failures.
func (p *Provider) Quote(req QuoteRequest) model.Quote {
	key := cacheKey(req)
	if quote, ok := p.cached(key); ok {
		return quote
	}

	var quote model.Quote
	if req.Crypto {
		price, err := p.kraken.FetchTicker(req.Symbol)
		quote = model.Quote{
			Symbol:    req.Symbol,
			Price:     price,
			Currency:  "USD",
			Source:    sourceKraken,
			FetchedAt: p.now(),
			Err:       err,
		}
	} else {
		chart, err := p.yahoo.FetchRecent(req.Symbol)
		quote = model.Quote{
			Symbol:    req.Symbol,
			Source:    sourceYahoo,
			FetchedAt: p.now(),
			Err:       err,
		}
		if err == nil {
			latest, ok := chart.Latest()
			if !ok {
				quote.Err = fmt.Errorf("%w: no recent prices for %s", apperrors.ErrDataUnavailable, req.Symbol)
			} else {
				quote.Price = latest.Close
				quote.Currency = chart.Currency
			}
		}
	}

	if quote.Available() {
		p.store(key, quote)
	}
	return quote
}

// Quotes fetches a batch of instruments concurrently. Every request gets a
// result slot; individual failures surface on Quote.Err and never abort
// the batch.
func (p *Provider) Quotes(ctx context.Context, reqs []QuoteRequest) []model.Quote {
	quotes := make([]model.Quote, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				quotes[i] = model.Quote{Symbol: req.Symbol, Err: err}
				return nil
			}
			quotes[i] = p.Quote(req)
			return nil
		})
	}
	g.Wait()

	return quotes
}

// ExchangeRate fetches the latest available rate for a currency pair via
// Yahoo's FX symbols (e.g. USDCAD=X).
func (p *Provider) ExchangeRate(from, to string) (model.ExchangeRate, error) {
	symbol := fmt.Sprintf("%s%s=X", from, to)
	chart, err := p.yahoo.FetchRecent(symbol)
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("fetch rate %s/%s: %w", from, to, err)
	}
	latest, ok := chart.Latest()
	if !ok {
		return model.ExchangeRate{}, fmt.Errorf("%w: no rate data for %s/%s", apperrors.ErrDataUnavailable, from, to)
	}
	return model.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		Date:         latest.Date.Truncate(24 * time.Hour),
		Rate:         latest.Close,
		Source:       sourceYahoo,
	}, nil
}

// BenchmarkHistory fetches daily index levels for a benchmark symbol over
// a date range.
func (p *Provider) BenchmarkHistory(symbol string, start, end time.Time) ([]model.BenchmarkPoint, error) {
	chart, err := p.yahoo.FetchRange(symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch benchmark %s: %w", symbol, err)
	}

	points := make([]model.BenchmarkPoint, 0, len(chart.Points))
	for _, pt := range chart.Points {
		points = append(points, model.BenchmarkPoint{
			Symbol: symbol,
			Name:   chart.Name,
			Date:   pt.Date.Truncate(24 * time.Hour),
			Level:  pt.Close,
		})
	}
	return points, nil
}

func cacheKey(req QuoteRequest) string {
	if req.Crypto {
		return "crypto:" + req.Symbol
	}
	return "equity:" + req.Symbol
}

func (p *Provider) cached(key string) (model.Quote, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.cache[key]
	if !ok || p.now().Sub(entry.storedAt) >= quoteCacheTTL {
		return model.Quote{}, false
	}
	return entry.quote, true
}

func (p *Provider) store(key string, quote model.Quote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[key] = cachedQuote{quote: quote, storedAt: p.now()}
}
