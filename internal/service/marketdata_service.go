package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/marketdata"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
)

// RefreshResult summarizes one market-data refresh run. Failures stay
// scoped to the symbol or pair that caused them.
type RefreshResult struct {
	StartedAt         time.Time `json:"startedAt"`
	PricesUpdated     int       `json:"pricesUpdated"`
	RatesUpdated      int       `json:"ratesUpdated"`
	BenchmarksUpdated int       `json:"benchmarksUpdated"`
	Failures          []string  `json:"failures,omitempty"`
}

// MarketDataService refreshes investment prices, exchange rates, and
// benchmark levels from the external providers into the database.
type MarketDataService struct {
	provider       marketdata.Source
	investmentRepo *repository.InvestmentRepository
	rateRepo       *repository.RateRepository
	benchmarkRepo  *repository.BenchmarkRepository
	baseCurrency   string
	benchmarks     []string
}

// NewMarketDataService creates a new MarketDataService with the provided dependencies.
func NewMarketDataService(
	provider marketdata.Source,
	investmentRepo *repository.InvestmentRepository,
	rateRepo *repository.RateRepository,
	benchmarkRepo *repository.BenchmarkRepository,
	baseCurrency string,
	benchmarks []string,
) *MarketDataService {
	return &MarketDataService{
		provider:       provider,
		investmentRepo: investmentRepo,
		rateRepo:       rateRepo,
		benchmarkRepo:  benchmarkRepo,
		baseCurrency:   baseCurrency,
		benchmarks:     benchmarks,
	}
}

// Refresh fetches current prices for all priceable investments, exchange
// rates for every currency in use, and recent benchmark levels. Individual
// fetch failures are collected, not fatal; the run fails outright only
// when the portfolio itself cannot be loaded.
func (s *MarketDataService) Refresh(ctx context.Context) (RefreshResult, error) {
	result := RefreshResult{StartedAt: time.Now().UTC()}

	investments, err := s.investmentRepo.GetInvestments(true)
	if err != nil {
		return result, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshMarketData, err)
	}

	s.refreshPrices(ctx, investments, &result)
	s.refreshRates(investments, &result)
	s.refreshBenchmarks(&result)

	log.Printf("market data refresh: %d prices, %d rates, %d benchmarks, %d failures",
		result.PricesUpdated, result.RatesUpdated, result.BenchmarksUpdated, len(result.Failures))
	return result, nil
}

func (s *MarketDataService) refreshPrices(ctx context.Context, investments []model.Investment, result *RefreshResult) {
	var priceable []model.Investment
	var requests []marketdata.QuoteRequest
	for _, inv := range investments {
		if inv.Symbol == "" {
			continue
		}
		priceable = append(priceable, inv)
		requests = append(requests, marketdata.QuoteRequest{
			Symbol: inv.Symbol,
			Crypto: inv.AssetClass == model.AssetCrypto,
		})
	}

	quotes := s.provider.Quotes(ctx, requests)
	for i, quote := range quotes {
		inv := priceable[i]
		if !quote.Available() {
			result.Failures = append(result.Failures, fmt.Sprintf("price %s: %v", inv.Symbol, quote.Err))
			continue
		}
		// A quote in another currency must not be written into a column
		// denominated in the investment's currency.
		if quote.Currency != "" && quote.Currency != inv.Currency {
			result.Failures = append(result.Failures,
				fmt.Sprintf("price %s: quote currency %s does not match investment currency %s",
					inv.Symbol, quote.Currency, inv.Currency))
			continue
		}
		if err := s.investmentRepo.UpdatePrice(inv.ID, quote.Price, quote.Price*inv.Quantity); err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("price %s: %v", inv.Symbol, err))
			continue
		}
		result.PricesUpdated++
	}
}

func (s *MarketDataService) refreshRates(investments []model.Investment, result *RefreshResult) {
	currencies := map[string]bool{}
	for _, inv := range investments {
		if inv.Currency != s.baseCurrency {
			currencies[inv.Currency] = true
		}
	}
	// Crypto quotes arrive in USD; make sure that pair refreshes too.
	if s.baseCurrency != "USD" {
		currencies["USD"] = true
	}

	for currency := range currencies {
		rate, err := s.provider.ExchangeRate(currency, s.baseCurrency)
		if err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("rate %s/%s: %v", currency, s.baseCurrency, err))
			continue
		}
		if err := s.rateRepo.UpsertRate(rate); err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("rate %s/%s: %v", currency, s.baseCurrency, err))
			continue
		}
		result.RatesUpdated++
	}
}

func (s *MarketDataService) refreshBenchmarks(result *RefreshResult) {
	end := time.Now().UTC()
	start := end.AddDate(0, -1, 0)

	for _, symbol := range s.benchmarks {
		points, err := s.provider.BenchmarkHistory(symbol, start, end)
		if err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("benchmark %s: %v", symbol, err))
			continue
		}
		if err := s.benchmarkRepo.UpsertLevels(points); err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("benchmark %s: %v", symbol, err))
			continue
		}
		result.BenchmarksUpdated++
	}
}
