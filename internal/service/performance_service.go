package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/analytics"
	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/repository"
)

// InvestmentReturn carries the computed returns for one investment.
// A return that could not be computed is nil, with the reason recorded in
// Issues; one failing figure never hides the other.
type InvestmentReturn struct {
	InvestmentID  string   `json:"investmentId"`
	Name          string   `json:"name"`
	EntityID      string   `json:"entityId"`
	EntityName    string   `json:"entityName"`
	SimpleReturn  *float64 `json:"simpleReturn,omitempty"`
	MoneyWeighted *float64 `json:"moneyWeightedReturn,omitempty"`
	Issues        []string `json:"issues,omitempty"`
}

// EntityReturn is the pooled money-weighted return over all of one
// entity's investments.
type EntityReturn struct {
	EntityID      string   `json:"entityId"`
	EntityName    string   `json:"entityName"`
	MoneyWeighted *float64 `json:"moneyWeightedReturn,omitempty"`
	Issue         string   `json:"issue,omitempty"`
}

// BenchmarkComparison aligns the portfolio money-weighted return with a
// benchmark return over the same window. When the comparison could not be
// made, Issue records why and the return figures are unset.
type BenchmarkComparison struct {
	Symbol          string    `json:"symbol"`
	Start           time.Time `json:"start,omitzero"`
	End             time.Time `json:"end,omitzero"`
	BenchmarkReturn float64   `json:"benchmarkReturn"`
	Relative        float64   `json:"relativePerformance"`
	Issue           string    `json:"issue,omitempty"`
}

// PerformanceReport is the full performance view: per-investment returns,
// pooled entity and portfolio money-weighted returns, and an optional
// benchmark comparison.
type PerformanceReport struct {
	AsOf           time.Time            `json:"asOf"`
	BaseCurrency   string               `json:"baseCurrency"`
	Investments    []InvestmentReturn   `json:"investments"`
	ByEntity       []EntityReturn       `json:"byEntity"`
	PortfolioMWR   *float64             `json:"portfolioMoneyWeightedReturn,omitempty"`
	PortfolioIssue string               `json:"portfolioIssue,omitempty"`
	Benchmark      *BenchmarkComparison `json:"benchmark,omitempty"`
}

// PerformanceService computes money-weighted and simple returns across the
// portfolio and aligns them with stored benchmark series.
type PerformanceService struct {
	investmentRepo  *repository.InvestmentRepository
	transactionRepo *repository.TransactionRepository
	entityRepo      *repository.EntityRepository
	benchmarkRepo   *repository.BenchmarkRepository
	snapshotService *SnapshotService
}

// NewPerformanceService creates a new PerformanceService with the provided dependencies.
func NewPerformanceService(
	investmentRepo *repository.InvestmentRepository,
	transactionRepo *repository.TransactionRepository,
	entityRepo *repository.EntityRepository,
	benchmarkRepo *repository.BenchmarkRepository,
	snapshotService *SnapshotService,
) *PerformanceService {
	return &PerformanceService{
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
		entityRepo:      entityRepo,
		benchmarkRepo:   benchmarkRepo,
		snapshotService: snapshotService,
	}
}

// GetPerformance computes returns for every active investment as of the
// given date. When benchmarkSymbol is non-empty the portfolio return is
// compared against that benchmark over [start, end]; a zero start defaults
// to the oldest transaction date, a zero end to asOf.
func (s *PerformanceService) GetPerformance(asOf time.Time, benchmarkSymbol string, start, end time.Time) (PerformanceReport, error) {
	investments, err := s.investmentRepo.GetInvestments(true)
	if err != nil {
		return PerformanceReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveInvestments, err)
	}
	entityNames, err := s.entityRepo.GetEntityNames()
	if err != nil {
		return PerformanceReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveEntities, err)
	}

	investmentIDs := make([]string, 0, len(investments))
	for _, inv := range investments {
		investmentIDs = append(investmentIDs, inv.ID)
	}
	txsByInvestment, err := s.transactionRepo.GetTransactions(investmentIDs, asOf)
	if err != nil {
		return PerformanceReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	table, err := s.snapshotService.RateTable()
	if err != nil {
		return PerformanceReport{}, err
	}
	base := s.snapshotService.BaseCurrency()

	report := PerformanceReport{
		AsOf:         asOf,
		BaseCurrency: base,
		Investments:  make([]InvestmentReturn, 0, len(investments)),
	}

	// Per-investment returns plus cash-flow series for pooling.
	flowsByEntity := map[string][][]analytics.CashFlow{}
	var allFlows [][]analytics.CashFlow

	for _, inv := range investments {
		row := InvestmentReturn{
			InvestmentID: inv.ID,
			Name:         inv.Name,
			EntityID:     inv.EntityID,
			EntityName:   entityNames[inv.EntityID],
		}

		if simple, err := analytics.InvestmentSimpleReturn(inv, asOf, base, table); err != nil {
			row.Issues = append(row.Issues, fmt.Sprintf("simple return: %v", err))
		} else {
			row.SimpleReturn = &simple
		}

		flows, err := analytics.BuildCashFlows(inv, txsByInvestment[inv.ID], asOf, base, table)
		if err != nil {
			row.Issues = append(row.Issues, fmt.Sprintf("cash flows: %v", err))
		} else {
			if mwr, err := analytics.IRR(flows); err != nil {
				row.Issues = append(row.Issues, fmt.Sprintf("money-weighted return: %v", err))
			} else {
				row.MoneyWeighted = &mwr
			}
			flowsByEntity[inv.EntityID] = append(flowsByEntity[inv.EntityID], flows)
			allFlows = append(allFlows, flows)
		}

		report.Investments = append(report.Investments, row)
	}

	// Entity and portfolio rates pool the underlying flows into a single
	// IRR; averaging per-investment rates would ignore position sizes.
	for entityID, series := range flowsByEntity {
		row := EntityReturn{EntityID: entityID, EntityName: entityNames[entityID]}
		if pooled, err := analytics.PooledMoneyWeightedReturn(series...); err != nil {
			row.Issue = err.Error()
		} else {
			row.MoneyWeighted = &pooled
		}
		report.ByEntity = append(report.ByEntity, row)
	}
	sort.Slice(report.ByEntity, func(i, j int) bool {
		return report.ByEntity[i].EntityName < report.ByEntity[j].EntityName
	})

	if pooled, err := analytics.PooledMoneyWeightedReturn(allFlows...); err != nil {
		report.PortfolioIssue = err.Error()
	} else {
		report.PortfolioMWR = &pooled
	}

	if benchmarkSymbol != "" {
		if report.PortfolioMWR == nil {
			// The caller asked for a comparison, so say it was skipped
			// rather than dropping the section without a trace.
			report.Benchmark = &BenchmarkComparison{
				Symbol: benchmarkSymbol,
				Issue:  "portfolio money-weighted return unavailable, comparison skipped",
			}
		} else {
			comparison, err := s.compareBenchmark(benchmarkSymbol, *report.PortfolioMWR, investmentIDs, start, end, asOf)
			if err != nil {
				return PerformanceReport{}, err
			}
			report.Benchmark = comparison
		}
	}

	return report, nil
}

func (s *PerformanceService) compareBenchmark(symbol string, portfolioMWR float64, investmentIDs []string, start, end, asOf time.Time) (*BenchmarkComparison, error) {
	if end.IsZero() {
		end = asOf
	}
	if start.IsZero() {
		start = s.transactionRepo.GetOldestTransactionDate(investmentIDs)
		if start.IsZero() {
			return nil, fmt.Errorf("%w: no transactions to anchor benchmark window", apperrors.ErrInvalidDateRange)
		}
	}

	points, err := s.benchmarkRepo.GetLevels(symbol)
	if err != nil {
		return nil, err
	}
	series := analytics.NewBenchmarkSeries(symbol, points)

	benchReturn, err := series.Return(start, end)
	if err != nil {
		return nil, err
	}

	log.Printf("benchmark %s over %s..%s: %.4f (portfolio %.4f)",
		symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), benchReturn, portfolioMWR)

	return &BenchmarkComparison{
		Symbol:          symbol,
		Start:           start,
		End:             end,
		BenchmarkReturn: benchReturn,
		Relative:        analytics.RelativePerformance(portfolioMWR, benchReturn),
	}, nil
}
