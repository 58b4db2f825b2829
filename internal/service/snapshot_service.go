package service

import (
	"fmt"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/analytics"
	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
)

// SnapshotService assembles the normalized portfolio snapshot that the
// valuation, risk, and scenario services all compute against. The snapshot
// is built per call; nothing is cached between requests.
type SnapshotService struct {
	investmentRepo *repository.InvestmentRepository
	entityRepo     *repository.EntityRepository
	rateRepo       *repository.RateRepository
	baseCurrency   string
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	investmentRepo *repository.InvestmentRepository,
	entityRepo *repository.EntityRepository,
	rateRepo *repository.RateRepository,
	baseCurrency string,
) *SnapshotService {
	return &SnapshotService{
		investmentRepo: investmentRepo,
		entityRepo:     entityRepo,
		rateRepo:       rateRepo,
		baseCurrency:   baseCurrency,
	}
}

// BaseCurrency returns the configured reporting currency.
func (s *SnapshotService) BaseCurrency() string {
	return s.baseCurrency
}

// RateTable loads all stored exchange rates into an indexed lookup table.
func (s *SnapshotService) RateTable() (*analytics.RateTable, error) {
	rates, err := s.rateRepo.GetRates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveRates, err)
	}
	return analytics.NewRateTable(rates), nil
}

// BuildSnapshot normalizes all active investments into base currency as of
// the given date. Holdings that cannot be normalized are excluded with
// per-item error markers; the rest of the snapshot stays computable.
func (s *SnapshotService) BuildSnapshot(asOf time.Time) (model.PortfolioSnapshot, error) {
	investments, err := s.investmentRepo.GetInvestments(true)
	if err != nil {
		return model.PortfolioSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveInvestments, err)
	}
	entityNames, err := s.entityRepo.GetEntityNames()
	if err != nil {
		return model.PortfolioSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveEntities, err)
	}
	table, err := s.RateTable()
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}
	return analytics.BuildSnapshot(investments, entityNames, asOf, s.baseCurrency, table), nil
}
