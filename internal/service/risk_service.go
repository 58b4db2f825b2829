package service

import (
	"time"

	"github.com/wealthos/wealth-os-backend/internal/analytics"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
)

// RiskReport is the combined concentration and liquidity view of the
// portfolio.
type RiskReport struct {
	AsOf          time.Time                     `json:"asOf"`
	BaseCurrency  string                        `json:"baseCurrency"`
	TotalValue    float64                       `json:"totalValue"`
	Concentration analytics.ConcentrationReport `json:"concentration"`
	Liquidity     analytics.LiquidityReport     `json:"liquidity"`
	Excluded      []model.ItemError             `json:"excluded,omitempty"`
}

// AllocationReport compares actual allocation to targets and lists
// rebalancing suggestions.
type AllocationReport struct {
	AsOf         time.Time                       `json:"asOf"`
	BaseCurrency string                          `json:"baseCurrency"`
	Lines        []analytics.AllocationLine      `json:"lines"`
	Suggestions  []analytics.RebalanceSuggestion `json:"suggestions"`
	Excluded     []model.ItemError               `json:"excluded,omitempty"`
}

// RiskService runs the concentration, liquidity, and allocation analyzers
// against the current snapshot with the configured policy thresholds.
type RiskService struct {
	snapshotService        *SnapshotService
	allocationRepo         *repository.AllocationRepository
	concentrationThreshold float64
	illiquidCeiling        float64
	rebalanceThreshold     float64
}

// NewRiskService creates a new RiskService with the provided dependencies
// and policy thresholds.
func NewRiskService(
	snapshotService *SnapshotService,
	allocationRepo *repository.AllocationRepository,
	concentrationThreshold, illiquidCeiling, rebalanceThreshold float64,
) *RiskService {
	return &RiskService{
		snapshotService:        snapshotService,
		allocationRepo:         allocationRepo,
		concentrationThreshold: concentrationThreshold,
		illiquidCeiling:        illiquidCeiling,
		rebalanceThreshold:     rebalanceThreshold,
	}
}

// GetRiskReport analyzes concentration and liquidity as of the given date.
func (s *RiskService) GetRiskReport(asOf time.Time) (RiskReport, error) {
	snap, err := s.snapshotService.BuildSnapshot(asOf)
	if err != nil {
		return RiskReport{}, err
	}

	return RiskReport{
		AsOf:          snap.AsOf,
		BaseCurrency:  snap.BaseCurrency,
		TotalValue:    snap.TotalValue,
		Concentration: analytics.AnalyzeConcentration(snap, s.concentrationThreshold),
		Liquidity:     analytics.AnalyzeLiquidity(snap, model.DefaultLiquidityTiers(), s.illiquidCeiling),
		Excluded:      snap.Excluded,
	}, nil
}

// GetAllocationReport compares actual allocation against stored targets as
// of the given date. Without configured targets the report carries empty
// lines and no suggestions.
func (s *RiskService) GetAllocationReport(asOf time.Time) (AllocationReport, error) {
	snap, err := s.snapshotService.BuildSnapshot(asOf)
	if err != nil {
		return AllocationReport{}, err
	}

	targets, err := s.allocationRepo.GetTargets()
	if err != nil {
		return AllocationReport{}, err
	}

	lines := analytics.CompareAllocation(snap, targets)
	return AllocationReport{
		AsOf:         snap.AsOf,
		BaseCurrency: snap.BaseCurrency,
		Lines:        lines,
		Suggestions:  analytics.RebalancingSuggestions(lines, s.rebalanceThreshold),
		Excluded:     snap.Excluded,
	}, nil
}
