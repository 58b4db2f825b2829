package service

import (
	"fmt"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/analytics"
	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// presetScenarios is the built-in scenario catalog. Shocks are fractions of
// current value per asset class; classes absent from a map are unaffected.
var presetScenarios = []model.Scenario{
	{
		Key:         "market_crash",
		Name:        "Market Crash",
		Description: "30% decline in global equity markets over 3 months",
		Shocks: map[model.AssetClass]float64{
			model.AssetPublicEquity:    -0.30,
			model.AssetPrivateBusiness: -0.20,
			model.AssetVentureFund:     -0.25,
			model.AssetRealEstate:      -0.10,
			model.AssetGold:            0.05,
			model.AssetCrypto:          -0.50,
			model.AssetBonds:           0.05,
		},
	},
	{
		Key:         "recession",
		Name:        "Recession",
		Description: "Canadian recession with GDP declining 2% over 12 months",
		Shocks: map[model.AssetClass]float64{
			model.AssetPublicEquity:    -0.20,
			model.AssetPrivateBusiness: -0.15,
			model.AssetVentureFund:     -0.20,
			model.AssetRealEstate:      -0.15,
			model.AssetGold:            0.10,
			model.AssetCrypto:          -0.30,
			model.AssetBonds:           0.03,
		},
	},
	{
		Key:         "inflation",
		Name:        "High Inflation",
		Description: "Inflation rising to 8% with aggressive rate hikes",
		Shocks: map[model.AssetClass]float64{
			model.AssetPublicEquity:    -0.15,
			model.AssetPrivateBusiness: -0.05,
			model.AssetVentureFund:     -0.15,
			model.AssetRealEstate:      0.05,
			model.AssetGold:            0.15,
			model.AssetCrypto:          -0.20,
			model.AssetCash:            -0.05,
			model.AssetBonds:           -0.10,
		},
	},
	{
		Key:         "rate_shock",
		Name:        "Rate Shock",
		Description: "Bank of Canada raising rates by 200 basis points",
		Shocks: map[model.AssetClass]float64{
			model.AssetPublicEquity:    -0.10,
			model.AssetPrivateBusiness: -0.05,
			model.AssetVentureFund:     -0.10,
			model.AssetRealEstate:      -0.20,
			model.AssetCrypto:          -0.15,
			model.AssetCash:            0.02,
			model.AssetBonds:           -0.08,
		},
	},
	{
		Key:         "cad_depreciation",
		Name:        "CAD Depreciation",
		Description: "Canadian dollar declining 15% against USD",
		Shocks: map[model.AssetClass]float64{
			model.AssetPublicEquity: 0.10,
			model.AssetVentureFund:  0.05,
			model.AssetGold:         0.15,
			model.AssetCrypto:       0.15,
		},
	},
	{
		Key:         "tech_crash",
		Name:        "Tech Crash",
		Description: "Technology sector declining 40% while other sectors flat",
		Shocks: map[model.AssetClass]float64{
			model.AssetPublicEquity:    -0.25,
			model.AssetPrivateBusiness: -0.10,
			model.AssetVentureFund:     -0.40,
			model.AssetGold:            0.05,
			model.AssetCrypto:          -0.35,
			model.AssetBonds:           0.03,
		},
	},
	{
		Key:         "real_estate_correction",
		Name:        "Real Estate Correction",
		Description: "Canadian real estate values declining 25%",
		Shocks: map[model.AssetClass]float64{
			model.AssetPublicEquity:    -0.05,
			model.AssetPrivateBusiness: -0.05,
			model.AssetRealEstate:      -0.25,
			model.AssetGold:            0.03,
			model.AssetBonds:           0.02,
		},
	},
}

// ScenarioService lists preset scenarios and runs stress tests against the
// current portfolio snapshot.
type ScenarioService struct {
	snapshotService *SnapshotService
}

// NewScenarioService creates a new ScenarioService with the provided dependencies.
func NewScenarioService(snapshotService *SnapshotService) *ScenarioService {
	return &ScenarioService{snapshotService: snapshotService}
}

// ListScenarios returns the preset scenario catalog.
func (s *ScenarioService) ListScenarios() []model.Scenario {
	scenarios := make([]model.Scenario, len(presetScenarios))
	copy(scenarios, presetScenarios)
	return scenarios
}

// GetScenario returns one preset by key. Returns apperrors.ErrScenarioNotFound
// for unknown keys.
func (s *ScenarioService) GetScenario(key string) (model.Scenario, error) {
	for _, scenario := range presetScenarios {
		if scenario.Key == key {
			return scenario, nil
		}
	}
	return model.Scenario{}, fmt.Errorf("%w: %s", apperrors.ErrScenarioNotFound, key)
}

// ScenarioRunResult pairs the engine result with the snapshot context it
// was computed against.
type ScenarioRunResult struct {
	Scenario     string                       `json:"scenario,omitempty"`
	AsOf         time.Time                    `json:"asOf"`
	BaseCurrency string                       `json:"baseCurrency"`
	Result       analytics.ScenarioResult     `json:"result"`
	Excluded     []model.ItemError            `json:"excluded,omitempty"`
	Shocks       map[model.AssetClass]float64 `json:"shocks"`
}

// RunPreset applies a preset scenario to the current portfolio.
func (s *ScenarioService) RunPreset(key string, asOf time.Time) (ScenarioRunResult, error) {
	scenario, err := s.GetScenario(key)
	if err != nil {
		return ScenarioRunResult{}, err
	}
	result, err := s.run(scenario.Shocks, asOf)
	if err != nil {
		return ScenarioRunResult{}, err
	}
	result.Scenario = scenario.Key
	return result, nil
}

// RunCustom applies a caller-provided shock map to the current portfolio.
func (s *ScenarioService) RunCustom(shocks map[model.AssetClass]float64, asOf time.Time) (ScenarioRunResult, error) {
	return s.run(shocks, asOf)
}

func (s *ScenarioService) run(shocks map[model.AssetClass]float64, asOf time.Time) (ScenarioRunResult, error) {
	if err := analytics.ValidateShocks(shocks); err != nil {
		return ScenarioRunResult{}, err
	}

	snap, err := s.snapshotService.BuildSnapshot(asOf)
	if err != nil {
		return ScenarioRunResult{}, err
	}

	result, err := analytics.ApplyScenario(snap, shocks)
	if err != nil {
		return ScenarioRunResult{}, err
	}

	return ScenarioRunResult{
		AsOf:         snap.AsOf,
		BaseCurrency: snap.BaseCurrency,
		Result:       result,
		Excluded:     snap.Excluded,
		Shocks:       shocks,
	}, nil
}

