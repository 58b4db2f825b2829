package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// HoldingImpact is one holding's projected value change under a scenario.
type HoldingImpact struct {
	InvestmentID string           `json:"investmentId"`
	Name         string           `json:"name"`
	AssetClass   model.AssetClass `json:"assetClass"`
	ValueBase    float64          `json:"valueBase"`
	Shock        float64          `json:"shock"`
	Impact       float64          `json:"impact"`
	NewValue     float64          `json:"newValue"`
}

// AssetClassImpact aggregates scenario impact over one asset class.
type AssetClassImpact struct {
	AssetClass model.AssetClass `json:"assetClass"`
	ValueBase  float64          `json:"valueBase"`
	Shock      float64          `json:"shock"`
	Impact     float64          `json:"impact"`
	NewValue   float64          `json:"newValue"`
}

// ScenarioResult is the projected portfolio state under a shock map.
// Holdings are sorted descending by absolute impact to surface the most
// affected positions first.
type ScenarioResult struct {
	OldTotalValue float64            `json:"oldTotalValue"`
	NewTotalValue float64            `json:"newTotalValue"`
	TotalImpact   float64            `json:"totalImpact"`
	ImpactPct     float64            `json:"impactPct"`
	Holdings      []HoldingImpact    `json:"holdings"`
	ByAssetClass  []AssetClassImpact `json:"byAssetClass"`
}

// ValidateShocks rejects shock values below -1.0: a long-only position
// modeled this way cannot lose more than 100% of its value. Invalid values
// fail with ErrInvalidShockValue rather than being clamped.
func ValidateShocks(shocks map[model.AssetClass]float64) error {
	for ac, shock := range shocks {
		if shock < -1.0 || math.IsNaN(shock) || math.IsInf(shock, 0) {
			return fmt.Errorf("%w: %s has shock %v", apperrors.ErrInvalidShockValue, ac, shock)
		}
	}
	return nil
}

// ApplyScenario projects a shock map onto a snapshot. Holdings whose asset
// class has no entry in the map are unaffected (shock zero); a partial
// shock map is a valid scenario.
func ApplyScenario(snap model.PortfolioSnapshot, shocks map[model.AssetClass]float64) (ScenarioResult, error) {
	if err := ValidateShocks(shocks); err != nil {
		return ScenarioResult{}, err
	}

	result := ScenarioResult{OldTotalValue: snap.TotalValue}
	classTotals := map[model.AssetClass]*AssetClassImpact{}

	for _, h := range snap.Holdings {
		shock := shocks[h.AssetClass]
		impact := h.ValueBase * shock

		result.Holdings = append(result.Holdings, HoldingImpact{
			InvestmentID: h.InvestmentID,
			Name:         h.Name,
			AssetClass:   h.AssetClass,
			ValueBase:    h.ValueBase,
			Shock:        shock,
			Impact:       impact,
			NewValue:     h.ValueBase + impact,
		})
		result.TotalImpact += impact

		agg, ok := classTotals[h.AssetClass]
		if !ok {
			agg = &AssetClassImpact{AssetClass: h.AssetClass, Shock: shock}
			classTotals[h.AssetClass] = agg
		}
		agg.ValueBase += h.ValueBase
		agg.Impact += impact
	}

	result.NewTotalValue = result.OldTotalValue + result.TotalImpact
	if result.OldTotalValue != 0 {
		result.ImpactPct = result.TotalImpact / result.OldTotalValue
	}

	sort.SliceStable(result.Holdings, func(i, j int) bool {
		return math.Abs(result.Holdings[i].Impact) > math.Abs(result.Holdings[j].Impact)
	})

	for _, ac := range model.AllAssetClasses() {
		if agg, ok := classTotals[ac]; ok {
			agg.NewValue = agg.ValueBase + agg.Impact
			result.ByAssetClass = append(result.ByAssetClass, *agg)
		}
	}
	return result, nil
}
