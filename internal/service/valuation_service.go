package service

import (
	"sort"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

// GroupSummary aggregates normalized value and cost over one grouping key
// (entity or asset class).
type GroupSummary struct {
	Key     string  `json:"key"`
	Value   float64 `json:"value"`
	Cost    float64 `json:"cost"`
	Gain    float64 `json:"gain"`
	GainPct float64 `json:"gainPct"`
	Weight  float64 `json:"weight"`
}

// PortfolioOverview is the normalized whole-portfolio view: totals,
// holdings with weights, and per-entity / per-asset-class groupings.
type PortfolioOverview struct {
	AsOf              time.Time         `json:"asOf"`
	BaseCurrency      string            `json:"baseCurrency"`
	TotalValue        float64           `json:"totalValue"`
	TotalCost         float64           `json:"totalCost"`
	UnrealizedGain    float64           `json:"unrealizedGain"`
	UnrealizedGainPct float64           `json:"unrealizedGainPct"`
	Holdings          []model.Holding   `json:"holdings"`
	ByEntity          []GroupSummary    `json:"byEntity"`
	ByAssetClass      []GroupSummary    `json:"byAssetClass"`
	Excluded          []model.ItemError `json:"excluded,omitempty"`
}

// ValuationService computes the portfolio overview from the normalized
// snapshot.
type ValuationService struct {
	snapshotService *SnapshotService
}

// NewValuationService creates a new ValuationService with the provided dependencies.
func NewValuationService(snapshotService *SnapshotService) *ValuationService {
	return &ValuationService{snapshotService: snapshotService}
}

// GetOverview builds the portfolio overview as of the given date.
func (s *ValuationService) GetOverview(asOf time.Time) (PortfolioOverview, error) {
	snap, err := s.snapshotService.BuildSnapshot(asOf)
	if err != nil {
		return PortfolioOverview{}, err
	}

	overview := PortfolioOverview{
		AsOf:           snap.AsOf,
		BaseCurrency:   snap.BaseCurrency,
		TotalValue:     snap.TotalValue,
		TotalCost:      snap.TotalCost,
		UnrealizedGain: snap.TotalValue - snap.TotalCost,
		Holdings:       snap.Holdings,
		Excluded:       snap.Excluded,
	}
	if snap.TotalCost > 0 {
		overview.UnrealizedGainPct = overview.UnrealizedGain / snap.TotalCost
	}

	overview.ByEntity = groupHoldings(snap, func(h model.Holding) string { return h.EntityName })
	overview.ByAssetClass = groupHoldings(snap, func(h model.Holding) string { return string(h.AssetClass) })

	return overview, nil
}

// groupHoldings aggregates snapshot holdings by the given key, ordered by
// value descending.
func groupHoldings(snap model.PortfolioSnapshot, keyFn func(model.Holding) string) []GroupSummary {
	byKey := map[string]*GroupSummary{}
	order := []string{}

	for _, h := range snap.Holdings {
		key := keyFn(h)
		group, ok := byKey[key]
		if !ok {
			group = &GroupSummary{Key: key}
			byKey[key] = group
			order = append(order, key)
		}
		group.Value += h.ValueBase
		group.Cost += h.CostBasisBase
	}

	groups := make([]GroupSummary, 0, len(order))
	for _, key := range order {
		group := byKey[key]
		group.Gain = group.Value - group.Cost
		if group.Cost > 0 {
			group.GainPct = group.Gain / group.Cost
		}
		if snap.TotalValue > 0 {
			group.Weight = group.Value / snap.TotalValue
		}
		groups = append(groups, *group)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	return groups
}
