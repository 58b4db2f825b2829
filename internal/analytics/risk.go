package analytics

import (
	"sort"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

// BuildSnapshot normalizes all active investments into base currency as of
// a date. Investments whose value cannot be normalized (missing rate) are
// excluded from the totals and recorded with a per-item error marker, so a
// single bad holding never corrupts the aggregate for the rest.
func BuildSnapshot(investments []model.Investment, entityNames map[string]string, asOf time.Time, base string, rates *RateTable) model.PortfolioSnapshot {
	snap := model.PortfolioSnapshot{
		AsOf:         dateOnly(asOf),
		BaseCurrency: base,
	}

	for _, inv := range investments {
		valueBase, err := rates.Normalize(inv.CurrentValue, inv.Currency, asOf, base)
		if err != nil {
			snap.Excluded = append(snap.Excluded, model.ItemError{
				InvestmentID: inv.ID,
				Name:         inv.Name,
				Reason:       err.Error(),
			})
			continue
		}
		costBase, err := rates.Normalize(inv.CostBasis, inv.Currency, inv.PurchaseDate, base)
		if err != nil {
			snap.Excluded = append(snap.Excluded, model.ItemError{
				InvestmentID: inv.ID,
				Name:         inv.Name,
				Reason:       err.Error(),
			})
			continue
		}

		snap.Holdings = append(snap.Holdings, model.Holding{
			InvestmentID:  inv.ID,
			Name:          inv.Name,
			Symbol:        inv.Symbol,
			EntityID:      inv.EntityID,
			EntityName:    entityNames[inv.EntityID],
			AssetClass:    inv.AssetClass,
			Currency:      inv.Currency,
			Quantity:      inv.Quantity,
			CostBasisBase: costBase,
			ValueBase:     valueBase,
		})
		snap.TotalValue += valueBase
		snap.TotalCost += costBase
	}

	if snap.TotalValue > 0 {
		for i := range snap.Holdings {
			snap.Holdings[i].Weight = snap.Holdings[i].ValueBase / snap.TotalValue
		}
	}
	return snap
}

// ExposureBucket aggregates value and share-of-total for one grouping key.
type ExposureBucket struct {
	Key       string  `json:"key"`
	ValueBase float64 `json:"valueBase"`
	Share     float64 `json:"share"`
}

// ConcentrationFlag marks a single holding or asset-class bucket whose
// share of total portfolio value exceeds the configured threshold.
type ConcentrationFlag struct {
	Kind  string  `json:"kind"` // "investment" or "assetClass"
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// ConcentrationReport is the exposure breakdown plus threshold flags.
type ConcentrationReport struct {
	Threshold    float64             `json:"threshold"`
	ByEntity     []ExposureBucket    `json:"byEntity"`
	ByAssetClass []ExposureBucket    `json:"byAssetClass"`
	ByCurrency   []ExposureBucket    `json:"byCurrency"`
	Flags        []ConcentrationFlag `json:"flags"`
}

// AnalyzeConcentration computes share-of-total per entity, asset class and
// currency, and flags any single investment or asset-class bucket above
// the threshold fraction.
func AnalyzeConcentration(snap model.PortfolioSnapshot, threshold float64) ConcentrationReport {
	report := ConcentrationReport{Threshold: threshold}
	if snap.TotalValue <= 0 {
		return report
	}

	byEntity := map[string]float64{}
	byClass := map[model.AssetClass]float64{}
	byCurrency := map[string]float64{}
	for _, h := range snap.Holdings {
		byEntity[h.EntityName] += h.ValueBase
		byClass[h.AssetClass] += h.ValueBase
		byCurrency[h.Currency] += h.ValueBase

		if h.Weight > threshold {
			report.Flags = append(report.Flags, ConcentrationFlag{
				Kind:  "investment",
				ID:    h.InvestmentID,
				Name:  h.Name,
				Share: h.Weight,
			})
		}
	}

	report.ByEntity = toBuckets(byEntity, snap.TotalValue)
	for _, ac := range model.AllAssetClasses() {
		value, ok := byClass[ac]
		if !ok {
			continue
		}
		share := value / snap.TotalValue
		report.ByAssetClass = append(report.ByAssetClass, ExposureBucket{
			Key:       string(ac),
			ValueBase: value,
			Share:     share,
		})
		if share > threshold {
			report.Flags = append(report.Flags, ConcentrationFlag{
				Kind:  "assetClass",
				Name:  string(ac),
				Share: share,
			})
		}
	}
	report.ByCurrency = toBuckets(byCurrency, snap.TotalValue)
	return report
}

// LiquidityReport sums liquid and illiquid exposure from the tier map and
// flags an illiquid share above the configured ceiling.
type LiquidityReport struct {
	LiquidValue     float64 `json:"liquidValue"`
	IlliquidValue   float64 `json:"illiquidValue"`
	LiquidShare     float64 `json:"liquidShare"`
	IlliquidShare   float64 `json:"illiquidShare"`
	Ceiling         float64 `json:"ceiling"`
	CeilingBreached bool    `json:"ceilingBreached"`
}

// AnalyzeLiquidity scores portfolio liquidity against an externally
// configured tier map. Asset classes missing from the map are treated as
// illiquid, the conservative reading.
func AnalyzeLiquidity(snap model.PortfolioSnapshot, tiers map[model.AssetClass]model.LiquidityTier, ceiling float64) LiquidityReport {
	report := LiquidityReport{Ceiling: ceiling}
	for _, h := range snap.Holdings {
		if tiers[h.AssetClass] == model.TierLiquid {
			report.LiquidValue += h.ValueBase
		} else {
			report.IlliquidValue += h.ValueBase
		}
	}
	if snap.TotalValue > 0 {
		report.LiquidShare = report.LiquidValue / snap.TotalValue
		report.IlliquidShare = report.IlliquidValue / snap.TotalValue
		report.CeilingBreached = report.IlliquidShare > ceiling
	}
	return report
}

func toBuckets(values map[string]float64, total float64) []ExposureBucket {
	buckets := make([]ExposureBucket, 0, len(values))
	for key, value := range values {
		buckets = append(buckets, ExposureBucket{Key: key, ValueBase: value, Share: value / total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].ValueBase > buckets[j].ValueBase
	})
	return buckets
}
