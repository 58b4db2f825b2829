package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

func snapshotFixture() model.PortfolioSnapshot {
	// 30/25/25/20 split: the 30% holding sits above a 25% threshold.
	return model.PortfolioSnapshot{
		AsOf:         date(2024, 6, 1),
		BaseCurrency: "CAD",
		TotalValue:   1000,
		Holdings: []model.Holding{
			{InvestmentID: "a", Name: "BigCo", EntityName: "HoldCo", AssetClass: model.AssetPublicEquity, Currency: "CAD", ValueBase: 300, Weight: 0.30},
			{InvestmentID: "b", Name: "Fund I", EntityName: "HoldCo", AssetClass: model.AssetVentureFund, Currency: "USD", ValueBase: 250, Weight: 0.25},
			{InvestmentID: "c", Name: "Duplex", EntityName: "Personal", AssetClass: model.AssetRealEstate, Currency: "CAD", ValueBase: 250, Weight: 0.25},
			{InvestmentID: "d", Name: "BTC", EntityName: "Personal", AssetClass: model.AssetCrypto, Currency: "USD", ValueBase: 200, Weight: 0.20},
		},
	}
}

func TestBuildSnapshot_ExcludesUnconvertibleHoldings(t *testing.T) {
	table := NewRateTable([]model.ExchangeRate{
		{FromCurrency: "USD", ToCurrency: "CAD", Date: date(2023, 1, 1), Rate: 1.35},
	})
	investments := []model.Investment{
		{ID: "ok", Name: "US Stock", EntityID: "e1", Currency: "USD", CostBasis: 100, CurrentValue: 200, PurchaseDate: date(2023, 6, 1), AssetClass: model.AssetPublicEquity},
		{ID: "bad", Name: "Swiss Fund", EntityID: "e1", Currency: "CHF", CostBasis: 100, CurrentValue: 150, PurchaseDate: date(2023, 6, 1), AssetClass: model.AssetVentureFund},
	}

	snap := BuildSnapshot(investments, map[string]string{"e1": "HoldCo"}, date(2024, 1, 1), "CAD", table)

	require.Len(t, snap.Holdings, 1)
	require.Len(t, snap.Excluded, 1)
	assert.Equal(t, "bad", snap.Excluded[0].InvestmentID)
	assert.InDelta(t, 270.0, snap.TotalValue, 1e-9)
	assert.Equal(t, 1.0, snap.Holdings[0].Weight)
	assert.Equal(t, "HoldCo", snap.Holdings[0].EntityName)
}

func TestAnalyzeConcentration_FlagsSingleHolding(t *testing.T) {
	report := AnalyzeConcentration(snapshotFixture(), 0.25)

	var investmentFlags []ConcentrationFlag
	for _, f := range report.Flags {
		if f.Kind == "investment" {
			investmentFlags = append(investmentFlags, f)
		}
	}
	require.Len(t, investmentFlags, 1)
	assert.Equal(t, "a", investmentFlags[0].ID)
	assert.InDelta(t, 0.30, investmentFlags[0].Share, 1e-9)
}

func TestAnalyzeConcentration_FlagsAssetClassBucket(t *testing.T) {
	// Both USD holdings are distinct classes; push two holdings into one
	// class to breach the bucket threshold.
	snap := snapshotFixture()
	snap.Holdings[1].AssetClass = model.AssetPublicEquity // 300 + 250 = 55%

	report := AnalyzeConcentration(snap, 0.50)

	var classFlags []ConcentrationFlag
	for _, f := range report.Flags {
		if f.Kind == "assetClass" {
			classFlags = append(classFlags, f)
		}
	}
	require.Len(t, classFlags, 1)
	assert.Equal(t, string(model.AssetPublicEquity), classFlags[0].Name)
	assert.InDelta(t, 0.55, classFlags[0].Share, 1e-9)
}

func TestAnalyzeConcentration_ExposureBreakdown(t *testing.T) {
	report := AnalyzeConcentration(snapshotFixture(), 0.25)

	require.Len(t, report.ByEntity, 2)
	assert.Equal(t, "HoldCo", report.ByEntity[0].Key)
	assert.InDelta(t, 0.55, report.ByEntity[0].Share, 1e-9)

	require.Len(t, report.ByCurrency, 2)
	assert.Equal(t, "CAD", report.ByCurrency[0].Key)
	assert.InDelta(t, 0.55, report.ByCurrency[0].Share, 1e-9)
}

func TestAnalyzeLiquidity(t *testing.T) {
	tiers := model.DefaultLiquidityTiers()
	report := AnalyzeLiquidity(snapshotFixture(), tiers, 0.40)

	// Venture fund + real estate = 500 of 1000 illiquid.
	assert.InDelta(t, 0.50, report.IlliquidShare, 1e-9)
	assert.InDelta(t, 0.50, report.LiquidShare, 1e-9)
	assert.True(t, report.CeilingBreached)

	relaxed := AnalyzeLiquidity(snapshotFixture(), tiers, 0.60)
	assert.False(t, relaxed.CeilingBreached)
}

func TestAnalyzeLiquidity_UnmappedClassIsIlliquid(t *testing.T) {
	snap := model.PortfolioSnapshot{
		TotalValue: 100,
		Holdings: []model.Holding{
			{AssetClass: model.AssetOther, ValueBase: 100, Weight: 1},
		},
	}
	report := AnalyzeLiquidity(snap, map[model.AssetClass]model.LiquidityTier{}, 0.5)
	assert.InDelta(t, 1.0, report.IlliquidShare, 1e-9)
}
