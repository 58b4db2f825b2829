package model

import "fmt"

// AssetClass is the closed set of asset classifications used across the
// analytics engine. Scenario shock maps and liquidity tiers are keyed by
// asset class, so unknown classes are rejected at the validation boundary
// instead of surfacing as silent zero-shocks at computation time.
type AssetClass string

const (
	AssetPublicEquity    AssetClass = "Public Equity"
	AssetPrivateBusiness AssetClass = "Private Business"
	AssetVentureFund     AssetClass = "Venture Fund"
	AssetRealEstate      AssetClass = "Real Estate"
	AssetGold            AssetClass = "Gold"
	AssetCrypto          AssetClass = "Crypto"
	AssetCash            AssetClass = "Cash & Equivalents"
	AssetBonds           AssetClass = "Bonds"
	AssetOther           AssetClass = "Other"
)

// AllAssetClasses returns every known asset class in display order.
func AllAssetClasses() []AssetClass {
	return []AssetClass{
		AssetPublicEquity,
		AssetPrivateBusiness,
		AssetVentureFund,
		AssetRealEstate,
		AssetGold,
		AssetCrypto,
		AssetCash,
		AssetBonds,
		AssetOther,
	}
}

// ParseAssetClass validates a raw string against the closed enumeration.
func ParseAssetClass(s string) (AssetClass, error) {
	for _, ac := range AllAssetClasses() {
		if string(ac) == s {
			return ac, nil
		}
	}
	return "", fmt.Errorf("unknown asset class %q", s)
}

// LiquidityTier is a coarse liquid/illiquid classification of an asset
// class, used for liquidity concentration scoring.
type LiquidityTier string

const (
	TierLiquid   LiquidityTier = "liquid"
	TierIlliquid LiquidityTier = "illiquid"
)

// DefaultLiquidityTiers maps each asset class to its default tier.
// Public markets, gold and crypto can be sold in days; private positions,
// fund interests and property cannot.
func DefaultLiquidityTiers() map[AssetClass]LiquidityTier {
	return map[AssetClass]LiquidityTier{
		AssetPublicEquity:    TierLiquid,
		AssetPrivateBusiness: TierIlliquid,
		AssetVentureFund:     TierIlliquid,
		AssetRealEstate:      TierIlliquid,
		AssetGold:            TierLiquid,
		AssetCrypto:          TierLiquid,
		AssetCash:            TierLiquid,
		AssetBonds:           TierLiquid,
		AssetOther:           TierIlliquid,
	}
}
