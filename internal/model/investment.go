package model

import "time"

// Investment is the master record for a single position. Cost basis and
// current value are always expressed in the investment's own currency;
// the analytics engine normalizes them to base currency per call.
type Investment struct {
	ID           string     `json:"id"`
	EntityID     string     `json:"entityId"`
	Name         string     `json:"name"`
	Symbol       string     `json:"symbol,omitempty"` // ticker for public equities / crypto
	AssetClass   AssetClass `json:"assetClass"`
	Currency     string     `json:"currency"`
	Quantity     float64    `json:"quantity"`
	CostBasis    float64    `json:"costBasis"`
	CurrentValue float64    `json:"currentValue"`
	CurrentPrice float64    `json:"currentPrice,omitempty"`
	PurchaseDate time.Time  `json:"purchaseDate"`
	LastPriceAt  time.Time  `json:"lastPriceUpdate,omitempty"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
}

// InvestmentResponse enriches an Investment with its entity name and
// computed unrealized gain for API responses.
type InvestmentResponse struct {
	Investment
	EntityName        string  `json:"entityName"`
	UnrealizedGain    float64 `json:"unrealizedGain"`
	UnrealizedGainPct float64 `json:"unrealizedGainPct"`
}
