package model

import "time"

// Holding is one investment normalized into base currency as of the
// snapshot date. Weight is the share of total snapshot value in [0, 1].
type Holding struct {
	InvestmentID  string     `json:"investmentId"`
	Name          string     `json:"name"`
	Symbol        string     `json:"symbol,omitempty"`
	EntityID      string     `json:"entityId"`
	EntityName    string     `json:"entityName"`
	AssetClass    AssetClass `json:"assetClass"`
	Currency      string     `json:"currency"`
	Quantity      float64    `json:"quantity"`
	CostBasisBase float64    `json:"costBasisBase"`
	ValueBase     float64    `json:"valueBase"`
	Weight        float64    `json:"weight"`
}

// ItemError marks a holding that could not be included in an aggregate,
// scoped to the investment that caused it. Partial results are returned
// with these markers alongside the successfully computed items.
type ItemError struct {
	InvestmentID string `json:"investmentId"`
	Name         string `json:"name"`
	Reason       string `json:"reason"`
}

// PortfolioSnapshot is the normalized, as-of-date view of all includable
// investments in base currency. It is derived per call and never persisted;
// it is the common input to the risk analyzer and the scenario engine.
type PortfolioSnapshot struct {
	AsOf         time.Time   `json:"asOf"`
	BaseCurrency string      `json:"baseCurrency"`
	TotalValue   float64     `json:"totalValue"`
	TotalCost    float64     `json:"totalCost"`
	Holdings     []Holding   `json:"holdings"`
	Excluded     []ItemError `json:"excluded,omitempty"`
}
