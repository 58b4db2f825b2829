package model

// Scenario is a named mapping from asset class to fractional shock.
// A shock of -0.30 means holdings of that class lose 30% of current value.
// Asset classes absent from the map are unaffected.
type Scenario struct {
	Key         string                 `json:"key"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Shocks      map[AssetClass]float64 `json:"shocks"`
}
