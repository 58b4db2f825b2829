package model

import "time"

// Entity is a legal/ownership bucket (holding company, personal, trust)
// that groups investments. It is purely a grouping key; all aggregation
// behavior lives in the analytics engine.
type Entity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	EntityType   string    `json:"entityType"` // corporation, individual, trust
	BaseCurrency string    `json:"baseCurrency"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}
