package repository

import (
	"database/sql"
	"fmt"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

// AllocationRepository provides data access methods for the
// target_allocation table.
type AllocationRepository struct {
	db *sql.DB
}

// NewAllocationRepository creates a new AllocationRepository with the provided database connection.
func NewAllocationRepository(db *sql.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// GetTargets returns the target weight per asset class. An empty map means
// no target allocation has been configured.
func (r *AllocationRepository) GetTargets() (map[model.AssetClass]float64, error) {
	rows, err := r.db.Query(`SELECT asset_class, weight FROM target_allocation`)
	if err != nil {
		return nil, fmt.Errorf("failed to query target_allocation table: %w", err)
	}
	defer rows.Close()

	targets := make(map[model.AssetClass]float64)
	for rows.Next() {
		var assetClass string
		var weight float64
		if err := rows.Scan(&assetClass, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan target_allocation table results: %w", err)
		}
		targets[model.AssetClass(assetClass)] = weight
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating target_allocation table: %w", err)
	}
	return targets, nil
}

// SetTarget upserts the target weight for one asset class.
func (r *AllocationRepository) SetTarget(assetClass model.AssetClass, weight float64) error {
	query := `
		INSERT INTO target_allocation (asset_class, weight)
		VALUES (?, ?)
		ON CONFLICT (asset_class) DO UPDATE SET weight = excluded.weight
	`
	if _, err := r.db.Exec(query, string(assetClass), weight); err != nil {
		return fmt.Errorf("failed to insert into target_allocation table: %w", err)
	}
	return nil
}
