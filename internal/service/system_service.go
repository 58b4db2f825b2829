package service

import (
	"database/sql"

	"github.com/wealthos/wealth-os-backend/internal/database"
)

// Version is the reported application version.
const Version = "1.0.0"

// SystemService handles health and version reporting.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database connection.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// Health checks database connectivity.
func (s *SystemService) Health() error {
	return database.HealthCheck(s.db)
}
