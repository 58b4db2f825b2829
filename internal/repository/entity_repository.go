package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// EntityRepository provides data access methods for the entity table.
type EntityRepository struct {
	db *sql.DB
}

// NewEntityRepository creates a new EntityRepository with the provided database connection.
func NewEntityRepository(db *sql.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// GetEntities retrieves all entities ordered by name.
func (r *EntityRepository) GetEntities() ([]model.Entity, error) {
	query := `
		SELECT id, name, entity_type, base_currency, description, created_at
		FROM entity
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity table: %w", err)
	}
	defer rows.Close()

	entities := []model.Entity{}
	for rows.Next() {
		var e model.Entity
		var createdAtStr string

		if err := rows.Scan(&e.ID, &e.Name, &e.EntityType, &e.BaseCurrency, &e.Description, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan entity table results: %w", err)
		}
		e.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity table: %w", err)
	}

	return entities, nil
}

// GetEntity retrieves one entity by ID. Returns apperrors.ErrEntityNotFound
// when no row matches.
func (r *EntityRepository) GetEntity(entityID string) (model.Entity, error) {
	query := `
		SELECT id, name, entity_type, base_currency, description, created_at
		FROM entity
		WHERE id = ?
	`

	var e model.Entity
	var createdAtStr string

	err := r.db.QueryRow(query, entityID).Scan(&e.ID, &e.Name, &e.EntityType, &e.BaseCurrency, &e.Description, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.Entity{}, apperrors.ErrEntityNotFound
	}
	if err != nil {
		return model.Entity{}, fmt.Errorf("failed to query entity table: %w", err)
	}

	e.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Entity{}, err
	}
	return e, nil
}

// GetEntityNames returns an id -> name map for every entity. Used to label
// holdings in portfolio snapshots without a join per query.
func (r *EntityRepository) GetEntityNames() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT id, name FROM entity`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity table: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan entity table results: %w", err)
		}
		names[id] = name
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity table: %w", err)
	}
	return names, nil
}

// CreateEntity inserts a new entity, assigning an ID when none is set.
func (r *EntityRepository) CreateEntity(e model.Entity) (model.Entity, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO entity (id, name, entity_type, base_currency, description, created_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
	`
	if _, err := r.db.Exec(query, e.ID, e.Name, e.EntityType, e.BaseCurrency, e.Description); err != nil {
		return model.Entity{}, fmt.Errorf("failed to insert into entity table: %w", err)
	}
	return e, nil
}
