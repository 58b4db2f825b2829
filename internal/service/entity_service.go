package service

import (
	"fmt"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
)

// EntityService handles entity listing and lookups.
type EntityService struct {
	entityRepo *repository.EntityRepository
}

// NewEntityService creates a new EntityService with the provided repository.
func NewEntityService(entityRepo *repository.EntityRepository) *EntityService {
	return &EntityService{entityRepo: entityRepo}
}

// GetEntities retrieves all entities.
func (s *EntityService) GetEntities() ([]model.Entity, error) {
	entities, err := s.entityRepo.GetEntities()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveEntities, err)
	}
	return entities, nil
}

// GetEntity retrieves one entity by ID.
func (s *EntityService) GetEntity(entityID string) (model.Entity, error) {
	return s.entityRepo.GetEntity(entityID)
}
