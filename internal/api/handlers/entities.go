package handlers

import (
	"net/http"

	"github.com/wealthos/wealth-os-backend/internal/service"
)

// EntityHandler handles entity-related HTTP requests
type EntityHandler struct {
	entityService *service.EntityService
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(entityService *service.EntityService) *EntityHandler {
	return &EntityHandler{
		entityService: entityService,
	}
}

// Entities handles GET /api/entities
func (h *EntityHandler) Entities(w http.ResponseWriter, r *http.Request) {
	entities, err := h.entityService.GetEntities()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entities)
}
