package handlers

import (
	"net/http"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/service"
)

// InvestmentHandler handles investment-related HTTP requests
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// Investments handles GET /api/investments with optional entity and
// assetClass query filters.
func (h *InvestmentHandler) Investments(w http.ResponseWriter, r *http.Request) {
	entityID := r.URL.Query().Get("entity")

	var assetClass model.AssetClass
	if raw := r.URL.Query().Get("assetClass"); raw != "" {
		parsed, err := model.ParseAssetClass(raw)
		if err != nil {
			respondServiceError(w, apperrors.ErrInvalidAssetClass)
			return
		}
		assetClass = parsed
	}

	investments, err := h.investmentService.GetInvestments(entityID, assetClass)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, investments)
}
