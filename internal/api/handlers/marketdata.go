package handlers

import (
	"net/http"

	"github.com/wealthos/wealth-os-backend/internal/service"
)

// MarketDataHandler handles market data refresh HTTP requests
type MarketDataHandler struct {
	marketDataService *service.MarketDataService
}

// NewMarketDataHandler creates a new MarketDataHandler
func NewMarketDataHandler(marketDataService *service.MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{
		marketDataService: marketDataService,
	}
}

// Refresh handles POST /api/marketdata/refresh
func (h *MarketDataHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.marketDataService.Refresh(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
