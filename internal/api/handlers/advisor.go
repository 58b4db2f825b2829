package handlers

import (
	"net/http"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/advisor"
	"github.com/wealthos/wealth-os-backend/internal/service"
)

// AdvisorHandler handles AI advisor HTTP requests
type AdvisorHandler struct {
	advisor          *advisor.Advisor
	valuationService *service.ValuationService
	riskService      *service.RiskService
}

// NewAdvisorHandler creates a new AdvisorHandler
func NewAdvisorHandler(
	adv *advisor.Advisor,
	valuationService *service.ValuationService,
	riskService *service.RiskService,
) *AdvisorHandler {
	return &AdvisorHandler{
		advisor:          adv,
		valuationService: valuationService,
		riskService:      riskService,
	}
}

// AnalysisResponse carries the advisor commentary.
type AnalysisResponse struct {
	AsOf     time.Time `json:"asOf"`
	Analysis string    `json:"analysis"`
}

// Analysis handles POST /api/advisor/analysis
func (h *AdvisorHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateParam(r, "asOf", time.Now().UTC())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	overview, err := h.valuationService.GetOverview(asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	risk, err := h.riskService.GetRiskReport(asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	analysis, err := h.advisor.Analyze(r.Context(), overview, risk)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, AnalysisResponse{AsOf: asOf, Analysis: analysis})
}
