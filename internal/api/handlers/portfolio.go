package handlers

import (
	"net/http"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/service"
)

// PortfolioHandler handles portfolio analytics HTTP requests: overview,
// performance, risk, and allocation.
type PortfolioHandler struct {
	valuationService   *service.ValuationService
	performanceService *service.PerformanceService
	riskService        *service.RiskService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(
	valuationService *service.ValuationService,
	performanceService *service.PerformanceService,
	riskService *service.RiskService,
) *PortfolioHandler {
	return &PortfolioHandler{
		valuationService:   valuationService,
		performanceService: performanceService,
		riskService:        riskService,
	}
}

// Overview handles GET /api/portfolio/overview
func (h *PortfolioHandler) Overview(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, overview)
}

// Performance handles GET /api/portfolio/performance with optional
// benchmark, start, and end query parameters.
func (h *PortfolioHandler) Performance(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateParam(r, "asOf", time.Now().UTC())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	start, err := parseDateParam(r, "start", time.Time{})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	end, err := parseDateParam(r, "end", time.Time{})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	report, err := h.performanceService.GetPerformance(asOf, r.URL.Query().Get("benchmark"), start, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Risk handles GET /api/portfolio/risk
func (h *PortfolioHandler) Risk(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateParam(r, "asOf", time.Now().UTC())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	report, err := h.riskService.GetRiskReport(asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Allocation handles GET /api/portfolio/allocation
func (h *PortfolioHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateParam(r, "asOf", time.Now().UTC())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	report, err := h.riskService.GetAllocationReport(asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
