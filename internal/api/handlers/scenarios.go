package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/service"
	"github.com/wealthos/wealth-os-backend/internal/validation"
)

// ScenarioHandler handles scenario-related HTTP requests
type ScenarioHandler struct {
	scenarioService *service.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler
func NewScenarioHandler(scenarioService *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioService: scenarioService,
	}
}

// Scenarios handles GET /api/scenarios
func (h *ScenarioHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.scenarioService.ListScenarios())
}

// RunScenarioRequest is the POST /api/scenarios/run body. Exactly one of
// Preset or Shocks must be set.
type RunScenarioRequest struct {
	Preset string             `json:"preset,omitempty"`
	Shocks map[string]float64 `json:"shocks,omitempty"`
}

// RunScenario handles POST /api/scenarios/run
func (h *ScenarioHandler) RunScenario(w http.ResponseWriter, r *http.Request) {
	var req RunScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asOf, err := parseDateParam(r, "asOf", time.Now().UTC())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var result service.ScenarioRunResult
	switch {
	case req.Preset != "" && len(req.Shocks) > 0:
		respondError(w, http.StatusBadRequest, "validation failed", "provide either preset or shocks, not both")
		return
	case req.Preset != "":
		result, err = h.scenarioService.RunPreset(req.Preset, asOf)
	case len(req.Shocks) > 0:
		var shocks map[model.AssetClass]float64
		shocks, err = validation.ParseShocks(req.Shocks)
		if err == nil {
			result, err = h.scenarioService.RunCustom(shocks, asOf)
		}
	default:
		respondError(w, http.StatusBadRequest, "validation failed", "provide a preset key or a shocks map")
		return
	}

	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
