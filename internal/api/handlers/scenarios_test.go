package handlers_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wealthos/wealth-os-backend/internal/api/handlers"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/service"
	"github.com/wealthos/wealth-os-backend/internal/testutil"
)

// TestScenarioHandler_Scenarios tests the GET /api/scenarios endpoint.
func TestScenarioHandler_Scenarios(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewScenarioHandler(testutil.NewTestScenarioService(t, db))

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios/", nil)
	w := httptest.NewRecorder()

	handler.Scenarios(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response []model.Scenario
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response) != 7 {
		t.Errorf("Expected 7 scenarios, got %d", len(response))
	}
}

// TestScenarioHandler_RunScenario tests the POST /api/scenarios/run endpoint.
//
// WHY: This endpoint accepts two mutually exclusive request shapes. The
// handler must enforce exactly-one-of preset/shocks and translate engine
// validation failures into 400s.
func TestScenarioHandler_RunScenario(t *testing.T) {
	runRequest := func(t *testing.T, handler *handlers.ScenarioHandler, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/api/scenarios/run?asOf=2024-06-01", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.RunScenario(w, req)
		return w
	}

	t.Run("POST with preset returns projected impact", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewScenarioHandler(testutil.NewTestScenarioService(t, db))

		entity := testutil.CreateEntity(t, db, "HoldCo")
		testutil.NewInvestment(entity.ID).WithValues(10000, 12000).Build(t, db)

		w := runRequest(t, handler, `{"preset":"market_crash"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response service.ScenarioRunResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Scenario != "market_crash" {
			t.Errorf("Expected scenario 'market_crash', got %q", response.Scenario)
		}
		if math.Abs(response.Result.TotalImpact-(-3600)) > 1e-9 {
			t.Errorf("Expected total impact -3600, got %f", response.Result.TotalImpact)
		}
	})

	t.Run("POST with custom shocks returns projected impact", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewScenarioHandler(testutil.NewTestScenarioService(t, db))

		entity := testutil.CreateEntity(t, db, "HoldCo")
		testutil.NewInvestment(entity.ID).WithValues(10000, 12000).Build(t, db)

		w := runRequest(t, handler, `{"shocks":{"Public Equity":-0.10}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response service.ScenarioRunResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if math.Abs(response.Result.TotalImpact-(-1200)) > 1e-9 {
			t.Errorf("Expected total impact -1200, got %f", response.Result.TotalImpact)
		}
	})

	t.Run("POST with unknown preset returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewScenarioHandler(testutil.NewTestScenarioService(t, db))

		w := runRequest(t, handler, `{"preset":"alien_invasion"}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("POST with both preset and shocks returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewScenarioHandler(testutil.NewTestScenarioService(t, db))

		w := runRequest(t, handler, `{"preset":"market_crash","shocks":{"Crypto":-0.10}}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("POST with neither preset nor shocks returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewScenarioHandler(testutil.NewTestScenarioService(t, db))

		w := runRequest(t, handler, `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("POST with unknown asset class returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewScenarioHandler(testutil.NewTestScenarioService(t, db))

		w := runRequest(t, handler, `{"shocks":{"Stocks":-0.10}}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("POST with shock below -1.0 returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewScenarioHandler(testutil.NewTestScenarioService(t, db))

		w := runRequest(t, handler, `{"shocks":{"Crypto":-1.5}}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
