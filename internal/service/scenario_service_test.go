package service_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/testutil"
)

// TestScenarioService_ListScenarios tests the preset scenario catalog.
//
// WHY: The frontend renders the catalog directly; every preset must be
// present with a stable key, and callers must not be able to mutate the
// shared catalog through the returned slice.
func TestScenarioService_ListScenarios(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestScenarioService(t, db)

	scenarios := svc.ListScenarios()
	if len(scenarios) != 7 {
		t.Fatalf("Expected 7 preset scenarios, got %d", len(scenarios))
	}

	keys := map[string]bool{}
	for _, s := range scenarios {
		keys[s.Key] = true
	}
	for _, want := range []string{
		"market_crash", "recession", "inflation", "rate_shock",
		"cad_depreciation", "tech_crash", "real_estate_correction",
	} {
		if !keys[want] {
			t.Errorf("Expected preset %q in catalog", want)
		}
	}
}

// TestScenarioService_GetScenario tests preset lookup by key.
func TestScenarioService_GetScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestScenarioService(t, db)

	t.Run("returns known preset", func(t *testing.T) {
		scenario, err := svc.GetScenario("market_crash")
		if err != nil {
			t.Fatalf("GetScenario() returned unexpected error: %v", err)
		}
		if scenario.Name != "Market Crash" {
			t.Errorf("Expected name 'Market Crash', got %q", scenario.Name)
		}
		if scenario.Shocks[model.AssetPublicEquity] != -0.30 {
			t.Errorf("Expected Public Equity shock -0.30, got %v", scenario.Shocks[model.AssetPublicEquity])
		}
	})

	t.Run("returns ErrScenarioNotFound for unknown key", func(t *testing.T) {
		_, err := svc.GetScenario("alien_invasion")
		if !errors.Is(err, apperrors.ErrScenarioNotFound) {
			t.Errorf("Expected ErrScenarioNotFound, got %v", err)
		}
	})
}

// TestScenarioService_RunPreset tests running a preset stress test against
// stored holdings.
//
// WHY: Scenario runs combine the snapshot and the shock engine; this
// verifies shocks apply per asset class and classes absent from the map
// stay untouched.
func TestScenarioService_RunPreset(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestScenarioService(t, db)

	entity := testutil.CreateEntity(t, db, "HoldCo")
	testutil.NewInvestment(entity.ID).WithName("Maple Fund").WithValues(10000, 12000).Build(t, db)
	testutil.NewInvestment(entity.ID).WithName("Bullion").
		WithAssetClass(model.AssetGold).WithValues(4000, 4000).Build(t, db)

	result, err := svc.RunPreset("market_crash", asOf)
	if err != nil {
		t.Fatalf("RunPreset() returned unexpected error: %v", err)
	}

	if result.Scenario != "market_crash" {
		t.Errorf("Expected scenario key 'market_crash', got %q", result.Scenario)
	}
	if result.Result.OldTotalValue != 16000 {
		t.Errorf("Expected old total 16000, got %f", result.Result.OldTotalValue)
	}

	// Public Equity -30% on 12000, Gold +5% on 4000.
	wantImpact := -3600.0 + 200.0
	if math.Abs(result.Result.TotalImpact-wantImpact) > 1e-9 {
		t.Errorf("Expected total impact %f, got %f", wantImpact, result.Result.TotalImpact)
	}
	if math.Abs(result.Result.NewTotalValue-(16000+wantImpact)) > 1e-9 {
		t.Errorf("Expected new total %f, got %f", 16000+wantImpact, result.Result.NewTotalValue)
	}

	// Holdings sorted by absolute impact descending.
	if len(result.Result.Holdings) != 2 {
		t.Fatalf("Expected 2 holding impacts, got %d", len(result.Result.Holdings))
	}
	if result.Result.Holdings[0].Name != "Maple Fund" {
		t.Errorf("Expected largest impact first, got %q", result.Result.Holdings[0].Name)
	}
}

// TestScenarioService_RunCustom tests caller-provided shock maps.
func TestScenarioService_RunCustom(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("partial shock map leaves other classes untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestScenarioService(t, db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		testutil.NewInvestment(entity.ID).WithName("Maple Fund").WithValues(10000, 12000).Build(t, db)
		testutil.NewInvestment(entity.ID).WithName("Coins").
			WithAssetClass(model.AssetCrypto).WithValues(2000, 3000).Build(t, db)

		result, err := svc.RunCustom(map[model.AssetClass]float64{model.AssetCrypto: -0.40}, asOf)
		if err != nil {
			t.Fatalf("RunCustom() returned unexpected error: %v", err)
		}

		if math.Abs(result.Result.TotalImpact-(-1200.0)) > 1e-9 {
			t.Errorf("Expected total impact -1200, got %f", result.Result.TotalImpact)
		}
		for _, h := range result.Result.Holdings {
			if h.Name == "Maple Fund" && h.Impact != 0 {
				t.Errorf("Expected unshocked holding to have zero impact, got %f", h.Impact)
			}
		}
	})

	t.Run("rejects shock below -1.0", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestScenarioService(t, db)

		_, err := svc.RunCustom(map[model.AssetClass]float64{model.AssetCrypto: -1.5}, asOf)
		if !errors.Is(err, apperrors.ErrInvalidShockValue) {
			t.Errorf("Expected ErrInvalidShockValue, got %v", err)
		}
	})
}
