package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
	"github.com/wealthos/wealth-os-backend/internal/testutil"
)

// TestRiskService_GetRiskReport tests concentration and liquidity analysis.
//
// WHY: Risk flags are the actionable output of the system; a threshold
// comparison that silently drifts (or a liquidity tier that flips) changes
// what the user is told to act on.
func TestRiskService_GetRiskReport(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("flags concentrated holdings and asset classes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRiskService(t, db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		// 60% of the portfolio in one position, above the 25% threshold.
		testutil.NewInvestment(entity.ID).WithName("Maple Fund").WithValues(10000, 12000).Build(t, db)
		testutil.NewInvestment(entity.ID).WithName("Bond Ladder").
			WithAssetClass(model.AssetBonds).WithValues(8000, 8000).Build(t, db)

		report, err := svc.GetRiskReport(asOf)
		if err != nil {
			t.Fatalf("GetRiskReport() returned unexpected error: %v", err)
		}

		if report.TotalValue != 20000 {
			t.Errorf("Expected total value 20000, got %f", report.TotalValue)
		}

		foundInvestment := false
		foundClass := false
		for _, flag := range report.Concentration.Flags {
			if flag.Kind == "investment" && flag.Name == "Maple Fund" {
				foundInvestment = true
				if math.Abs(flag.Share-0.60) > 1e-9 {
					t.Errorf("Expected share 0.60, got %f", flag.Share)
				}
			}
			if flag.Kind == "assetClass" && flag.Name == string(model.AssetPublicEquity) {
				foundClass = true
			}
		}
		if !foundInvestment {
			t.Error("Expected concentration flag for Maple Fund")
		}
		if !foundClass {
			t.Error("Expected concentration flag for Public Equity")
		}
	})

	t.Run("scores liquidity against the ceiling", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRiskService(t, db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		// 70% in an illiquid private position breaches the 50% ceiling.
		testutil.NewInvestment(entity.ID).WithName("OpCo Stake").
			WithAssetClass(model.AssetPrivateBusiness).WithValues(7000, 7000).Build(t, db)
		testutil.NewInvestment(entity.ID).WithName("Maple Fund").WithValues(3000, 3000).Build(t, db)

		report, err := svc.GetRiskReport(asOf)
		if err != nil {
			t.Fatalf("GetRiskReport() returned unexpected error: %v", err)
		}

		if math.Abs(report.Liquidity.IlliquidShare-0.70) > 1e-9 {
			t.Errorf("Expected illiquid share 0.70, got %f", report.Liquidity.IlliquidShare)
		}
		if !report.Liquidity.CeilingBreached {
			t.Error("Expected liquidity ceiling breach")
		}
	})
}

// TestRiskService_GetAllocationReport tests target-allocation comparison and
// rebalancing suggestions.
func TestRiskService_GetAllocationReport(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no targets produces empty report", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRiskService(t, db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		testutil.NewInvestment(entity.ID).Build(t, db)

		report, err := svc.GetAllocationReport(asOf)
		if err != nil {
			t.Fatalf("GetAllocationReport() returned unexpected error: %v", err)
		}
		if len(report.Lines) != 0 {
			t.Errorf("Expected no allocation lines, got %d", len(report.Lines))
		}
		if len(report.Suggestions) != 0 {
			t.Errorf("Expected no suggestions, got %d", len(report.Suggestions))
		}
	})

	t.Run("suggests rebalancing for deviations above threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRiskService(t, db)
		allocationRepo := repository.NewAllocationRepository(db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		// Actual: 80% equity, 20% bonds. Targets: 50/50.
		testutil.NewInvestment(entity.ID).WithName("Maple Fund").WithValues(8000, 8000).Build(t, db)
		testutil.NewInvestment(entity.ID).WithName("Bond Ladder").
			WithAssetClass(model.AssetBonds).WithValues(2000, 2000).Build(t, db)

		if err := allocationRepo.SetTarget(model.AssetPublicEquity, 0.50); err != nil {
			t.Fatalf("Failed to set target: %v", err)
		}
		if err := allocationRepo.SetTarget(model.AssetBonds, 0.50); err != nil {
			t.Fatalf("Failed to set target: %v", err)
		}

		report, err := svc.GetAllocationReport(asOf)
		if err != nil {
			t.Fatalf("GetAllocationReport() returned unexpected error: %v", err)
		}

		if len(report.Lines) != 2 {
			t.Fatalf("Expected 2 allocation lines, got %d", len(report.Lines))
		}
		if len(report.Suggestions) != 2 {
			t.Fatalf("Expected 2 suggestions, got %d", len(report.Suggestions))
		}

		// Both deviations are 30%, six times the 5% threshold, so both are
		// high priority; equity is over target and bonds under.
		for _, s := range report.Suggestions {
			if s.Priority != "high" {
				t.Errorf("Expected high priority for %s, got %q", s.AssetClass, s.Priority)
			}
			switch s.AssetClass {
			case model.AssetPublicEquity:
				if s.Action != "reduce" {
					t.Errorf("Expected 'reduce' for equity, got %q", s.Action)
				}
				if math.Abs(s.Amount-3000) > 1e-9 {
					t.Errorf("Expected amount 3000, got %f", s.Amount)
				}
			case model.AssetBonds:
				if s.Action != "add" {
					t.Errorf("Expected 'add' for bonds, got %q", s.Action)
				}
			}
		}
	})
}
