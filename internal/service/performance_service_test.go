package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/testutil"
)

// TestPerformanceService_GetPerformance tests return computation across the
// portfolio.
//
// WHY: Money-weighted returns drive the headline performance numbers. The
// pooling behavior (entity and portfolio rates solved over combined flows,
// not averaged) and the per-investment failure isolation both live here.
func TestPerformanceService_GetPerformance(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	purchase := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("computes simple and money-weighted returns", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		inv := testutil.NewInvestment(entity.ID).WithName("Maple Fund").
			WithValues(10000, 12000).WithPurchaseDate(purchase).Build(t, db)
		testutil.CreateTransaction(t, db, inv.ID, model.TxBuy, purchase, 10000, "CAD")

		report, err := svc.GetPerformance(asOf, "", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("GetPerformance() returned unexpected error: %v", err)
		}

		if len(report.Investments) != 1 {
			t.Fatalf("Expected 1 investment row, got %d", len(report.Investments))
		}
		row := report.Investments[0]

		if row.SimpleReturn == nil {
			t.Fatalf("Expected simple return, got issues %v", row.Issues)
		}
		if math.Abs(*row.SimpleReturn-0.20) > 1e-9 {
			t.Errorf("Expected simple return 0.20, got %f", *row.SimpleReturn)
		}

		if row.MoneyWeighted == nil {
			t.Fatalf("Expected money-weighted return, got issues %v", row.Issues)
		}
		// Single outflow and single terminal flow have the closed form
		// (V/C)^(1/years) - 1 under ACT/365 year fractions.
		years := asOf.Sub(purchase).Hours() / 24 / 365
		want := math.Pow(1.2, 1/years) - 1
		if math.Abs(*row.MoneyWeighted-want) > 1e-4 {
			t.Errorf("Expected money-weighted return %f, got %f", want, *row.MoneyWeighted)
		}

		// Single investment, so portfolio and entity rates match it.
		if report.PortfolioMWR == nil {
			t.Fatalf("Expected portfolio MWR, got issue %q", report.PortfolioIssue)
		}
		if math.Abs(*report.PortfolioMWR-want) > 1e-4 {
			t.Errorf("Expected portfolio MWR %f, got %f", want, *report.PortfolioMWR)
		}
		if len(report.ByEntity) != 1 || report.ByEntity[0].MoneyWeighted == nil {
			t.Fatalf("Expected pooled entity return, got %+v", report.ByEntity)
		}
	})

	t.Run("records issue for investment without transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		testutil.NewInvestment(entity.ID).WithName("Maple Fund").
			WithValues(10000, 12000).WithPurchaseDate(purchase).Build(t, db)

		report, err := svc.GetPerformance(asOf, "", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("GetPerformance() returned unexpected error: %v", err)
		}

		row := report.Investments[0]
		if row.SimpleReturn == nil {
			t.Error("Expected simple return despite missing flows")
		}
		if row.MoneyWeighted != nil {
			t.Errorf("Expected no money-weighted return, got %f", *row.MoneyWeighted)
		}
		if len(row.Issues) == 0 {
			t.Error("Expected an issue explaining the missing money-weighted return")
		}
		if report.PortfolioMWR != nil {
			t.Error("Expected no portfolio MWR when no investment has flows")
		}
		if report.PortfolioIssue == "" {
			t.Error("Expected a portfolio-level issue")
		}
	})

	t.Run("one failing investment does not block the others", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		good := testutil.NewInvestment(entity.ID).WithName("Maple Fund").
			WithValues(10000, 12000).WithPurchaseDate(purchase).Build(t, db)
		testutil.CreateTransaction(t, db, good.ID, model.TxBuy, purchase, 10000, "CAD")

		// No EUR/CAD rate exists, so every computation on this one fails.
		bad := testutil.NewInvestment(entity.ID).WithName("Euro Bond").
			WithCurrency("EUR").WithValues(5000, 5100).WithPurchaseDate(purchase).Build(t, db)
		testutil.CreateTransaction(t, db, bad.ID, model.TxBuy, purchase, 5000, "EUR")

		report, err := svc.GetPerformance(asOf, "", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("GetPerformance() returned unexpected error: %v", err)
		}

		if len(report.Investments) != 2 {
			t.Fatalf("Expected 2 investment rows, got %d", len(report.Investments))
		}
		for _, row := range report.Investments {
			switch row.Name {
			case "Maple Fund":
				if row.MoneyWeighted == nil {
					t.Errorf("Expected return for Maple Fund, got issues %v", row.Issues)
				}
			case "Euro Bond":
				if len(row.Issues) == 0 {
					t.Error("Expected issues for Euro Bond")
				}
				if row.SimpleReturn != nil || row.MoneyWeighted != nil {
					t.Error("Expected no returns for Euro Bond")
				}
			}
		}
		if report.PortfolioMWR == nil {
			t.Errorf("Expected portfolio MWR from remaining flows, got issue %q", report.PortfolioIssue)
		}
	})

	t.Run("compares against benchmark over default window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)

		entity := testutil.CreateEntity(t, db, "HoldCo")
		inv := testutil.NewInvestment(entity.ID).WithName("Maple Fund").
			WithValues(10000, 12000).WithPurchaseDate(purchase).Build(t, db)
		testutil.CreateTransaction(t, db, inv.ID, model.TxBuy, purchase, 10000, "CAD")

		testutil.CreateBenchmarkPoint(t, db, "^GSPC", purchase, 4000)
		testutil.CreateBenchmarkPoint(t, db, "^GSPC", asOf, 4400)

		report, err := svc.GetPerformance(asOf, "^GSPC", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("GetPerformance() returned unexpected error: %v", err)
		}

		if report.Benchmark == nil {
			t.Fatal("Expected benchmark comparison")
		}
		// Window defaults to oldest transaction date through asOf.
		if !report.Benchmark.Start.Equal(purchase) {
			t.Errorf("Expected window start %v, got %v", purchase, report.Benchmark.Start)
		}
		if !report.Benchmark.End.Equal(asOf) {
			t.Errorf("Expected window end %v, got %v", asOf, report.Benchmark.End)
		}
		if math.Abs(report.Benchmark.BenchmarkReturn-0.10) > 1e-9 {
			t.Errorf("Expected benchmark return 0.10, got %f", report.Benchmark.BenchmarkReturn)
		}
		wantRelative := *report.PortfolioMWR - 0.10
		if math.Abs(report.Benchmark.Relative-wantRelative) > 1e-9 {
			t.Errorf("Expected relative performance %f, got %f", wantRelative, report.Benchmark.Relative)
		}
	})

	t.Run("marks benchmark comparison skipped when portfolio return is unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)

		// No transactions, so the portfolio MWR cannot be solved and the
		// requested comparison has nothing to compare against.
		entity := testutil.CreateEntity(t, db, "HoldCo")
		testutil.NewInvestment(entity.ID).WithName("Maple Fund").
			WithValues(10000, 12000).WithPurchaseDate(purchase).Build(t, db)
		testutil.CreateBenchmarkPoint(t, db, "^GSPC", purchase, 4000)
		testutil.CreateBenchmarkPoint(t, db, "^GSPC", asOf, 4400)

		report, err := svc.GetPerformance(asOf, "^GSPC", time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("GetPerformance() returned unexpected error: %v", err)
		}

		if report.PortfolioMWR != nil {
			t.Fatal("Expected no portfolio MWR without transactions")
		}
		if report.Benchmark == nil {
			t.Fatal("Expected a benchmark section marking the skipped comparison")
		}
		if report.Benchmark.Symbol != "^GSPC" {
			t.Errorf("Expected symbol ^GSPC, got %q", report.Benchmark.Symbol)
		}
		if report.Benchmark.Issue == "" {
			t.Error("Expected an issue explaining the skipped comparison")
		}
	})
}
