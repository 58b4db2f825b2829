package testutil

import (
	"database/sql"
	"testing"

	"github.com/wealthos/wealth-os-backend/internal/marketdata"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
	"github.com/wealthos/wealth-os-backend/internal/service"
)

// TestBaseCurrency is the reporting currency used by test services.
const TestBaseCurrency = "CAD"

func newTestCipher(t *testing.T) *model.ValueCipher {
	t.Helper()

	cipher, err := model.NewValueCipher("")
	if err != nil {
		t.Fatalf("Failed to create value cipher: %v", err)
	}
	return cipher
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db, newTestCipher(t))
	entityRepo := repository.NewEntityRepository(db)
	rateRepo := repository.NewRateRepository(db)

	return service.NewSnapshotService(
		investmentRepo,
		entityRepo,
		rateRepo,
		TestBaseCurrency,
	)
}

func NewTestValuationService(t *testing.T, db *sql.DB) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(NewTestSnapshotService(t, db))
}

func NewTestPerformanceService(t *testing.T, db *sql.DB) *service.PerformanceService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db, newTestCipher(t))
	transactionRepo := repository.NewTransactionRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	benchmarkRepo := repository.NewBenchmarkRepository(db)

	return service.NewPerformanceService(
		investmentRepo,
		transactionRepo,
		entityRepo,
		benchmarkRepo,
		NewTestSnapshotService(t, db),
	)
}

func NewTestRiskService(t *testing.T, db *sql.DB) *service.RiskService {
	t.Helper()

	allocationRepo := repository.NewAllocationRepository(db)

	return service.NewRiskService(
		NewTestSnapshotService(t, db),
		allocationRepo,
		0.25,
		0.50,
		0.05,
	)
}

func NewTestScenarioService(t *testing.T, db *sql.DB) *service.ScenarioService {
	t.Helper()

	return service.NewScenarioService(NewTestSnapshotService(t, db))
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db, newTestCipher(t))
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewImportService(
		investmentRepo,
		transactionRepo,
	)
}

func NewTestMarketDataService(t *testing.T, db *sql.DB, source marketdata.Source) *service.MarketDataService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db, newTestCipher(t))
	rateRepo := repository.NewRateRepository(db)
	benchmarkRepo := repository.NewBenchmarkRepository(db)

	return service.NewMarketDataService(
		source,
		investmentRepo,
		rateRepo,
		benchmarkRepo,
		TestBaseCurrency,
		[]string{"^GSPC"},
	)
}

func NewTestEntityService(t *testing.T, db *sql.DB) *service.EntityService {
	t.Helper()

	return service.NewEntityService(repository.NewEntityRepository(db))
}

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db, newTestCipher(t))
	entityRepo := repository.NewEntityRepository(db)

	return service.NewInvestmentService(investmentRepo, entityRepo)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}
