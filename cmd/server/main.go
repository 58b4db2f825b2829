package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/advisor"
	"github.com/wealthos/wealth-os-backend/internal/api"
	"github.com/wealthos/wealth-os-backend/internal/config"
	"github.com/wealthos/wealth-os-backend/internal/database"
	"github.com/wealthos/wealth-os-backend/internal/marketdata"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
	"github.com/wealthos/wealth-os-backend/internal/scheduler"
	"github.com/wealthos/wealth-os-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Value encryption for stored amounts (disabled without a key)
	cipher, err := model.NewValueCipher(cfg.Database.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to load encryption key: %v", err)
	}

	// Create repositories
	entityRepo := repository.NewEntityRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db, cipher)
	transactionRepo := repository.NewTransactionRepository(db)
	rateRepo := repository.NewRateRepository(db)
	benchmarkRepo := repository.NewBenchmarkRepository(db)
	allocationRepo := repository.NewAllocationRepository(db)

	// Create services
	provider := marketdata.NewProvider()
	snapshotService := service.NewSnapshotService(investmentRepo, entityRepo, rateRepo, cfg.Policy.BaseCurrency)
	marketDataService := service.NewMarketDataService(
		provider, investmentRepo, rateRepo, benchmarkRepo,
		cfg.Policy.BaseCurrency, cfg.Policy.Benchmarks,
	)

	services := api.Services{
		System:     service.NewSystemService(db),
		Entity:     service.NewEntityService(entityRepo),
		Investment: service.NewInvestmentService(investmentRepo, entityRepo),
		Valuation:  service.NewValuationService(snapshotService),
		Performance: service.NewPerformanceService(
			investmentRepo, transactionRepo, entityRepo, benchmarkRepo, snapshotService,
		),
		Risk: service.NewRiskService(
			snapshotService, allocationRepo,
			cfg.Policy.ConcentrationThreshold, cfg.Policy.IlliquidCeiling, cfg.Policy.RebalanceThreshold,
		),
		Scenario:   service.NewScenarioService(snapshotService),
		MarketData: marketDataService,
		Import:     service.NewImportService(investmentRepo, transactionRepo),
		Advisor:    advisor.New(cfg.Advisor.GeminiAPIKey, cfg.Advisor.Model),
	}

	// Start background jobs
	jobs := scheduler.New(marketDataService)
	if err := jobs.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer jobs.Stop()

	// Create router
	router := api.NewRouter(services, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
