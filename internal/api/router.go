package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wealthos/wealth-os-backend/internal/advisor"
	"github.com/wealthos/wealth-os-backend/internal/api/handlers"
	custommiddleware "github.com/wealthos/wealth-os-backend/internal/api/middleware"
	"github.com/wealthos/wealth-os-backend/internal/config"
	"github.com/wealthos/wealth-os-backend/internal/service"
)

// Services bundles everything the router needs to wire handlers.
type Services struct {
	System      *service.SystemService
	Entity      *service.EntityService
	Investment  *service.InvestmentService
	Valuation   *service.ValuationService
	Performance *service.PerformanceService
	Risk        *service.RiskService
	Scenario    *service.ScenarioService
	MarketData  *service.MarketDataService
	Import      *service.ImportService
	Advisor     *advisor.Advisor
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System routes stay open so deployment probes work without
		// credentials.
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.APIKey(cfg.Server.APIKey))

			entityHandler := handlers.NewEntityHandler(services.Entity)
			r.Get("/entities", entityHandler.Entities)

			investmentHandler := handlers.NewInvestmentHandler(services.Investment)
			r.Get("/investments", investmentHandler.Investments)

			r.Route("/portfolio", func(r chi.Router) {
				portfolioHandler := handlers.NewPortfolioHandler(services.Valuation, services.Performance, services.Risk)
				r.Get("/overview", portfolioHandler.Overview)
				r.Get("/performance", portfolioHandler.Performance)
				r.Get("/risk", portfolioHandler.Risk)
				r.Get("/allocation", portfolioHandler.Allocation)
			})

			r.Route("/scenarios", func(r chi.Router) {
				scenarioHandler := handlers.NewScenarioHandler(services.Scenario)
				r.Get("/", scenarioHandler.Scenarios)
				r.Post("/run", scenarioHandler.RunScenario)
			})

			marketDataHandler := handlers.NewMarketDataHandler(services.MarketData)
			r.Post("/marketdata/refresh", marketDataHandler.Refresh)

			importHandler := handlers.NewImportHandler(services.Import)
			r.Post("/import/transactions", importHandler.Transactions)

			advisorHandler := handlers.NewAdvisorHandler(services.Advisor, services.Valuation, services.Risk)
			r.Post("/advisor/analysis", advisorHandler.Analysis)
		})
	})

	return r
}
