// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wealthos/wealth-os-backend/internal/service"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron              *cron.Cron
	marketDataService *service.MarketDataService
}

// New creates a Scheduler with the provided dependencies.
func New(marketDataService *service.MarketDataService) *Scheduler {
	return &Scheduler{
		cron:              cron.New(),
		marketDataService: marketDataService,
	}
}

// Start registers the jobs and starts the cron runner in its own goroutine.
func (s *Scheduler) Start() error {
	// Daily market data refresh after North American close.
	if _, err := s.cron.AddFunc("0 22 * * *", s.refreshMarketData); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("scheduler started")
	return nil
}

// Stop stops the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("scheduler stopped")
}

func (s *Scheduler) refreshMarketData() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.marketDataService.Refresh(ctx)
	if err != nil {
		log.Printf("scheduled market data refresh failed: %v", err)
		return
	}
	if len(result.Failures) > 0 {
		log.Printf("scheduled market data refresh completed with %d failures", len(result.Failures))
	}
}
