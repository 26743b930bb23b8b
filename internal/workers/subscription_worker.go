package workers

import (
	"context"
	"time"

	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/repositories"
)

// SubscriptionWorker marks overdue agent subscriptions as expired on an
// hourly sweep.
type SubscriptionWorker struct {
	subRepo  repositories.SubscriptionRepository
	interval time.Duration
}

func NewSubscriptionWorker(subRepo repositories.SubscriptionRepository) *SubscriptionWorker {
	return &SubscriptionWorker{subRepo: subRepo, interval: time.Hour}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			expired, err := w.subRepo.ExpireOverdue()
			if err != nil {
				logger.Error("subscription expiry sweep failed", "error", err)
				continue
			}
			if expired > 0 {
				logger.Info("subscriptions expired", "count", expired)
			}
		}
	}
}
