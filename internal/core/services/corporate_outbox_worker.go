package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
)

// StartCorporateOutboxWorker replays deferred corporate accruals on a fixed
// tick until ctx is cancelled. Call it from main in its own goroutine.
func StartCorporateOutboxWorker(ctx context.Context, corporate portssvc.CorporateSvcFacade, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("corporate outbox worker started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("corporate outbox worker stopped")
			return
		case <-ticker.C:
			processed, err := corporate.ProcessOutboxBatch(ctx, time.Now().UTC())
			if err != nil {
				logger.Error("outbox batch failed", "error", err)
				continue
			}
			if processed > 0 {
				logger.Info("outbox batch processed", "entries", processed)
			}
		}
	}
}
