package workers

import (
	"context"
	"time"

	"nibash_backend/internal/config"
	"nibash_backend/internal/logger"
	"nibash_backend/internal/repositories"
)

// PaymentWorker sweeps pending payments whose gateway session can no longer
// complete and marks them failed.
type PaymentWorker struct {
	paymentRepo repositories.PaymentRepository
	staleAfter  time.Duration
}

func NewPaymentWorker(paymentRepo repositories.PaymentRepository, cfg *config.Config) *PaymentWorker {
	return &PaymentWorker{
		paymentRepo: paymentRepo,
		staleAfter:  time.Duration(cfg.Payment.StalePendingHours) * time.Hour,
	}
}

func (w *PaymentWorker) Start(ctx context.Context) {
	go w.sweepStalePayments(ctx)
}

func (w *PaymentWorker) sweepStalePayments(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("payment worker stopped")
			return
		case <-ticker.C:
			count, err := w.paymentRepo.MarkStalePendingFailed(w.staleAfter)
			if err != nil {
				logger.Error("failed to sweep stale payments", "error", err)
			} else if count > 0 {
				logger.Info("marked stale pending payments failed", "count", count)
			}
		}
	}
}
