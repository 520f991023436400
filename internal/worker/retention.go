package worker

import (
	"context"
	"log/slog"
	"time"
)

// Purger is satisfied by the audit service.
type Purger interface {
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

// RetentionWorker re-runs the audit retention purge on a fixed interval.
// The purge itself is idempotent, so overlapping deployments are harmless.
type RetentionWorker struct {
	ticker *time.Ticker
	purger Purger
	days   int
	done   chan struct{}
}

func NewRetentionWorker(interval time.Duration, purger Purger, days int) *RetentionWorker {
	return &RetentionWorker{
		ticker: time.NewTicker(interval),
		purger: purger,
		days:   days,
		done:   make(chan struct{}),
	}
}

func (w *RetentionWorker) Start() {
	slog.Info("retention worker started", "days", w.days)
	go func() {
		for {
			select {
			case <-w.done:
				return
			case <-w.ticker.C:
				deleted, err := w.purger.PurgeOlderThan(context.Background(), w.days)
				if err != nil {
					slog.Error("retention purge failed", "err", err)
					continue
				}
				slog.Info("retention purge completed", "deleted", deleted, "days", w.days)
			}
		}
	}()
}

func (w *RetentionWorker) Stop() {
	w.ticker.Stop()
	close(w.done)
}
