package cron

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops state that has been idle for too long and reports how many
// entries it removed.
type Sweeper interface {
	Sweep() int
}

// StartTabSweeper runs s.Sweep every interval until ctx is done. The
// returned channel is closed once the loop has stopped.
func StartTabSweeper(ctx context.Context, s Sweeper, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("Tab sweeper started", zap.Duration("interval", interval))
		for {
			select {
			case <-ctx.Done():
				logger.Info("Tab sweeper stopped")
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					logger.Debug("Dropped idle tabs", zap.Int("count", n))
				}
			}
		}
	}()
	return done
}
