package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Watcher periodically re-runs the email pipeline as a safety net for
// notifications the webhook never received. Ticks are collapsed through
// singleflight: if a sync is still in flight when the next tick fires, the
// tick joins it instead of starting a second one.
type Watcher struct {
	Processor *Processor
	Owner     string
	Interval  time.Duration
	Logger    *zap.Logger

	group singleflight.Group
}

func NewWatcher(p *Processor, owner string, interval time.Duration, logger *zap.Logger) *Watcher {
	return &Watcher{Processor: p, Owner: owner, Interval: interval, Logger: logger}
}

// Start launches the sync loop. It returns immediately; the loop stops when
// ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()

		w.sync(ctx)
		for {
			select {
			case <-ticker.C:
				w.sync(ctx)
			case <-ctx.Done():
				w.Logger.Info("sync watcher stopped")
				return
			}
		}
	}()
}

func (w *Watcher) sync(ctx context.Context) {
	_, err, shared := w.group.Do("sync", func() (interface{}, error) {
		return nil, w.Processor.ProcessLatest(ctx, w.Owner)
	})
	if shared {
		w.Logger.Debug("sync tick joined an in-flight run")
	}
	if err != nil {
		w.Logger.Error("periodic sync failed", zap.Error(err))
	}
}
