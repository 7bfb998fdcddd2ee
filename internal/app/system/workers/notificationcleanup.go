// internal/app/system/workers/notificationcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	notificationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/notifications"
	"go.uber.org/zap"
)

// NotificationCleanup is a background worker that soft-deletes read
// notifications once they age out, keeping per-user feeds small.
type NotificationCleanup struct {
	notifications *notificationstore.Store
	log           *zap.Logger
	interval      time.Duration
	maxAge        time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

// NewNotificationCleanup creates a cleanup worker.
//
// Parameters:
//   - store: the notifications store
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 1 hour)
//   - maxAge: how old a read notification must be before deletion (e.g., 30 days)
func NewNotificationCleanup(store *notificationstore.Store, logger *zap.Logger, interval, maxAge time.Duration) *NotificationCleanup {
	return &NotificationCleanup{
		notifications: store,
		log:           logger,
		interval:      interval,
		maxAge:        maxAge,
		stopCh:        make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *NotificationCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("notification cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("max_age", w.maxAge))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *NotificationCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("notification cleanup worker stopped")
}

func (w *NotificationCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *NotificationCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.notifications.SoftDeleteReadOlderThan(ctx, w.maxAge)
	if err != nil {
		w.log.Error("failed to clean up read notifications", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("cleaned up read notifications", zap.Int64("count", count))
	}
}
