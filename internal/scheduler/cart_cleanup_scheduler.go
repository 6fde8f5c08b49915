package scheduler

import (
	"context"
	"time"

	"github.com/norsbakery/storefront/internal/app/repository"
	"github.com/norsbakery/storefront/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartCleanupScheduler deletes cart snapshots that have not been saved for
// longer than maxAge.
type CartCleanupScheduler struct {
	cron   *cron.Cron
	spec   string
	purger repository.CartSnapshotPurger
	maxAge time.Duration
	now    func() time.Time
}

func NewCartCleanupScheduler(purger repository.CartSnapshotPurger, spec string, maxAge time.Duration) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:   cron.New(),
		spec:   spec,
		purger: purger,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Start registers the cleanup job and starts the cron runner.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			logger.Error("Scheduled cart cleanup failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started", map[string]interface{}{
		"spec":    s.spec,
		"max_age": s.maxAge.String(),
	})
	return nil
}

// RunOnce purges stale snapshots immediately.
func (s *CartCleanupScheduler) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.maxAge)
	deleted, err := s.purger.DeleteStaleSnapshots(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	logger.Info("Stale cart snapshots purged", map[string]interface{}{
		"cutoff":  cutoff,
		"deleted": deleted,
	})
	return deleted, nil
}

// Stop waits for a running job to finish.
func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Cart cleanup scheduler stopped")
}
