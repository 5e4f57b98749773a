package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads the cached equipment catalog and reports how many rows it stored
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
	log       *zap.Logger
}

func NewScheduler(refresher Refresher, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		refresher: refresher,
		timeout:   30 * time.Second,
		log:       log,
	}
}

// Start registers the catalog refresh job under spec and starts the cron loop.
// spec accepts six-field expressions and descriptors such as "@every 10m".
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RefreshCatalog); err != nil {
		return fmt.Errorf("schedule catalog refresh %q: %w", spec, err)
	}

	s.log.Info("cron scheduler started", zap.String("catalog_refresh", spec))
	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("cron scheduler stop timed out")
	}
}

// RefreshCatalog runs one refresh. Failures are logged; the cache keeps serving
// the previous snapshot until its TTL runs out.
func (s *Scheduler) RefreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.log.Error("catalog refresh failed", zap.Error(err))
		return
	}
	s.log.Info("catalog refreshed", zap.Int("items", n), zap.Duration("took", time.Since(start)))
}
