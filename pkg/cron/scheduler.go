// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/archive"
	"github.com/FACorreiaa/thai-statement-engine/pkg/metrics"
)

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron    *cron.Cron
	repo    archive.ArchiveRepository
	metrics *metrics.Metrics
	logger  *slog.Logger

	schedule string
	maxAge   time.Duration
}

// NewScheduler creates the retention scheduler for the analysis archive.
func NewScheduler(repo archive.ArchiveRepository, m *metrics.Metrics, schedule string, maxAge time.Duration, logger *slog.Logger) *Scheduler {
	// Create cron with seconds disabled (standard 5-field format)
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:     c,
		repo:     repo,
		metrics:  m,
		logger:   logger,
		schedule: schedule,
		maxAge:   maxAge,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweepArchive)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
		slog.String("schedule", s.schedule),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the retention sweep (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.sweepArchive()
}

// sweepArchive deletes archived analyses older than the retention window.
func (s *Scheduler) sweepArchive() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.maxAge)
	s.logger.Info("starting archive retention sweep",
		slog.Time("cutoff", cutoff),
	)

	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("archive retention sweep failed", slog.Any("error", err))
		return
	}

	if s.metrics != nil {
		s.metrics.RetentionDeleted.Add(float64(deleted))
	}
	s.logger.Info("archive retention sweep completed",
		slog.Int64("analyses_deleted", deleted),
	)
}
