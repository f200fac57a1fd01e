package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/archive"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/audit"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/service"
	"github.com/FACorreiaa/thai-statement-engine/pkg/config"
	"github.com/FACorreiaa/thai-statement-engine/pkg/cron"
	"github.com/FACorreiaa/thai-statement-engine/pkg/db"
	"github.com/FACorreiaa/thai-statement-engine/pkg/metrics"
	"github.com/FACorreiaa/thai-statement-engine/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	DB          *db.DB
	ArchiveRepo archive.ArchiveRepository
	AuditIndex  *audit.Index
	FileStorage storage.Storage
	Scheduler   *cron.Scheduler

	Pipeline *service.Service
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	if cfg.Database.Enabled {
		if err := deps.initDatabase(); err != nil {
			return nil, fmt.Errorf("failed to init database: %w", err)
		}
	}

	if err := deps.initCollaborators(); err != nil {
		return nil, fmt.Errorf("failed to init collaborators: %w", err)
	}

	deps.initPipeline()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the archive database and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.ArchiveRepo = archive.NewRepository(database.Pool)
	d.Scheduler = cron.NewScheduler(
		d.ArchiveRepo,
		d.Metrics,
		d.Config.Retention.Schedule,
		d.Config.Retention.MaxAge,
		d.Logger,
	)

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initCollaborators initializes the audit index and the artifact store
func (d *Dependencies) initCollaborators() error {
	idx, err := audit.NewIndex(d.Config.Audit.IndexPath)
	if err != nil {
		return fmt.Errorf("failed to open audit index: %w", err)
	}
	d.AuditIndex = idx

	store, err := storage.New(d.Config.Reports.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to init artifact storage: %w", err)
	}
	d.FileStorage = store

	return nil
}

// initPipeline wires the statement pipeline from the collaborators
func (d *Dependencies) initPipeline() {
	svc := service.New(service.SalaryConfig(d.Config.Engine), d.Logger).
		WithMetrics(d.Metrics).
		WithAuditIndex(d.AuditIndex).
		WithStorage(d.FileStorage).
		WithMasking(d.Config.Reports.MaskPII).
		WithPDFPassword(d.Config.Watch.PDFPassword).
		WithRateLimit(d.Config.Engine.StatementsPerSecond, d.Config.Engine.Burst)

	if d.ArchiveRepo != nil {
		svc = svc.WithArchive(d.ArchiveRepo)
	}

	d.Pipeline = svc
}

// Close releases all held resources in reverse initialization order
func (d *Dependencies) Close() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.AuditIndex != nil {
		if err := d.AuditIndex.Close(); err != nil {
			d.Logger.Warn("closing audit index", slog.Any("error", err))
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
