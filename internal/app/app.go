package app

import (
	"context"
	"fmt"

	"github.com/semmidev/stackvault/internal/adapter/database"
	"github.com/semmidev/stackvault/internal/adapter/notify"
	"github.com/semmidev/stackvault/internal/adapter/restic"
	"github.com/semmidev/stackvault/internal/adapter/storage"
	"github.com/semmidev/stackvault/internal/config"
	"github.com/semmidev/stackvault/internal/domain"
	"github.com/semmidev/stackvault/internal/infrastructure/logger"
	"github.com/semmidev/stackvault/internal/infrastructure/scheduler"
	"github.com/semmidev/stackvault/internal/usecase"
)

type App struct {
	config    *config.Config
	logger    *logger.Logger
	backupUC  *usecase.Backup
	scheduler *scheduler.Scheduler
	schedule  string
}

// New wires one backup job for the given root and label. A non-empty
// schedule switches Run from one-shot to recurring mode.
func New(cfg *config.Config, root, label, schedule string) (*App, error) {
	log, err := logger.New(cfg.LogLevel, logger.JobFile(cfg.LogDir, label))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infof("Starting stackvault (label: %s, repository: %s)", label, cfg.RepositoryPath)

	engine := restic.New(cfg)
	dumper := database.NewMySQL()

	var usage domain.ObjectUsage
	if cfg.HasObjectStoreKeys() {
		s3Usage, err := storage.NewS3(cfg)
		if err != nil {
			log.Warnf("Failed to initialize object store client: %v", err)
		} else {
			usage = s3Usage
			log.Infof("✓ Object store usage reporting enabled (bucket: %s)", cfg.Bucket())
		}
	}

	var notifier domain.Notifier
	if cfg.HasTelegram() {
		tg, err := notify.NewTelegram(&cfg.Telegram)
		if err != nil {
			log.Warnf("Failed to initialize telegram notifier: %v", err)
		} else {
			notifier = tg
			log.Infof("✓ Telegram notifications enabled")
		}
	}

	backupUC := usecase.NewBackup(
		root,
		label,
		cfg.ScratchDir,
		cfg.Bucket(),
		dumper,
		engine,
		usage,
		notifier,
		log,
	)

	return &App{
		config:    cfg,
		logger:    log,
		backupUC:  backupUC,
		scheduler: scheduler.New(),
		schedule:  schedule,
	}, nil
}

// Run executes the job once, or on the configured cron schedule until
// the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.schedule == "" {
		return a.backupUC.Execute(ctx)
	}

	if err := a.scheduler.AddJob(ctx, a.schedule, func(ctx context.Context) error {
		a.logger.Infof("=== Triggered scheduled backup ===")
		return a.backupUC.Execute(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}

	a.scheduler.Start()
	a.logger.Infof("Scheduler started: %s", a.schedule)

	<-ctx.Done()
	return nil
}

func (a *App) Shutdown() {
	a.scheduler.Stop()
	a.logger.Close()
}
