package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/config"
	pkgcron "github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/cron"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/store"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, st *store.Store, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "prune_sessions",
		Description: "drop expired and revoked login sessions",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			removed, err := st.PruneSessions(time.Now())
			if err != nil {
				cronLogger.Warn("session prune failed", zap.Error(err))
				return err
			}
			cronLogger.Info(fmt.Sprintf("session prune done, removed %d", removed))
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "backup_store",
		Description: "snapshot the data directory to the backups directory",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cronLogger.Info("backing up store...")
			if err := st.Backup(cfg.BackupsDir); err != nil {
				cronLogger.Warn("backup failed", zap.Error(err))
				return err
			}
			cronLogger.Info("backup done")
			return nil
		},
	})
}
