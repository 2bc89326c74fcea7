package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/skuldata/skuldata/internal/app/models"
	appRepos "github.com/skuldata/skuldata/internal/app/repositories"
	"github.com/skuldata/skuldata/internal/scheduler/jobs"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

// CreateDefaultData seeds the persisted beat schedule. Inserts are
// conflict-free so operator edits to existing rows survive restarts.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	taskRepo := appRepos.NewPeriodicTaskRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default schedule entries...")

	defaults := []*appModels.PeriodicTask{
		{
			// Drains PENDING report requests every five minutes; a queued
			// run is discarded if it sits longer than a minute
			Name:            "process-pending-report-requests",
			Job:             jobs.JobProcessPendingReportRequests,
			TriggerType:     appModels.TriggerInterval,
			IntervalSeconds: int64Ptr(300),
			ExpiresSeconds:  int64Ptr(60),
			Enabled:         true,
		},
		{
			// First day of the month at 03:00
			Name:        "generate-term-end-reports",
			Job:         jobs.JobGenerateTermEndReports,
			TriggerType: appModels.TriggerCron,
			CronExpr:    strPtr("0 3 1 * *"),
			Enabled:     true,
		},
		{
			// Daily at 04:30
			Name:        "cleanup-old-reports",
			Job:         jobs.JobCleanupOldReports,
			TriggerType: appModels.TriggerCron,
			CronExpr:    strPtr("30 4 * * *"),
			Enabled:     true,
		},
	}

	var finalErr error
	for _, task := range defaults {
		if err := taskRepo.UpsertTask(ctx, task); err != nil {
			lgr.Error().Err(err).Str("task", task.Name).Msg("Error seeding schedule entry")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
