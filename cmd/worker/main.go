package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/skuldata/skuldata/internal/app/repositories"
	"github.com/skuldata/skuldata/internal/bootstrap"
	"github.com/skuldata/skuldata/internal/pkg/logger"
)

// The worker runs the beat scheduler: it reads the persisted schedule,
// dispatches due report jobs to a worker pool and records run results in
// Redis. It shares the database setup with the API binary so either one
// can be started first.
func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Fatal().Err(err).Msg("Failed to setup database")
	}
	defer dbPool.Close()

	redisClient, err := bootstrap.SetupRedis(cfg, lgr)
	if err != nil {
		lgr.Fatal().Err(err).Msg("Failed to setup Redis")
	}
	defer redisClient.Close()

	repos := repositories.NewRepositories(dbPool)
	sched := bootstrap.BuildScheduler(cfg, repos, redisClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lgr.Fatal().Err(err).Msg("Scheduler terminated with error")
	}

	lgr.Info().Msg("Worker stopped")
}
