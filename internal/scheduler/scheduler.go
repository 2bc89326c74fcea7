package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/pkg/logger"
	"github.com/skuldata/skuldata/internal/scheduler/jobs"
)

// Run is one dispatched unit of work. Workers discard runs that sit in the
// queue past their expiry instead of executing them late.
type Run struct {
	ID         string
	Task       string // Schedule entry name
	Job        string // Handler name
	EnqueuedAt time.Time
	ExpiresAt  *time.Time
}

// Options configures the scheduler
type Options struct {
	Workers        int
	QueueSize      int
	ReloadInterval time.Duration // How often the persisted schedule is re-read
	TaskTimeLimit  time.Duration // Per-run execution budget
	TickInterval   time.Duration // Beat resolution; defaults to one second
}

// TaskStore is the slice of the schedule repository the beat loop needs
type TaskStore interface {
	GetEnabledTasks(ctx context.Context) ([]*models.PeriodicTask, error)
	TouchLastRun(ctx context.Context, name string, at time.Time) error
}

// Scheduler reads the persisted beat schedule and dispatches due runs
// through a bounded queue into a worker pool.
type Scheduler struct {
	taskRepo TaskStore
	registry *jobs.Registry
	results  *ResultStore
	opts     Options

	queue   chan Run
	entries map[string]*entry
	wg      sync.WaitGroup
}

// New creates a Scheduler
func New(taskRepo TaskStore, registry *jobs.Registry, results *ResultStore, opts Options) *Scheduler {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 16
	}
	if opts.ReloadInterval <= 0 {
		opts.ReloadInterval = time.Minute
	}
	if opts.TaskTimeLimit <= 0 {
		opts.TaskTimeLimit = 30 * time.Minute
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}

	return &Scheduler{
		taskRepo: taskRepo,
		registry: registry,
		results:  results,
		opts:     opts,
		queue:    make(chan Run, opts.QueueSize),
		entries:  make(map[string]*entry),
	}
}

// Start runs the beat loop and worker pool until the context is cancelled,
// then drains the queue and returns.
func (s *Scheduler) Start(ctx context.Context) error {
	logger.Info().
		Int("workers", s.opts.Workers).
		Int("queueSize", s.opts.QueueSize).
		Dur("reloadInterval", s.opts.ReloadInterval).
		Msg("Starting scheduler")

	for i := 0; i < s.opts.Workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	if err := s.reload(ctx); err != nil {
		logger.Error().Err(err).Msg("Initial schedule load failed")
	}

	tick := time.NewTicker(s.opts.TickInterval)
	defer tick.Stop()
	reload := time.NewTicker(s.opts.ReloadInterval)
	defer reload.Stop()

	for {
		select {
		case <-ctx.Done():
			close(s.queue)
			s.wg.Wait()
			logger.Info().Msg("Scheduler stopped")
			return ctx.Err()
		case <-reload.C:
			if err := s.reload(ctx); err != nil {
				logger.Error().Err(err).Msg("Schedule reload failed")
			}
		case now := <-tick.C:
			s.dispatchDue(ctx, now)
		}
	}
}

// reload re-reads enabled schedule entries from the database. Entries whose
// row changed get a freshly computed fire time; untouched entries keep theirs.
func (s *Scheduler) reload(ctx context.Context) error {
	tasks, err := s.taskRepo.GetEnabledTasks(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	fresh := make(map[string]*entry, len(tasks))
	for _, task := range tasks {
		if existing, ok := s.entries[task.Name]; ok && existing.task.UpdatedAt.Equal(task.UpdatedAt) {
			fresh[task.Name] = existing
			continue
		}

		e, err := newEntry(task, now)
		if err != nil {
			logger.Error().Err(err).Str("task", task.Name).Msg("Skipping invalid schedule entry")
			continue
		}
		fresh[task.Name] = e
		logger.Debug().Str("task", task.Name).Time("next", e.next).Msg("Schedule entry loaded")
	}

	s.entries = fresh
	return nil
}

// dispatchDue enqueues a run for every entry that is due at the tick instant
func (s *Scheduler) dispatchDue(ctx context.Context, now time.Time) {
	for _, e := range s.entries {
		if !e.due(now) {
			continue
		}

		run := Run{
			ID:         uuid.New().String(),
			Task:       e.task.Name,
			Job:        e.task.Job,
			EnqueuedAt: now,
			ExpiresAt:  e.expiresAt(now),
		}

		select {
		case s.queue <- run:
			logger.Info().Str("task", run.Task).Str("runID", run.ID).Msg("Run dispatched")
		default:
			// A drop under queue pressure must stay introspectable, so it is
			// recorded like an expired run rather than just logged
			logger.Warn().Str("task", run.Task).Str("runID", run.ID).Msg("Queue full, run dropped")
			s.saveResult(&TaskResult{
				RunID:      run.ID,
				Task:       run.Task,
				Job:        run.Job,
				Status:     StatusRevoked,
				Error:      "queue full, run dropped before execution",
				EnqueuedAt: now,
				StartedAt:  now,
				FinishedAt: now,
			})
		}

		e.advance(now)
		if err := s.taskRepo.TouchLastRun(ctx, e.task.Name, now); err != nil {
			logger.Warn().Err(err).Str("task", e.task.Name).Msg("Failed to stamp last run")
		}
		// Keep the in-memory copy aligned so reloads don't re-fire
		lastRun := now
		e.task.LastRunAt = &lastRun
	}
}

// worker consumes the run queue until it is closed
func (s *Scheduler) worker(ctx context.Context, id int) {
	defer s.wg.Done()
	logger.Debug().Int("worker", id).Msg("Worker started")

	for run := range s.queue {
		s.execute(ctx, run)
	}
}

// execute runs one unit of work, enforcing expiry discard and the per-run
// time budget, and records the outcome in the result backend.
func (s *Scheduler) execute(ctx context.Context, run Run) {
	result := &TaskResult{
		RunID:      run.ID,
		Task:       run.Task,
		Job:        run.Job,
		EnqueuedAt: run.EnqueuedAt,
		StartedAt:  time.Now(),
	}

	// A run that sat in the queue past its expiry is discarded, not executed
	if run.ExpiresAt != nil && time.Now().After(*run.ExpiresAt) {
		result.Status = StatusRevoked
		result.Error = "run expired before execution"
		result.FinishedAt = time.Now()
		logger.Warn().Str("task", run.Task).Str("runID", run.ID).Msg("Run expired, discarding")
		s.saveResult(result)
		return
	}

	handler, err := s.registry.Resolve(run.Job)
	if err != nil {
		result.Status = StatusFailure
		result.Error = err.Error()
		result.FinishedAt = time.Now()
		logger.Error().Err(err).Str("task", run.Task).Msg("Run failed")
		s.saveResult(result)
		return
	}

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.TaskTimeLimit)
	payload, err := handler(runCtx)
	cancel()

	result.FinishedAt = time.Now()
	if err != nil {
		result.Status = StatusFailure
		result.Error = err.Error()
		logger.Error().Err(err).Str("task", run.Task).Str("runID", run.ID).Msg("Run failed")
	} else {
		result.Status = StatusSuccess
		result.Result = payload
		logger.Info().Str("task", run.Task).Str("runID", run.ID).
			Dur("took", result.FinishedAt.Sub(result.StartedAt)).
			Msg("Run completed")
	}

	s.saveResult(result)
}

func (s *Scheduler) saveResult(result *TaskResult) {
	if s.results == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.results.Save(ctx, result); err != nil {
		logger.Error().Err(err).Str("runID", result.RunID).Msg("Failed to store run result")
	}
}
