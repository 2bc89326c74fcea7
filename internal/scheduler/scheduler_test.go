package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/scheduler/jobs"
)

type fakeTaskStore struct {
	tasks   []*models.PeriodicTask
	touched []string
}

func (f *fakeTaskStore) GetEnabledTasks(ctx context.Context) ([]*models.PeriodicTask, error) {
	return f.tasks, nil
}

func (f *fakeTaskStore) TouchLastRun(ctx context.Context, name string, at time.Time) error {
	f.touched = append(f.touched, name)
	return nil
}

func TestExecuteRunsHandler(t *testing.T) {
	reg := jobs.NewRegistry()
	invoked := false
	reg.Register("test.job", func(ctx context.Context) (interface{}, error) {
		invoked = true
		return "ok", nil
	})

	s := New(nil, reg, nil, Options{})
	s.execute(context.Background(), Run{
		ID:         "run-1",
		Task:       "test-task",
		Job:        "test.job",
		EnqueuedAt: time.Now(),
	})

	assert.True(t, invoked)
}

func TestExecuteDiscardsExpiredRun(t *testing.T) {
	reg := jobs.NewRegistry()
	invoked := false
	reg.Register("test.job", func(ctx context.Context) (interface{}, error) {
		invoked = true
		return nil, nil
	})

	expired := time.Now().Add(-time.Minute)
	s := New(nil, reg, nil, Options{})
	s.execute(context.Background(), Run{
		ID:         "run-2",
		Task:       "test-task",
		Job:        "test.job",
		EnqueuedAt: expired.Add(-time.Minute),
		ExpiresAt:  &expired,
	})

	// A run that sat past its expiry must never reach the handler
	assert.False(t, invoked)
}

func TestExecuteHandlerError(t *testing.T) {
	reg := jobs.NewRegistry()
	reg.Register("test.job", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("boom")
	})

	s := New(nil, reg, nil, Options{})
	// Must not panic; the failure is recorded, not propagated
	s.execute(context.Background(), Run{
		ID:         "run-3",
		Task:       "test-task",
		Job:        "test.job",
		EnqueuedAt: time.Now(),
	})
}

func TestExecuteUnknownJob(t *testing.T) {
	s := New(nil, jobs.NewRegistry(), nil, Options{})
	s.execute(context.Background(), Run{
		ID:         "run-4",
		Task:       "test-task",
		Job:        "no.such.job",
		EnqueuedAt: time.Now(),
	})
}

func TestDispatchDueRecordsDroppedRuns(t *testing.T) {
	mr, store := setupResultStore(t, time.Hour)

	taskStore := &fakeTaskStore{}
	s := New(taskStore, jobs.NewRegistry(), store, Options{QueueSize: 1})

	// Occupy the only queue slot so the dispatch cannot enqueue
	s.queue <- Run{ID: "occupier"}

	now := time.Now()
	task := &models.PeriodicTask{
		Name:            "drain-requests",
		Job:             jobs.JobProcessPendingReportRequests,
		TriggerType:     models.TriggerInterval,
		IntervalSeconds: int64Ptr(60),
		LastRunAt:       timePtr(now.Add(-time.Hour)),
	}
	e, err := newEntry(task, now)
	require.NoError(t, err)
	s.entries[task.Name] = e

	s.dispatchDue(context.Background(), now)

	// The dropped run leaves a REVOKED record in the result backend
	keys := mr.Keys()
	require.Len(t, keys, 1)
	result, err := store.Get(context.Background(), strings.TrimPrefix(keys[0], resultKeyPrefix))
	require.NoError(t, err)
	assert.Equal(t, StatusRevoked, result.Status)
	assert.Contains(t, result.Error, "queue full")

	// The schedule still advances so the slot is not re-fired on the next tick
	assert.False(t, e.due(now))
	assert.Equal(t, []string{"drain-requests"}, taskStore.touched)
}

func TestReloadKeepsUnchangedEntries(t *testing.T) {
	updated := time.Now()
	taskStore := &fakeTaskStore{tasks: []*models.PeriodicTask{{
		Name:            "drain-requests",
		Job:             jobs.JobProcessPendingReportRequests,
		TriggerType:     models.TriggerInterval,
		IntervalSeconds: int64Ptr(300),
		UpdatedAt:       updated,
	}}}
	s := New(taskStore, jobs.NewRegistry(), nil, Options{})

	require.NoError(t, s.reload(context.Background()))
	first := s.entries["drain-requests"].next

	// An unchanged row keeps its computed fire time across reloads
	require.NoError(t, s.reload(context.Background()))
	assert.Equal(t, first, s.entries["drain-requests"].next)

	// An edited row gets a freshly computed one
	taskStore.tasks = []*models.PeriodicTask{{
		Name:            "drain-requests",
		Job:             jobs.JobProcessPendingReportRequests,
		TriggerType:     models.TriggerInterval,
		IntervalSeconds: int64Ptr(60),
		UpdatedAt:       updated.Add(time.Minute),
	}}
	require.NoError(t, s.reload(context.Background()))
	assert.NotEqual(t, first, s.entries["drain-requests"].next)
}

func TestNewAppliesDefaults(t *testing.T) {
	s := New(nil, jobs.NewRegistry(), nil, Options{})

	assert.Equal(t, 1, s.opts.Workers)
	assert.Equal(t, 16, s.opts.QueueSize)
	assert.Equal(t, time.Minute, s.opts.ReloadInterval)
	assert.Equal(t, 30*time.Minute, s.opts.TaskTimeLimit)
	assert.Equal(t, time.Second, s.opts.TickInterval)
}
