package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupResultStore(t *testing.T, expires time.Duration) (*miniredis.Miniredis, *ResultStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewResultStore(client, expires)
}

func TestResultStoreSaveAndGet(t *testing.T) {
	_, store := setupResultStore(t, time.Hour)
	ctx := context.Background()

	saved := &TaskResult{
		RunID:  "run-1",
		Task:   "process-pending-report-requests",
		Job:    "reports.process_pending_report_requests",
		Status: StatusSuccess,
		Result: map[string]interface{}{"processed": float64(3), "failed": float64(1)},
	}
	require.NoError(t, store.Save(ctx, saved))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, saved.Task, got.Task)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, saved.Result, got.Result)
}

func TestResultStoreGetMissing(t *testing.T) {
	_, store := setupResultStore(t, time.Hour)

	_, err := store.Get(context.Background(), "never-ran")
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestResultStoreResultsExpire(t *testing.T) {
	mr, store := setupResultStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &TaskResult{RunID: "run-2", Status: StatusRevoked}))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "run-2")
	assert.ErrorIs(t, err, ErrResultNotFound)
}
