package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuldata/skuldata/internal/app/models"
)

func int64Ptr(v int64) *int64        { return &v }
func strPtr(v string) *string        { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestNewEntryIntervalFirstFire(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	task := &models.PeriodicTask{
		Name:            "drain-requests",
		TriggerType:     models.TriggerInterval,
		IntervalSeconds: int64Ptr(300),
	}

	e, err := newEntry(task, now)
	require.NoError(t, err)

	// Never ran before: first fire is one full interval out
	assert.Equal(t, now.Add(5*time.Minute), e.next)
	assert.False(t, e.due(now))
	assert.True(t, e.due(now.Add(5*time.Minute)))
}

func TestNewEntryIntervalResumesFromLastRun(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	task := &models.PeriodicTask{
		Name:            "drain-requests",
		TriggerType:     models.TriggerInterval,
		IntervalSeconds: int64Ptr(300),
		LastRunAt:       timePtr(now.Add(-2 * time.Minute)),
	}

	e, err := newEntry(task, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(3*time.Minute), e.next)
}

func TestNewEntryIntervalOverdueFiresImmediately(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	// The worker was down for an hour; the entry should be due right away
	task := &models.PeriodicTask{
		Name:            "drain-requests",
		TriggerType:     models.TriggerInterval,
		IntervalSeconds: int64Ptr(300),
		LastRunAt:       timePtr(now.Add(-time.Hour)),
	}

	e, err := newEntry(task, now)
	require.NoError(t, err)
	assert.True(t, e.due(now))
}

func TestNewEntryCron(t *testing.T) {
	// Just after the monthly term-end slot: next fire is day 1 of next month
	now := time.Date(2026, time.March, 1, 3, 0, 1, 0, time.UTC)

	task := &models.PeriodicTask{
		Name:        "term-end",
		TriggerType: models.TriggerCron,
		CronExpr:    strPtr("0 3 1 * *"),
	}

	e, err := newEntry(task, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.April, 1, 3, 0, 0, 0, time.UTC), e.next)
}

func TestNewEntryCronDaily(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	task := &models.PeriodicTask{
		Name:        "cleanup",
		TriggerType: models.TriggerCron,
		CronExpr:    strPtr("30 4 * * *"),
	}

	e, err := newEntry(task, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 11, 4, 30, 0, 0, time.UTC), e.next)
}

func TestNewEntryRejectsInvalidTasks(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		task *models.PeriodicTask
	}{
		{"interval without seconds", &models.PeriodicTask{Name: "a", TriggerType: models.TriggerInterval}},
		{"interval with zero seconds", &models.PeriodicTask{Name: "b", TriggerType: models.TriggerInterval, IntervalSeconds: int64Ptr(0)}},
		{"cron without expression", &models.PeriodicTask{Name: "c", TriggerType: models.TriggerCron}},
		{"cron with bad expression", &models.PeriodicTask{Name: "d", TriggerType: models.TriggerCron, CronExpr: strPtr("not a cron")}},
		{"unknown trigger", &models.PeriodicTask{Name: "e", TriggerType: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newEntry(tt.task, now)
			assert.Error(t, err)
		})
	}
}

func TestEntryAdvance(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	task := &models.PeriodicTask{
		Name:            "drain-requests",
		TriggerType:     models.TriggerInterval,
		IntervalSeconds: int64Ptr(60),
		LastRunAt:       timePtr(now.Add(-time.Hour)),
	}

	e, err := newEntry(task, now)
	require.NoError(t, err)
	require.True(t, e.due(now))

	e.advance(now)
	assert.False(t, e.due(now))
	assert.Equal(t, now.Add(time.Minute), e.next)
}

func TestEntryExpiresAt(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	withExpiry := &entry{task: &models.PeriodicTask{ExpiresSeconds: int64Ptr(60)}}
	deadline := withExpiry.expiresAt(now)
	require.NotNil(t, deadline)
	assert.Equal(t, now.Add(time.Minute), *deadline)

	withoutExpiry := &entry{task: &models.PeriodicTask{}}
	assert.Nil(t, withoutExpiry.expiresAt(now))
}
