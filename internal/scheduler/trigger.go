package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/skuldata/skuldata/internal/app/models"
)

// CronParser accepts standard five-field cron expressions
var CronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// entry is one live schedule entry with its computed next fire time
type entry struct {
	task  *models.PeriodicTask
	sched cron.Schedule // Set for cron triggers
	next  time.Time
}

// newEntry builds a live entry from a persisted task, computing the first
// fire time relative to now.
func newEntry(task *models.PeriodicTask, now time.Time) (*entry, error) {
	e := &entry{task: task}

	switch task.TriggerType {
	case models.TriggerInterval:
		if task.IntervalSeconds == nil || *task.IntervalSeconds <= 0 {
			return nil, fmt.Errorf("task %q has no valid interval", task.Name)
		}
		interval := time.Duration(*task.IntervalSeconds) * time.Second
		if task.LastRunAt != nil {
			e.next = task.LastRunAt.Add(interval)
			if e.next.Before(now) {
				// Overdue: fire on the next tick
				e.next = now
			}
		} else {
			e.next = now.Add(interval)
		}
	case models.TriggerCron:
		if task.CronExpr == nil {
			return nil, fmt.Errorf("task %q has no cron expression", task.Name)
		}
		sched, err := CronParser.Parse(*task.CronExpr)
		if err != nil {
			return nil, fmt.Errorf("task %q has invalid cron expression %q: %w", task.Name, *task.CronExpr, err)
		}
		e.sched = sched
		e.next = sched.Next(now)
	default:
		return nil, fmt.Errorf("task %q has unknown trigger type %q", task.Name, task.TriggerType)
	}

	return e, nil
}

// due reports whether the entry should fire at the given instant
func (e *entry) due(now time.Time) bool {
	return !e.next.After(now)
}

// advance computes the next fire time after firing at the given instant
func (e *entry) advance(now time.Time) {
	switch e.task.TriggerType {
	case models.TriggerInterval:
		interval := time.Duration(*e.task.IntervalSeconds) * time.Second
		e.next = now.Add(interval)
	case models.TriggerCron:
		e.next = e.sched.Next(now)
	}
}

// expiresAt returns the discard deadline for a run enqueued now, or nil when
// the entry has no expiry window.
func (e *entry) expiresAt(now time.Time) *time.Time {
	if e.task.ExpiresSeconds == nil || *e.task.ExpiresSeconds <= 0 {
		return nil
	}
	deadline := now.Add(time.Duration(*e.task.ExpiresSeconds) * time.Second)
	return &deadline
}
