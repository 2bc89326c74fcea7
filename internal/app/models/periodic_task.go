package models

import "time"

// PeriodicTask is a persisted beat-schedule entry based on the 'periodic_tasks'
// table. The worker process reads enabled rows and fires the named job handler
// on the configured trigger; rows can be edited at runtime without redeploy.
type PeriodicTask struct {
	ID              int64       `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"` // Unique schedule entry name
	Job             string      `json:"job" db:"job"`   // Registered job handler name
	TriggerType     TriggerType `json:"triggerType" db:"trigger_type"`
	IntervalSeconds *int64      `json:"intervalSeconds,omitempty" db:"interval_seconds"` // Set when trigger_type = interval
	CronExpr        *string     `json:"cronExpr,omitempty" db:"cron_expr"`               // Set when trigger_type = cron
	ExpiresSeconds  *int64      `json:"expiresSeconds,omitempty" db:"expires_seconds"`   // Discard window for queued runs
	Enabled         bool        `json:"enabled" db:"enabled"`
	LastRunAt       *time.Time  `json:"lastRunAt,omitempty" db:"last_run_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}
