package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/pkg/logger"
)

// ErrScheduleNotFound is returned when a periodic task entry is not found.
var ErrScheduleNotFound = ErrNotFound

const periodicTaskColumns = "id, name, job, trigger_type, interval_seconds, cron_expr, expires_seconds, enabled, last_run_at, updated_at"

// PeriodicTaskRepository handles the persisted beat schedule. The worker
// process polls this table so schedule edits take effect without a restart.
type PeriodicTaskRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPeriodicTaskRepository creates a new PeriodicTaskRepository
func NewPeriodicTaskRepository(db *pgxpool.Pool) *PeriodicTaskRepository {
	return &PeriodicTaskRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPeriodicTask(row pgx.Row) (*models.PeriodicTask, error) {
	task := &models.PeriodicTask{}
	err := row.Scan(
		&task.ID, &task.Name, &task.Job, &task.TriggerType,
		&task.IntervalSeconds, &task.CronExpr, &task.ExpiresSeconds,
		&task.Enabled, &task.LastRunAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetEnabledTasks returns all enabled schedule entries
func (r *PeriodicTaskRepository) GetEnabledTasks(ctx context.Context) ([]*models.PeriodicTask, error) {
	sql, args, err := r.sb.Select(periodicTaskColumns).
		From("periodic_tasks").
		Where(squirrel.Eq{"enabled": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build enabled tasks query: %w", err)
	}

	return r.queryTasks(ctx, sql, args)
}

// GetAllTasks returns every schedule entry, enabled or not
func (r *PeriodicTaskRepository) GetAllTasks(ctx context.Context) ([]*models.PeriodicTask, error) {
	sql, args, err := r.sb.Select(periodicTaskColumns).
		From("periodic_tasks").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build all tasks query: %w", err)
	}

	return r.queryTasks(ctx, sql, args)
}

func (r *PeriodicTaskRepository) queryTasks(ctx context.Context, sql string, args []interface{}) ([]*models.PeriodicTask, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing periodic tasks query")
		return nil, fmt.Errorf("error querying periodic tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.PeriodicTask{}
	for rows.Next() {
		task, err := scanPeriodicTask(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning periodic task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating periodic task rows: %w", err)
	}

	return tasks, nil
}

// GetTaskByName retrieves a schedule entry by its unique name
func (r *PeriodicTaskRepository) GetTaskByName(ctx context.Context, name string) (*models.PeriodicTask, error) {
	sql, args, err := r.sb.Select(periodicTaskColumns).
		From("periodic_tasks").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get task query: %w", err)
	}

	task, err := scanPeriodicTask(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		logger.Error().Err(err).Str("task", name).Msg("Error scanning periodic task row")
		return nil, fmt.Errorf("error getting periodic task by name: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to a schedule entry. Only non-nil
// fields are written; updated_at always advances so pollers pick it up.
func (r *PeriodicTaskRepository) UpdateTask(ctx context.Context, name string, enabled *bool, intervalSeconds *int64, cronExpr *string, expiresSeconds *int64) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if enabled != nil {
		updates["enabled"] = *enabled
	}
	if intervalSeconds != nil {
		updates["interval_seconds"] = *intervalSeconds
	}
	if cronExpr != nil {
		updates["cron_expr"] = *cronExpr
	}
	if expiresSeconds != nil {
		updates["expires_seconds"] = *expiresSeconds
	}

	sql, args, err := r.sb.Update("periodic_tasks").
		SetMap(updates).
		Where(squirrel.Eq{"name": name}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update task query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("task", name).Msg("Error executing update task query")
		return fmt.Errorf("error updating periodic task: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// TouchLastRun stamps last_run_at after a run fires
func (r *PeriodicTaskRepository) TouchLastRun(ctx context.Context, name string, at time.Time) error {
	sql, args, err := r.sb.Update("periodic_tasks").
		Set("last_run_at", at).
		Where(squirrel.Eq{"name": name}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build touch last run query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("task", name).Msg("Error stamping last run")
		return fmt.Errorf("error stamping last run: %w", err)
	}

	return nil
}

// UpsertTask inserts a schedule entry or leaves an existing one untouched.
// Seeding uses this so operator edits survive restarts.
func (r *PeriodicTaskRepository) UpsertTask(ctx context.Context, task *models.PeriodicTask) error {
	sql, args, err := r.sb.Insert("periodic_tasks").
		Columns("name", "job", "trigger_type", "interval_seconds", "cron_expr", "expires_seconds", "enabled").
		Values(task.Name, task.Job, task.TriggerType, task.IntervalSeconds, task.CronExpr, task.ExpiresSeconds, task.Enabled).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build upsert task query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("task", task.Name).Msg("Error upserting periodic task")
		return fmt.Errorf("error upserting periodic task: %w", err)
	}

	return nil
}
