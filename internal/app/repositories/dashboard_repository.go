package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skuldata/skuldata/internal/pkg/logger"
)

// DashboardCounts aggregates the per-school entity totals shown on the
// superuser dashboard.
type DashboardCounts struct {
	Teachers  int64
	Parents   int64
	Students  int64
	Documents int64
	Reports   int64
}

// DashboardRepository runs the aggregate count queries behind the dashboard.
type DashboardRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *DashboardRepository) countTable(ctx context.Context, table string, schoolID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"school_id": schoolID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build %s count query: %w", table, err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("table", table).Int64("schoolID", schoolID).Msg("Error counting rows")
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}

	return count, nil
}

// CountsBySchool runs the five entity counts for the given school. Each count
// is an independent query; the first failure aborts the rest.
func (r *DashboardRepository) CountsBySchool(ctx context.Context, schoolID int64) (*DashboardCounts, error) {
	counts := &DashboardCounts{}

	var err error
	if counts.Teachers, err = r.countTable(ctx, "teachers", schoolID); err != nil {
		return nil, err
	}
	if counts.Parents, err = r.countTable(ctx, "parents", schoolID); err != nil {
		return nil, err
	}
	if counts.Students, err = r.countTable(ctx, "students", schoolID); err != nil {
		return nil, err
	}
	if counts.Documents, err = r.countTable(ctx, "documents", schoolID); err != nil {
		return nil, err
	}
	if counts.Reports, err = r.countTable(ctx, "reports", schoolID); err != nil {
		return nil, err
	}

	return counts, nil
}
