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

// ErrReportNotFound is returned when a report is not found.
var ErrReportNotFound = ErrNotFound

// ReportRepository handles generated report operations, scoped by school_id.
// The scheduled pipeline is the main writer; the API reads and deletes.
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateReport inserts a generated report
func (r *ReportRepository) CreateReport(ctx context.Context, report *models.Report) (int64, error) {
	sql, args, err := r.sb.Insert("reports").
		Columns("school_id", "title", "report_type", "term", "school_year", "status", "content", "generated_by").
		Values(report.SchoolID, report.Title, report.ReportType, report.Term, report.SchoolYear, report.Status, report.Content, report.GeneratedBy).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create report SQL")
		return 0, fmt.Errorf("failed to build create report query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create report query")
		return 0, fmt.Errorf("error creating report: %w", err)
	}

	return id, nil
}

// GetReportByID retrieves a report by ID within a school
func (r *ReportRepository) GetReportByID(ctx context.Context, schoolID, id int64) (*models.Report, error) {
	sql, args, err := r.sb.Select("id", "school_id", "title", "report_type", "term", "school_year", "status", "content", "generated_by", "generated_at").
		From("reports").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get report query: %w", err)
	}

	report := &models.Report{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&report.ID, &report.SchoolID, &report.Title, &report.ReportType,
		&report.Term, &report.SchoolYear, &report.Status, &report.Content,
		&report.GeneratedBy, &report.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		logger.Error().Err(err).Int64("reportID", id).Msg("Error scanning report row")
		return nil, fmt.Errorf("error getting report by ID: %w", err)
	}

	return report, nil
}

// GetReportsBySchool retrieves a page of reports within a school, newest first
func (r *ReportRepository) GetReportsBySchool(ctx context.Context, schoolID int64, offset uint64, limit int) ([]*models.Report, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("reports").
		Where(squirrel.Eq{"school_id": schoolID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count reports query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error counting reports")
		return nil, 0, fmt.Errorf("error counting reports: %w", err)
	}

	sql, args, err := r.sb.Select("id", "school_id", "title", "report_type", "term", "school_year", "status", "content", "generated_by", "generated_at").
		From("reports").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("generated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list reports query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error executing list reports query")
		return nil, 0, fmt.Errorf("error querying reports: %w", err)
	}
	defer rows.Close()

	reports := []*models.Report{}
	for rows.Next() {
		report := &models.Report{}
		if err := rows.Scan(
			&report.ID, &report.SchoolID, &report.Title, &report.ReportType,
			&report.Term, &report.SchoolYear, &report.Status, &report.Content,
			&report.GeneratedBy, &report.GeneratedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning report row: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, total, nil
}

// DeleteReport deletes a report by ID within a school
func (r *ReportRepository) DeleteReport(ctx context.Context, schoolID, id int64) error {
	sql, args, err := r.sb.Delete("reports").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete report query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reportID", id).Msg("Error executing delete report query")
		return fmt.Errorf("error deleting report: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	return nil
}

// DeleteReportsOlderThan deletes reports generated before the cutoff across all
// schools and returns the number of rows removed. Used by the cleanup job.
func (r *ReportRepository) DeleteReportsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("reports").
		Where(squirrel.Lt{"generated_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build cleanup reports query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Time("cutoff", cutoff).Msg("Error executing cleanup reports query")
		return 0, fmt.Errorf("error deleting old reports: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// TermEndReportExists checks whether a term-end report already exists for the
// school/term/year combination. The term-end job is idempotent because of this.
func (r *ReportRepository) TermEndReportExists(ctx context.Context, schoolID int64, term, schoolYear string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("reports").
		Where(squirrel.Eq{
			"school_id":   schoolID,
			"report_type": models.ReportTypeTermEnd,
			"term":        term,
			"school_year": schoolYear,
		}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("failed to build term-end existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) { // ErrNoRows is ok here, means false
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error checking term-end report existence")
		return false, fmt.Errorf("error checking term-end report existence: %w", err)
	}

	return exists, nil
}
