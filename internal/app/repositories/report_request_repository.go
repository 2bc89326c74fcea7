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

// ErrReportRequestNotFound is returned when a report request is not found.
var ErrReportRequestNotFound = ErrNotFound

// ReportRequestRepository handles the pending-work queue for report generation.
type ReportRequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRequestRepository creates a new ReportRequestRepository
func NewReportRequestRepository(db *pgxpool.Pool) *ReportRequestRepository {
	return &ReportRequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateRequest enqueues a PENDING report request
func (r *ReportRequestRepository) CreateRequest(ctx context.Context, req *models.ReportRequest) (int64, error) {
	sql, args, err := r.sb.Insert("report_requests").
		Columns("school_id", "student_id", "term", "school_year", "status").
		Values(req.SchoolID, req.StudentID, req.Term, req.SchoolYear, models.RequestStatusPending).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create report request SQL")
		return 0, fmt.Errorf("failed to build create report request query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create report request query")
		return 0, fmt.Errorf("error creating report request: %w", err)
	}

	return id, nil
}

// GetRequestsBySchool retrieves a page of report requests within a school, newest first
func (r *ReportRequestRepository) GetRequestsBySchool(ctx context.Context, schoolID int64, offset uint64, limit int) ([]*models.ReportRequest, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("report_requests").
		Where(squirrel.Eq{"school_id": schoolID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count report requests query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting report requests: %w", err)
	}

	sql, args, err := r.sb.Select("id", "school_id", "student_id", "term", "school_year", "status", "requested_at", "processed_at", "report_id", "last_error").
		From("report_requests").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("requested_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list report requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error executing list report requests query")
		return nil, 0, fmt.Errorf("error querying report requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.ReportRequest{}
	for rows.Next() {
		req := &models.ReportRequest{}
		if err := rows.Scan(
			&req.ID, &req.SchoolID, &req.StudentID, &req.Term, &req.SchoolYear,
			&req.Status, &req.RequestedAt, &req.ProcessedAt, &req.ReportID, &req.LastError,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning report request row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating report request rows: %w", err)
	}

	return requests, total, nil
}

// FetchPending returns up to limit PENDING requests across all schools, oldest first.
// The pending-request job drains these every cycle.
func (r *ReportRequestRepository) FetchPending(ctx context.Context, limit int) ([]*models.ReportRequest, error) {
	sql, args, err := r.sb.Select("id", "school_id", "student_id", "term", "school_year", "status", "requested_at", "processed_at", "report_id", "last_error").
		From("report_requests").
		Where(squirrel.Eq{"status": models.RequestStatusPending}).
		OrderBy("requested_at ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build fetch pending requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing fetch pending requests query")
		return nil, fmt.Errorf("error querying pending requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.ReportRequest{}
	for rows.Next() {
		req := &models.ReportRequest{}
		if err := rows.Scan(
			&req.ID, &req.SchoolID, &req.StudentID, &req.Term, &req.SchoolYear,
			&req.Status, &req.RequestedAt, &req.ProcessedAt, &req.ReportID, &req.LastError,
		); err != nil {
			return nil, fmt.Errorf("error scanning pending request row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending request rows: %w", err)
	}

	return requests, nil
}

// MarkProcessing transitions a request from PENDING to PROCESSING. Returns
// ErrReportRequestNotFound if the row was already claimed or removed.
func (r *ReportRequestRepository) MarkProcessing(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("report_requests").
		Set("status", models.RequestStatusProcessing).
		Where(squirrel.Eq{"id": id, "status": models.RequestStatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build mark processing query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", id).Msg("Error marking request processing")
		return fmt.Errorf("error marking request processing: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrReportRequestNotFound
	}

	return nil
}

// MarkCompleted finalizes a request with the generated report ID
func (r *ReportRequestRepository) MarkCompleted(ctx context.Context, id, reportID int64) error {
	sql, args, err := r.sb.Update("report_requests").
		SetMap(map[string]interface{}{
			"status":       models.RequestStatusCompleted,
			"processed_at": time.Now(),
			"report_id":    reportID,
			"last_error":   "",
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build mark completed query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", id).Msg("Error marking request completed")
		return fmt.Errorf("error marking request completed: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrReportRequestNotFound
	}

	return nil
}

// MarkFailed records a failure on the request
func (r *ReportRequestRepository) MarkFailed(ctx context.Context, id int64, lastError string) error {
	sql, args, err := r.sb.Update("report_requests").
		SetMap(map[string]interface{}{
			"status":       models.RequestStatusFailed,
			"processed_at": time.Now(),
			"last_error":   lastError,
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build mark failed query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", id).Msg("Error marking request failed")
		return fmt.Errorf("error marking request failed: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrReportRequestNotFound
	}

	return nil
}

// GetRequestByID retrieves a single request within a school
func (r *ReportRequestRepository) GetRequestByID(ctx context.Context, schoolID, id int64) (*models.ReportRequest, error) {
	sql, args, err := r.sb.Select("id", "school_id", "student_id", "term", "school_year", "status", "requested_at", "processed_at", "report_id", "last_error").
		From("report_requests").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get report request query: %w", err)
	}

	req := &models.ReportRequest{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&req.ID, &req.SchoolID, &req.StudentID, &req.Term, &req.SchoolYear,
		&req.Status, &req.RequestedAt, &req.ProcessedAt, &req.ReportID, &req.LastError,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportRequestNotFound
		}
		return nil, fmt.Errorf("error getting report request by ID: %w", err)
	}

	return req, nil
}
