package services

import (
	"context"
	"errors"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/app/models/dto"
	"github.com/skuldata/skuldata/internal/app/repositories"
	"github.com/skuldata/skuldata/internal/pkg/apperrors"
	"github.com/skuldata/skuldata/internal/pkg/helpers"
)

// ReportService covers generated reports and the request queue that feeds
// the scheduled pipeline.
type ReportService interface {
	GetReport(ctx context.Context, schoolID, id int64) (*models.Report, error)
	ListReports(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Report, int64, error)
	DeleteReport(ctx context.Context, schoolID, id int64) error

	RequestReport(ctx context.Context, schoolID int64, req *dto.CreateReportRequestRequest) (*models.ReportRequest, error)
	GetReportRequest(ctx context.Context, schoolID, id int64) (*models.ReportRequest, error)
	ListReportRequests(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.ReportRequest, int64, error)
}

type reportServiceImpl struct {
	reportRepo  *repositories.ReportRepository
	requestRepo *repositories.ReportRequestRepository
	studentRepo *repositories.StudentRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo *repositories.ReportRepository,
	requestRepo *repositories.ReportRequestRepository,
	studentRepo *repositories.StudentRepository,
) ReportService {
	return &reportServiceImpl{
		reportRepo:  reportRepo,
		requestRepo: requestRepo,
		studentRepo: studentRepo,
	}
}

func (s *reportServiceImpl) GetReport(ctx context.Context, schoolID, id int64) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *reportServiceImpl) ListReports(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Report, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.reportRepo.GetReportsBySchool(ctx, schoolID, offset, limit)
}

func (s *reportServiceImpl) DeleteReport(ctx context.Context, schoolID, id int64) error {
	err := s.reportRepo.DeleteReport(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return apperrors.ErrReportNotFound
		}
		return err
	}
	return nil
}

// RequestReport enqueues a PENDING report request for a student in the
// caller's school. The pipeline picks it up on its next cycle.
func (s *reportServiceImpl) RequestReport(ctx context.Context, schoolID int64, req *dto.CreateReportRequestRequest) (*models.ReportRequest, error) {
	// The student must belong to the caller's school
	if _, err := s.studentRepo.GetStudentByID(ctx, schoolID, req.StudentID); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	request := &models.ReportRequest{
		SchoolID:   schoolID,
		StudentID:  req.StudentID,
		Term:       req.Term,
		SchoolYear: req.SchoolYear,
		Status:     models.RequestStatusPending,
	}

	id, err := s.requestRepo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	request.ID = id

	return request, nil
}

func (s *reportServiceImpl) GetReportRequest(ctx context.Context, schoolID, id int64) (*models.ReportRequest, error) {
	request, err := s.requestRepo.GetRequestByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReportRequestNotFound) {
			return nil, apperrors.ErrReportRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *reportServiceImpl) ListReportRequests(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.ReportRequest, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.requestRepo.GetRequestsBySchool(ctx, schoolID, offset, limit)
}
