package services

import (
	"context"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/app/models/dto"
	"github.com/skuldata/skuldata/internal/app/repositories"
	"github.com/skuldata/skuldata/internal/pkg/apperrors"
	"github.com/skuldata/skuldata/internal/pkg/logger"
)

// DashboardService produces the superuser dashboard aggregates
type DashboardService interface {
	// GetCounts returns the per-school entity counts for a superuser caller.
	// Non-superuser callers are rejected before any count query runs.
	GetCounts(ctx context.Context, role models.RoleType, schoolID int64) (*dto.DashboardCounts, error)
}

type dashboardServiceImpl struct {
	dashboardRepo *repositories.DashboardRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashboardRepo *repositories.DashboardRepository) DashboardService {
	return &dashboardServiceImpl{dashboardRepo: dashboardRepo}
}

func (s *dashboardServiceImpl) GetCounts(ctx context.Context, role models.RoleType, schoolID int64) (*dto.DashboardCounts, error) {
	// Authorization gate comes first: no query work for non-superusers
	if role != models.RoleSuperuser {
		return nil, apperrors.ErrPermissionDenied
	}

	counts, err := s.dashboardRepo.CountsBySchool(ctx, schoolID)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Failed to aggregate dashboard counts")
		return nil, err
	}

	return &dto.DashboardCounts{
		TeachersCount:  counts.Teachers,
		ParentsCount:   counts.Parents,
		StudentsCount:  counts.Students,
		DocumentsCount: counts.Documents,
		ReportsCount:   counts.Reports,
	}, nil
}
