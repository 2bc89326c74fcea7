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

// ParentService defines parent record operations, scoped to a school
type ParentService interface {
	CreateParent(ctx context.Context, schoolID int64, req *dto.CreateParentRequest) (*models.Parent, error)
	GetParent(ctx context.Context, schoolID, id int64) (*models.Parent, error)
	ListParents(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Parent, int64, error)
	UpdateParent(ctx context.Context, schoolID, id int64, req *dto.UpdateParentRequest) (*models.Parent, error)
	DeleteParent(ctx context.Context, schoolID, id int64) error
}

type parentServiceImpl struct {
	parentRepo *repositories.ParentRepository
}

// NewParentService creates a new ParentService
func NewParentService(parentRepo *repositories.ParentRepository) ParentService {
	return &parentServiceImpl{parentRepo: parentRepo}
}

func (s *parentServiceImpl) CreateParent(ctx context.Context, schoolID int64, req *dto.CreateParentRequest) (*models.Parent, error) {
	parent := &models.Parent{
		SchoolID: schoolID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	id, err := s.parentRepo.CreateParent(ctx, parent)
	if err != nil {
		return nil, err
	}
	parent.ID = id

	return parent, nil
}

func (s *parentServiceImpl) GetParent(ctx context.Context, schoolID, id int64) (*models.Parent, error) {
	parent, err := s.parentRepo.GetParentByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParentNotFound) {
			return nil, apperrors.ErrParentNotFound
		}
		return nil, err
	}
	return parent, nil
}

func (s *parentServiceImpl) ListParents(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Parent, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.parentRepo.GetParentsBySchool(ctx, schoolID, offset, limit)
}

func (s *parentServiceImpl) UpdateParent(ctx context.Context, schoolID, id int64, req *dto.UpdateParentRequest) (*models.Parent, error) {
	parent := &models.Parent{
		ID:       id,
		SchoolID: schoolID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := s.parentRepo.UpdateParent(ctx, parent); err != nil {
		if errors.Is(err, repositories.ErrParentNotFound) {
			return nil, apperrors.ErrParentNotFound
		}
		return nil, err
	}

	return s.parentRepo.GetParentByID(ctx, schoolID, id)
}

func (s *parentServiceImpl) DeleteParent(ctx context.Context, schoolID, id int64) error {
	err := s.parentRepo.DeleteParent(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParentNotFound) {
			return apperrors.ErrParentNotFound
		}
		return err
	}
	return nil
}
