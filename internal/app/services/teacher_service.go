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

// TeacherService defines teacher record operations, scoped to a school
type TeacherService interface {
	CreateTeacher(ctx context.Context, schoolID int64, req *dto.CreateTeacherRequest) (*models.Teacher, error)
	GetTeacher(ctx context.Context, schoolID, id int64) (*models.Teacher, error)
	ListTeachers(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Teacher, int64, error)
	UpdateTeacher(ctx context.Context, schoolID, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, schoolID, id int64) error
}

type teacherServiceImpl struct {
	teacherRepo *repositories.TeacherRepository
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(teacherRepo *repositories.TeacherRepository) TeacherService {
	return &teacherServiceImpl{teacherRepo: teacherRepo}
}

func (s *teacherServiceImpl) CreateTeacher(ctx context.Context, schoolID int64, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	teacher := &models.Teacher{
		SchoolID: schoolID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
	}

	id, err := s.teacherRepo.CreateTeacher(ctx, teacher)
	if err != nil {
		return nil, err
	}
	teacher.ID = id

	return teacher, nil
}

func (s *teacherServiceImpl) GetTeacher(ctx context.Context, schoolID, id int64) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetTeacherByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeacherNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, err
	}
	return teacher, nil
}

func (s *teacherServiceImpl) ListTeachers(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Teacher, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.teacherRepo.GetTeachersBySchool(ctx, schoolID, offset, limit)
}

func (s *teacherServiceImpl) UpdateTeacher(ctx context.Context, schoolID, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher := &models.Teacher{
		ID:       id,
		SchoolID: schoolID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
	}

	if err := s.teacherRepo.UpdateTeacher(ctx, teacher); err != nil {
		if errors.Is(err, repositories.ErrTeacherNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, err
	}

	return s.teacherRepo.GetTeacherByID(ctx, schoolID, id)
}

func (s *teacherServiceImpl) DeleteTeacher(ctx context.Context, schoolID, id int64) error {
	err := s.teacherRepo.DeleteTeacher(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeacherNotFound) {
			return apperrors.ErrTeacherNotFound
		}
		return err
	}
	return nil
}
