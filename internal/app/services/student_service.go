package services

import (
	"context"
	"errors"
	"time"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/app/models/dto"
	"github.com/skuldata/skuldata/internal/app/repositories"
	"github.com/skuldata/skuldata/internal/pkg/apperrors"
	"github.com/skuldata/skuldata/internal/pkg/helpers"
)

// StudentService defines student record operations, scoped to a school
type StudentService interface {
	CreateStudent(ctx context.Context, schoolID int64, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, schoolID, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Student, int64, error)
	UpdateStudent(ctx context.Context, schoolID, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, schoolID, id int64) error
}

type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	parentRepo  *repositories.ParentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository, parentRepo *repositories.ParentRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		parentRepo:  parentRepo,
	}
}

func (s *studentServiceImpl) CreateStudent(ctx context.Context, schoolID int64, req *dto.CreateStudentRequest) (*models.Student, error) {
	if req.ParentID != nil {
		// Parent must exist in the same school before linking
		if _, err := s.parentRepo.GetParentByID(ctx, schoolID, *req.ParentID); err != nil {
			if errors.Is(err, repositories.ErrParentNotFound) {
				return nil, apperrors.ErrParentNotFound
			}
			return nil, err
		}
	}

	student := &models.Student{
		SchoolID:    schoolID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		AdmissionNo: req.AdmissionNo,
		ClassName:   req.ClassName,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewBadRequestError("dateOfBirth must be in YYYY-MM-DD format")
		}
		student.DateOfBirth = &dob
	}

	id, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		if errors.Is(err, repositories.ErrAdmissionNoAlreadyTaken) {
			return nil, apperrors.ErrAdmissionNoAlreadyTaken
		}
		return nil, err
	}
	student.ID = id

	return student, nil
}

func (s *studentServiceImpl) GetStudent(ctx context.Context, schoolID, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetStudentByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *studentServiceImpl) ListStudents(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Student, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.studentRepo.GetStudentsBySchool(ctx, schoolID, offset, limit)
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, schoolID, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if req.ParentID != nil {
		if _, err := s.parentRepo.GetParentByID(ctx, schoolID, *req.ParentID); err != nil {
			if errors.Is(err, repositories.ErrParentNotFound) {
				return nil, apperrors.ErrParentNotFound
			}
			return nil, err
		}
	}

	student := &models.Student{
		ID:        id,
		SchoolID:  schoolID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		ClassName: req.ClassName,
	}

	if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	return s.studentRepo.GetStudentByID(ctx, schoolID, id)
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, schoolID, id int64) error {
	err := s.studentRepo.DeleteStudent(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return err
	}
	return nil
}
