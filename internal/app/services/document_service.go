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

// DocumentService defines document metadata operations, scoped to a school
type DocumentService interface {
	CreateDocument(ctx context.Context, schoolID, uploadedBy int64, req *dto.CreateDocumentRequest) (*models.Document, error)
	GetDocument(ctx context.Context, schoolID, id int64) (*models.Document, error)
	ListDocuments(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Document, int64, error)
	DeleteDocument(ctx context.Context, schoolID, id int64) error
}

type documentServiceImpl struct {
	documentRepo *repositories.DocumentRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo *repositories.DocumentRepository) DocumentService {
	return &documentServiceImpl{documentRepo: documentRepo}
}

func (s *documentServiceImpl) CreateDocument(ctx context.Context, schoolID, uploadedBy int64, req *dto.CreateDocumentRequest) (*models.Document, error) {
	doc := &models.Document{
		SchoolID:   schoolID,
		Title:      req.Title,
		Category:   req.Category,
		FilePath:   req.FilePath,
		FileSize:   req.FileSize,
		UploadedBy: &uploadedBy,
	}

	id, err := s.documentRepo.CreateDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id

	return doc, nil
}

func (s *documentServiceImpl) GetDocument(ctx context.Context, schoolID, id int64) (*models.Document, error) {
	doc, err := s.documentRepo.GetDocumentByID(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentServiceImpl) ListDocuments(ctx context.Context, schoolID int64, page, pageSize int) ([]*models.Document, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.documentRepo.GetDocumentsBySchool(ctx, schoolID, offset, limit)
}

func (s *documentServiceImpl) DeleteDocument(ctx context.Context, schoolID, id int64) error {
	err := s.documentRepo.DeleteDocument(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return apperrors.ErrDocumentNotFound
		}
		return err
	}
	return nil
}
