package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/pkg/logger"
)

// ErrDocumentNotFound is returned when a document is not found.
var ErrDocumentNotFound = ErrNotFound

// DocumentRepository handles document metadata operations, scoped by school_id.
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateDocument registers document metadata for the given school
func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *models.Document) (int64, error) {
	sql, args, err := r.sb.Insert("documents").
		Columns("school_id", "title", "category", "file_path", "file_size", "uploaded_by").
		Values(doc.SchoolID, doc.Title, doc.Category, doc.FilePath, doc.FileSize, doc.UploadedBy).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create document SQL")
		return 0, fmt.Errorf("failed to build create document query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create document query")
		return 0, fmt.Errorf("error creating document: %w", err)
	}

	return id, nil
}

// GetDocumentByID retrieves a document by ID within a school
func (r *DocumentRepository) GetDocumentByID(ctx context.Context, schoolID, id int64) (*models.Document, error) {
	sql, args, err := r.sb.Select("id", "school_id", "title", "category", "file_path", "file_size", "uploaded_by", "uploaded_at").
		From("documents").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	doc := &models.Document{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&doc.ID, &doc.SchoolID, &doc.Title, &doc.Category,
		&doc.FilePath, &doc.FileSize, &doc.UploadedBy, &doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		logger.Error().Err(err).Int64("documentID", id).Msg("Error scanning document row")
		return nil, fmt.Errorf("error getting document by ID: %w", err)
	}

	return doc, nil
}

// GetDocumentsBySchool retrieves a page of documents within a school
func (r *DocumentRepository) GetDocumentsBySchool(ctx context.Context, schoolID int64, offset uint64, limit int) ([]*models.Document, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("documents").
		Where(squirrel.Eq{"school_id": schoolID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count documents query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error counting documents")
		return nil, 0, fmt.Errorf("error counting documents: %w", err)
	}

	sql, args, err := r.sb.Select("id", "school_id", "title", "category", "file_path", "file_size", "uploaded_by", "uploaded_at").
		From("documents").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("uploaded_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error executing list documents query")
		return nil, 0, fmt.Errorf("error querying documents: %w", err)
	}
	defer rows.Close()

	docs := []*models.Document{}
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(
			&doc.ID, &doc.SchoolID, &doc.Title, &doc.Category,
			&doc.FilePath, &doc.FileSize, &doc.UploadedBy, &doc.UploadedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, total, nil
}

// DeleteDocument deletes a document by ID within a school
func (r *DocumentRepository) DeleteDocument(ctx context.Context, schoolID, id int64) error {
	sql, args, err := r.sb.Delete("documents").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete document query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("documentID", id).Msg("Error executing delete document query")
		return fmt.Errorf("error deleting document: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}

	return nil
}
