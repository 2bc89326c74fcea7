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

// ErrParentNotFound is returned when a parent is not found.
var ErrParentNotFound = ErrNotFound

// ParentRepository handles parent database operations, scoped by school_id.
type ParentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewParentRepository creates a new ParentRepository
func NewParentRepository(db *pgxpool.Pool) *ParentRepository {
	return &ParentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateParent creates a parent record in the given school
func (r *ParentRepository) CreateParent(ctx context.Context, parent *models.Parent) (int64, error) {
	sql, args, err := r.sb.Insert("parents").
		Columns("school_id", "name", "email", "phone", "address").
		Values(parent.SchoolID, parent.Name, parent.Email, parent.Phone, parent.Address).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create parent SQL")
		return 0, fmt.Errorf("failed to build create parent query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create parent query")
		return 0, fmt.Errorf("error creating parent: %w", err)
	}

	return id, nil
}

// GetParentByID retrieves a parent by ID within a school
func (r *ParentRepository) GetParentByID(ctx context.Context, schoolID, id int64) (*models.Parent, error) {
	sql, args, err := r.sb.Select("id", "school_id", "name", "email", "phone", "address").
		From("parents").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get parent query: %w", err)
	}

	parent := &models.Parent{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&parent.ID, &parent.SchoolID, &parent.Name, &parent.Email, &parent.Phone, &parent.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParentNotFound
		}
		logger.Error().Err(err).Int64("parentID", id).Msg("Error scanning parent row")
		return nil, fmt.Errorf("error getting parent by ID: %w", err)
	}

	return parent, nil
}

// GetParentsBySchool retrieves a page of parents within a school
func (r *ParentRepository) GetParentsBySchool(ctx context.Context, schoolID int64, offset uint64, limit int) ([]*models.Parent, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("parents").
		Where(squirrel.Eq{"school_id": schoolID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count parents query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error counting parents")
		return nil, 0, fmt.Errorf("error counting parents: %w", err)
	}

	sql, args, err := r.sb.Select("id", "school_id", "name", "email", "phone", "address").
		From("parents").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("name ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list parents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error executing list parents query")
		return nil, 0, fmt.Errorf("error querying parents: %w", err)
	}
	defer rows.Close()

	parents := []*models.Parent{}
	for rows.Next() {
		parent := &models.Parent{}
		if err := rows.Scan(
			&parent.ID, &parent.SchoolID, &parent.Name, &parent.Email, &parent.Phone, &parent.Address,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning parent row: %w", err)
		}
		parents = append(parents, parent)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating parent rows: %w", err)
	}

	return parents, total, nil
}

// UpdateParent updates mutable fields of a parent within a school
func (r *ParentRepository) UpdateParent(ctx context.Context, parent *models.Parent) error {
	sql, args, err := r.sb.Update("parents").
		SetMap(map[string]interface{}{
			"name":    parent.Name,
			"email":   parent.Email,
			"phone":   parent.Phone,
			"address": parent.Address,
		}).
		Where(squirrel.Eq{"id": parent.ID, "school_id": parent.SchoolID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update parent query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("parentID", parent.ID).Msg("Error executing update parent query")
		return fmt.Errorf("error updating parent: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrParentNotFound
	}

	return nil
}

// DeleteParent deletes a parent by ID within a school
func (r *ParentRepository) DeleteParent(ctx context.Context, schoolID, id int64) error {
	sql, args, err := r.sb.Delete("parents").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete parent query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("parentID", id).Msg("Error executing delete parent query")
		return fmt.Errorf("error deleting parent: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrParentNotFound
	}

	return nil
}
