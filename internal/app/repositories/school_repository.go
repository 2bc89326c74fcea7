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

// School error types
var (
	// ErrSchoolNotFound is returned when a school is not found.
	ErrSchoolNotFound = ErrNotFound
	// ErrSchoolAlreadyExists is returned when a school with the same name or code exists.
	ErrSchoolAlreadyExists = errors.New("school with this name or code already exists")
)

// SchoolRepository handles school database operations
type SchoolRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateSchool creates a new school tenant
func (r *SchoolRepository) CreateSchool(ctx context.Context, school *models.School) (int64, error) {
	sql, args, err := r.sb.Insert("schools").
		Columns("name", "code", "level", "location", "contact_email", "contact_phone").
		Values(school.Name, school.Code, school.Level, school.Location, school.ContactEmail, school.ContactPhone).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create school SQL")
		return 0, fmt.Errorf("failed to build create school query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, ErrSchoolAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create school query")
		return 0, fmt.Errorf("error creating school: %w", err)
	}

	return id, nil
}

// GetSchoolByID retrieves a school by ID
func (r *SchoolRepository) GetSchoolByID(ctx context.Context, id int64) (*models.School, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "level", "location", "contact_email", "contact_phone", "created_at").
		From("schools").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get school by ID SQL")
		return nil, fmt.Errorf("failed to build get school query: %w", err)
	}

	school := &models.School{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&school.ID, &school.Name, &school.Code, &school.Level,
		&school.Location, &school.ContactEmail, &school.ContactPhone, &school.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSchoolNotFound
		}
		logger.Error().Err(err).Int64("schoolID", id).Msg("Error scanning school row")
		return nil, fmt.Errorf("error getting school by ID: %w", err)
	}

	return school, nil
}

// GetAllSchools retrieves all schools ordered by name
func (r *SchoolRepository) GetAllSchools(ctx context.Context) ([]*models.School, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "level", "location", "contact_email", "contact_phone", "created_at").
		From("schools").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all schools SQL")
		return nil, fmt.Errorf("failed to build get all schools query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all schools query")
		return nil, fmt.Errorf("error querying schools: %w", err)
	}
	defer rows.Close()

	schools := []*models.School{}
	for rows.Next() {
		school := &models.School{}
		if err := rows.Scan(
			&school.ID, &school.Name, &school.Code, &school.Level,
			&school.Location, &school.ContactEmail, &school.ContactPhone, &school.CreatedAt,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning school row during get all")
			return nil, fmt.Errorf("error scanning school row: %w", err)
		}
		schools = append(schools, school)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating school rows")
		return nil, fmt.Errorf("error iterating school rows: %w", err)
	}

	return schools, nil
}

// GetSchoolIDs returns the IDs of every school. Used by the term-end job to
// fan out per-school report generation.
func (r *SchoolRepository) GetSchoolIDs(ctx context.Context) ([]int64, error) {
	sql, args, err := r.sb.Select("id").From("schools").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build school IDs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying school IDs: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning school ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating school IDs: %w", err)
	}

	return ids, nil
}
