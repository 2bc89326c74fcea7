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

// ErrTeacherNotFound is returned when a teacher is not found.
var ErrTeacherNotFound = ErrNotFound

// TeacherRepository handles teacher database operations.
// All queries are scoped by school_id; callers pass the tenant explicitly.
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTeacher creates a teacher record in the given school
func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	sql, args, err := r.sb.Insert("teachers").
		Columns("school_id", "user_id", "name", "email", "phone", "subject", "hired_at").
		Values(teacher.SchoolID, teacher.UserID, teacher.Name, teacher.Email, teacher.Phone, teacher.Subject, teacher.HiredAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return 0, fmt.Errorf("failed to build create teacher query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create teacher query")
		return 0, fmt.Errorf("error creating teacher: %w", err)
	}

	return id, nil
}

// GetTeacherByID retrieves a teacher by ID within a school
func (r *TeacherRepository) GetTeacherByID(ctx context.Context, schoolID, id int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select("id", "school_id", "user_id", "name", "email", "phone", "subject", "hired_at").
		From("teachers").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher by ID SQL")
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher := &models.Teacher{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&teacher.ID, &teacher.SchoolID, &teacher.UserID, &teacher.Name,
		&teacher.Email, &teacher.Phone, &teacher.Subject, &teacher.HiredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error getting teacher by ID: %w", err)
	}

	return teacher, nil
}

// GetTeachersBySchool retrieves a page of teachers within a school
func (r *TeacherRepository) GetTeachersBySchool(ctx context.Context, schoolID int64, offset uint64, limit int) ([]*models.Teacher, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("teachers").
		Where(squirrel.Eq{"school_id": schoolID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count teachers query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error counting teachers")
		return nil, 0, fmt.Errorf("error counting teachers: %w", err)
	}

	sql, args, err := r.sb.Select("id", "school_id", "user_id", "name", "email", "phone", "subject", "hired_at").
		From("teachers").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("name ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error executing list teachers query")
		return nil, 0, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		teacher := &models.Teacher{}
		if err := rows.Scan(
			&teacher.ID, &teacher.SchoolID, &teacher.UserID, &teacher.Name,
			&teacher.Email, &teacher.Phone, &teacher.Subject, &teacher.HiredAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating teacher rows: %w", err)
	}

	return teachers, total, nil
}

// UpdateTeacher updates mutable fields of a teacher within a school
func (r *TeacherRepository) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		SetMap(map[string]interface{}{
			"name":    teacher.Name,
			"email":   teacher.Email,
			"phone":   teacher.Phone,
			"subject": teacher.Subject,
		}).
		Where(squirrel.Eq{"id": teacher.ID, "school_id": teacher.SchoolID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", teacher.ID).Msg("Error executing update teacher query")
		return fmt.Errorf("error updating teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrTeacherNotFound
	}

	return nil
}

// DeleteTeacher deletes a teacher by ID within a school
func (r *TeacherRepository) DeleteTeacher(ctx context.Context, schoolID, id int64) error {
	sql, args, err := r.sb.Delete("teachers").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete teacher query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error executing delete teacher query")
		return fmt.Errorf("error deleting teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrTeacherNotFound
	}

	return nil
}
