package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/pkg/apperrors"
	"github.com/ascent/coursebuddy/internal/pkg/dberrors"
	"github.com/ascent/coursebuddy/internal/pkg/logger"
)

// ICourseRepository defines the interface for course database operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var courseColumns = []string{
	"id", "course_code", "course_name", "description", "credits", "instructor", "created_at", "created_by",
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.CourseCode, &course.CourseName, &course.Description,
		&course.Credits, &course.Instructor, &course.CreatedAt, &course.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course. A duplicate course code surfaces as
// apperrors.ErrCourseCodeExists.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_code", "course_name", "description", "credits", "instructor", "created_by").
		Values(course.CourseCode, course.CourseName, course.Description, course.Credits, course.Instructor, course.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_course_code_key") {
			logger.Warn().Str("courseCode", course.CourseCode).Msg("Attempted to create course with duplicate code")
			return apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Str("courseCode", course.CourseCode).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by id
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetAll retrieves every course
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Update rewrites a course's fields
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("course_code", course.CourseCode).
		Set("course_name", course.CourseName).
		Set("description", course.Description).
		Set("credits", course.Credits).
		Set("instructor", course.Instructor).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_course_code_key") {
			return apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course; enrollment rows cascade
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
