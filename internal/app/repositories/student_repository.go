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

// IStudentRepository defines the interface for student database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var studentColumns = []string{
	"id", "user_id", "first_name", "last_name", "phone", "address", "highest_education", "created_at",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID, &student.UserID, &student.FirstName, &student.LastName,
		&student.Phone, &student.Address, &student.HighestEducation, &student.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student profile linked to an existing user
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "first_name", "last_name", "phone", "address", "highest_education").
		Values(student.UserID, student.FirstName, student.LastName, student.Phone, student.Address, student.HighestEducation).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_user_id_key") {
			logger.Warn().Int64("userID", student.UserID).Msg("Attempted to create second student profile for user")
			return apperrors.ErrStudentExists
		}
		logger.Error().Err(err).Int64("userID", student.UserID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByUserID retrieves the student profile owned by a user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetAll retrieves every student
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Update rewrites a student's mutable profile fields. The user link is
// immutable and deliberately not part of the update.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("first_name", student.FirstName).
		Set("last_name", student.LastName).
		Set("phone", student.Phone).
		Set("address", student.Address).
		Set("highest_education", student.HighestEducation).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. Enrollment rows cascade; the owning user is
// intentionally left in place.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
