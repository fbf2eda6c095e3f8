package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/db"
	"github.com/ascent/coursebuddy/internal/pkg/apperrors"
	"github.com/ascent/coursebuddy/internal/pkg/logger"
)

// IEnrollmentRepository defines the interface for enrollment operations
type IEnrollmentRepository interface {
	Enroll(ctx context.Context, studentID, courseID int64) error
	Unenroll(ctx context.Context, studentID, courseID int64) error
	GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error)
	GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error)
}

// EnrollmentRepository manages the student_courses relationship. Every
// mutation runs inside a single transaction: existence checks and the
// membership change commit together, so a reader can never observe a
// half-applied enrollment.
type EnrollmentRepository struct {
	database *db.PostgresDB
	sb       squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(database *db.PostgresDB) *EnrollmentRepository {
	return &EnrollmentRepository{
		database: database,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *EnrollmentRepository) studentExists(ctx context.Context, tx pgx.Tx, studentID int64) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking student existence: %w", err)
	}
	if !exists {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *EnrollmentRepository) courseExists(ctx context.Context, tx pgx.Tx, courseID int64) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking course existence: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Enroll adds the student↔course membership. Enrolling an already enrolled
// pair is a no-op; a concurrent duplicate enroll is absorbed by the ON
// CONFLICT clause instead of failing.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, courseID int64) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.studentExists(ctx, tx, studentID); err != nil {
			return err
		}
		if err := r.courseExists(ctx, tx, courseID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			studentID, courseID)
		if err != nil {
			logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error inserting enrollment")
			return fmt.Errorf("error enrolling student: %w", err)
		}

		return nil
	})
}

// Unenroll removes the membership. Removing a relationship that does not
// exist is a no-op, but a missing student or course is still an error.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, studentID, courseID int64) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.studentExists(ctx, tx, studentID); err != nil {
			return err
		}
		if err := r.courseExists(ctx, tx, courseID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`DELETE FROM student_courses WHERE student_id = $1 AND course_id = $2`,
			studentID, courseID)
		if err != nil {
			logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error deleting enrollment")
			return fmt.Errorf("error unenrolling student: %w", err)
		}

		return nil
	})
}

// GetCoursesByStudentID returns the student's course set
func (r *EnrollmentRepository) GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.course_code", "c.course_name", "c.description", "c.credits", "c.instructor", "c.created_at", "c.created_by").
		From("courses c").
		Join("student_courses sc ON sc.course_id = c.id").
		Where(squirrel.Eq{"sc.student_id": studentID}).
		OrderBy("c.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build student courses query: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying student courses")
		return nil, fmt.Errorf("error listing student courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
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

// GetStudentsByCourseID returns the course's student set
func (r *EnrollmentRepository) GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.user_id", "s.first_name", "s.last_name", "s.phone", "s.address", "s.highest_education", "s.created_at").
		From("students s").
		Join("student_courses sc ON sc.student_id = s.id").
		Where(squirrel.Eq{"sc.course_id": courseID}).
		OrderBy("s.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build course students query: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error querying course students")
		return nil, fmt.Errorf("error listing course students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
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

// IsEnrolled reports whether the relationship exists
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.database.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM student_courses WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}
