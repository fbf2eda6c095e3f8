package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/app/repositories"
)

// EnrollmentService manages the student↔course membership. All mutations go
// through the enrollment repository's transactional operations, which keep
// both sides of the relationship in agreement.
type EnrollmentService struct {
	enrollmentRepo repositories.IEnrollmentRepository
	studentRepo    repositories.IStudentRepository
	courseRepo     repositories.ICourseRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo repositories.IEnrollmentRepository,
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// Enroll adds a student to a course. Fails with NotFound when either side
// is missing; enrolling twice is a no-op.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) error {
	if err := s.enrollmentRepo.Enroll(ctx, studentID, courseID); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled in course")
	return nil
}

// Unenroll removes a student from a course. Removing an absent relationship
// succeeds silently; a missing student or course is still NotFound.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := s.enrollmentRepo.Unenroll(ctx, studentID, courseID); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student unenrolled from course")
	return nil
}

// GetStudentCourses returns a student's course set
func (s *EnrollmentService) GetStudentCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	// Distinguish "no courses" from "no such student"
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	return s.enrollmentRepo.GetCoursesByStudentID(ctx, studentID)
}

// GetCourseStudents returns a course's student set
func (s *EnrollmentService) GetCourseStudents(ctx context.Context, courseID int64) ([]*models.Student, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	return s.enrollmentRepo.GetStudentsByCourseID(ctx, courseID)
}

// EnrollByUserID enrolls the student profile owned by a user account
func (s *EnrollmentService) EnrollByUserID(ctx context.Context, userID, courseID int64) error {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.Enroll(ctx, student.ID, courseID)
}

// UnenrollByUserID unenrolls the student profile owned by a user account
func (s *EnrollmentService) UnenrollByUserID(ctx context.Context, userID, courseID int64) error {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.Unenroll(ctx, student.ID, courseID)
}

// GetStudentCoursesByUserID returns the course set of the student owned by
// a user account
func (s *EnrollmentService) GetStudentCoursesByUserID(ctx context.Context, userID int64) ([]*models.Course, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.enrollmentRepo.GetCoursesByStudentID(ctx, student.ID)
}
