package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/app/models/dto"
	"github.com/ascent/coursebuddy/internal/app/repositories"
)

// StudentService handles student profile operations
type StudentService struct {
	studentRepo repositories.IStudentRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetAllStudents returns every student
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// GetStudentByID returns a student by id
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentByUserID returns the student profile owned by a user account
func (s *StudentService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// CreateStudent creates a student profile linked to a pre-existing user
// looked up by username. The link is immutable afterwards.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest, username string) (*models.Student, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		UserID:           user.ID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Address:          req.Address,
		HighestEducation: req.HighestEducation,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("username", username).Msg("Student profile created")

	student.User = user
	return student, nil
}

// UpdateStudent updates a student's profile fields by student id
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyStudentUpdate(student, req)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// UpdateStudentByUserID updates the profile owned by a user account
func (s *StudentService) UpdateStudentByUserID(ctx context.Context, userID int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyStudentUpdate(student, req)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes a student profile. The owning user account is kept;
// only the profile and its enrollments go away.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

func applyStudentUpdate(student *models.Student, req *dto.UpdateStudentRequest) {
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Phone = req.Phone
	student.Address = req.Address
	student.HighestEducation = req.HighestEducation
}
