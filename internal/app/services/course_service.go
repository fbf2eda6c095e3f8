package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/app/models/dto"
	"github.com/ascent/coursebuddy/internal/app/repositories"
)

// CourseService handles course operations
type CourseService struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// GetAllCourses returns every course
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetCourseByID returns a course by id
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// CreateCourse creates a course, recording the creating user when known
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, createdBy *int64) (*models.Course, error) {
	course := &models.Course{
		CourseCode:  req.CourseCode,
		CourseName:  req.CourseName,
		Description: req.Description,
		Credits:     req.Credits,
		Instructor:  req.Instructor,
		CreatedBy:   createdBy,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseCode", course.CourseCode).Int64("courseID", course.ID).Msg("Course created")
	return course, nil
}

// UpdateCourse rewrites a course's fields
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.CourseCode = req.CourseCode
	course.CourseName = req.CourseName
	course.Description = req.Description
	course.Credits = req.Credits
	course.Instructor = req.Instructor

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes a course and, through the schema, its enrollments
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}
