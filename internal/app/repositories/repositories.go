package repositories

import (
	"github.com/ascent/coursebuddy/internal/db"
)

// Repositories combines all application repositories
type Repositories struct {
	User       *UserRepository
	Student    *StudentRepository
	Course     *CourseRepository
	Enrollment *EnrollmentRepository
}

// NewRepositories creates the repository container
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(database.Pool),
		Student:    NewStudentRepository(database.Pool),
		Course:     NewCourseRepository(database.Pool),
		Enrollment: NewEnrollmentRepository(database),
	}
}
