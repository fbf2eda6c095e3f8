package services

import (
	"context"
	"time"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/pkg/apperrors"
)

// In-memory repository fakes. They mirror the behavior of the real
// repositories closely enough for service tests: the same sentinel errors,
// the same idempotency on enrollment, and the same empty-slice results.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperrors.ErrUsernameAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, username, passwordHash string) error {
	for _, user := range r.users {
		if user.Username == username {
			user.Password = passwordHash
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type fakeStudentRepo struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	for _, existing := range r.students {
		if existing.UserID == student.UserID {
			return apperrors.ErrStudentExists
		}
	}
	r.nextID++
	student.ID = r.nextID
	student.CreatedAt = time.Now()
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (r *fakeStudentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, student := range r.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	students := make([]*models.Student, 0, len(r.students))
	for _, student := range r.students {
		students = append(students, student)
	}
	return students, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

type fakeCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[int64]*models.Course)}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	for _, existing := range r.courses {
		if existing.CourseCode == course.CourseCode {
			return apperrors.ErrCourseCodeExists
		}
	}
	r.nextID++
	course.ID = r.nextID
	course.CreatedAt = time.Now()
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (r *fakeCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	courses := make([]*models.Course, 0, len(r.courses))
	for _, course := range r.courses {
		courses = append(courses, course)
	}
	return courses, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

type enrollmentKey struct {
	studentID int64
	courseID  int64
}

type fakeEnrollmentRepo struct {
	studentRepo *fakeStudentRepo
	courseRepo  *fakeCourseRepo
	pairs       map[enrollmentKey]bool
}

func newFakeEnrollmentRepo(studentRepo *fakeStudentRepo, courseRepo *fakeCourseRepo) *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		pairs:       make(map[enrollmentKey]bool),
	}
}

func (r *fakeEnrollmentRepo) checkExists(ctx context.Context, studentID, courseID int64) error {
	if _, err := r.studentRepo.GetByID(ctx, studentID); err != nil {
		return err
	}
	if _, err := r.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	return nil
}

func (r *fakeEnrollmentRepo) Enroll(ctx context.Context, studentID, courseID int64) error {
	if err := r.checkExists(ctx, studentID, courseID); err != nil {
		return err
	}
	r.pairs[enrollmentKey{studentID, courseID}] = true
	return nil
}

func (r *fakeEnrollmentRepo) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := r.checkExists(ctx, studentID, courseID); err != nil {
		return err
	}
	delete(r.pairs, enrollmentKey{studentID, courseID})
	return nil
}

func (r *fakeEnrollmentRepo) GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	courses := make([]*models.Course, 0)
	for key := range r.pairs {
		if key.studentID != studentID {
			continue
		}
		course, err := r.courseRepo.GetByID(ctx, key.courseID)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (r *fakeEnrollmentRepo) GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	students := make([]*models.Student, 0)
	for key := range r.pairs {
		if key.courseID != courseID {
			continue
		}
		student, err := r.studentRepo.GetByID(ctx, key.studentID)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, nil
}
