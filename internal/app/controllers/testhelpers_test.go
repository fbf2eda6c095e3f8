package controllers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/app/services"
	"github.com/ascent/coursebuddy/internal/middleware"
	"github.com/ascent/coursebuddy/internal/pkg/apperrors"
	"github.com/ascent/coursebuddy/internal/pkg/auth"
)

// In-memory repositories backing the HTTP-level tests. Same sentinel errors
// and idempotency rules as the real ones, without a database.

type memUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
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

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, username, passwordHash string) error {
	for _, user := range r.users {
		if user.Username == username {
			user.Password = passwordHash
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type memStudentRepo struct {
	students map[int64]*models.Student
	nextID   int64
}

func (r *memStudentRepo) Create(_ context.Context, student *models.Student) error {
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

func (r *memStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (r *memStudentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, student := range r.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *memStudentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	students := make([]*models.Student, 0, len(r.students))
	for _, student := range r.students {
		students = append(students, student)
	}
	return students, nil
}

func (r *memStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	r.students[student.ID] = student
	return nil
}

func (r *memStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

type memCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func (r *memCourseRepo) Create(_ context.Context, course *models.Course) error {
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

func (r *memCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (r *memCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	courses := make([]*models.Course, 0, len(r.courses))
	for _, course := range r.courses {
		courses = append(courses, course)
	}
	return courses, nil
}

func (r *memCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	r.courses[course.ID] = course
	return nil
}

func (r *memCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

type memEnrollmentRepo struct {
	studentRepo *memStudentRepo
	courseRepo  *memCourseRepo
	pairs       map[[2]int64]bool
}

func (r *memEnrollmentRepo) check(ctx context.Context, studentID, courseID int64) error {
	if _, err := r.studentRepo.GetByID(ctx, studentID); err != nil {
		return err
	}
	if _, err := r.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	return nil
}

func (r *memEnrollmentRepo) Enroll(ctx context.Context, studentID, courseID int64) error {
	if err := r.check(ctx, studentID, courseID); err != nil {
		return err
	}
	r.pairs[[2]int64{studentID, courseID}] = true
	return nil
}

func (r *memEnrollmentRepo) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := r.check(ctx, studentID, courseID); err != nil {
		return err
	}
	delete(r.pairs, [2]int64{studentID, courseID})
	return nil
}

func (r *memEnrollmentRepo) GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	courses := make([]*models.Course, 0)
	for pair := range r.pairs {
		if pair[0] != studentID {
			continue
		}
		course, err := r.courseRepo.GetByID(ctx, pair[1])
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (r *memEnrollmentRepo) GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	students := make([]*models.Student, 0)
	for pair := range r.pairs {
		if pair[1] != courseID {
			continue
		}
		student, err := r.studentRepo.GetByID(ctx, pair[0])
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, nil
}

// testApp bundles the fully wired HTTP stack over in-memory repositories.
type testApp struct {
	router      *gin.Engine
	jwtService  *auth.JWTService
	userRepo    *memUserRepo
	studentRepo *memStudentRepo
	courseRepo  *memCourseRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := &memUserRepo{users: make(map[int64]*models.User)}
	studentRepo := &memStudentRepo{students: make(map[int64]*models.Student)}
	courseRepo := &memCourseRepo{courses: make(map[int64]*models.Course)}
	enrollmentRepo := &memEnrollmentRepo{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		pairs:       make(map[[2]int64]bool),
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "coursebuddy.test",
	})
	lgr := zerolog.Nop()

	authService := services.NewAuthService(userRepo, jwtService, lgr)
	userService := services.NewUserService(userRepo, lgr)
	studentService := services.NewStudentService(studentRepo, userRepo, lgr)
	courseService := services.NewCourseService(courseRepo, lgr)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, lgr)

	mw := middleware.NewAuthMiddleware(jwtService, userRepo, lgr)

	authController := NewAuthController(authService, lgr)
	adminController := NewAdminController(userService, lgr)
	studentController := NewStudentController(studentService, enrollmentService, lgr)
	courseController := NewCourseController(courseService, enrollmentService, lgr)

	router := gin.New()
	wireRoutes(router, authController, adminController, studentController, courseController, mw)

	return &testApp{
		router:      router,
		jwtService:  jwtService,
		userRepo:    userRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
	}
}

// wireRoutes mirrors the production route table.
func wireRoutes(
	router *gin.Engine,
	authController *AuthController,
	adminController *AdminController,
	studentController *StudentController,
	courseController *CourseController,
	mw *middleware.AuthMiddleware,
) {
	api := router.Group("/api")
	api.Use(mw.Authenticate())

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)

	admin := api.Group("/admin")
	admin.Use(mw.RequireRole(models.RoleAdmin))
	admin.POST("/create-admin", adminController.CreateAdmin)
	admin.GET("/list-users", adminController.ListUsers)
	admin.PUT("/update-password", adminController.UpdatePassword)

	students := api.Group("/students")
	students.POST("", studentController.CreateStudent)

	me := students.Group("/me")
	me.Use(mw.RequireAuth())
	me.GET("", studentController.GetMyProfile)
	me.PUT("", studentController.UpdateMyProfile)
	me.GET("/courses", studentController.GetMyCourses)
	me.POST("/enroll", studentController.EnrollMe)
	me.POST("/unenroll", studentController.UnenrollMe)

	adminOnly := students.Group("")
	adminOnly.Use(mw.RequireRole(models.RoleAdmin))
	adminOnly.GET("", studentController.GetAllStudents)
	adminOnly.GET("/:id", studentController.GetStudentByID)
	adminOnly.PUT("/:id", studentController.UpdateStudent)
	adminOnly.DELETE("/:id", studentController.DeleteStudent)
	adminOnly.GET("/:id/courses", studentController.GetStudentCourses)
	adminOnly.POST("/:id/courses/:courseId", studentController.EnrollStudent)
	adminOnly.DELETE("/:id/courses/:courseId", studentController.UnenrollStudent)

	courses := api.Group("/courses")
	courses.GET("", courseController.GetAllCourses)
	courses.GET("/:id", courseController.GetCourseByID)

	coursesAdmin := courses.Group("")
	coursesAdmin.Use(mw.RequireRole(models.RoleAdmin))
	coursesAdmin.GET("/:id/students", courseController.GetCourseStudents)
	coursesAdmin.POST("", courseController.CreateCourse)
	coursesAdmin.PUT("/:id", courseController.UpdateCourse)
	coursesAdmin.DELETE("/:id", courseController.DeleteCourse)
}

func (a *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// adminToken seeds an admin account and returns a token for it.
func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	admin := &models.User{Username: "admin@admin.com", Password: hash, Role: models.RoleAdmin}
	require.NoError(t, a.userRepo.Create(context.Background(), admin))

	token, err := a.jwtService.GenerateToken(admin.Username, admin.Role)
	require.NoError(t, err)
	return token
}

// studentToken registers a student account with a profile and returns its token.
func (a *testApp) studentToken(t *testing.T, username string) string {
	t.Helper()
	hash, err := auth.HashPassword("secret99")
	require.NoError(t, err)
	user := &models.User{Username: username, Password: hash, Role: models.RoleStudent}
	require.NoError(t, a.userRepo.Create(context.Background(), user))
	require.NoError(t, a.studentRepo.Create(context.Background(), &models.Student{
		UserID:    user.ID,
		FirstName: "Jane",
		LastName:  "Doe",
	}))

	token, err := a.jwtService.GenerateToken(user.Username, user.Role)
	require.NoError(t, err)
	return token
}

func (a *testApp) addCourse(t *testing.T, code string) *models.Course {
	t.Helper()
	course := &models.Course{CourseCode: code, CourseName: "Course " + code}
	require.NoError(t, a.courseRepo.Create(context.Background(), course))
	return course
}
