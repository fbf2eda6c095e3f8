package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models/dto"
	"github.com/ascent/coursebuddy/internal/app/services"
	"github.com/ascent/coursebuddy/internal/middleware"
)

// StudentController handles student CRUD and enrollment endpoints
type StudentController struct {
	studentService    *services.StudentService
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, enrollmentService *services.EnrollmentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService:    studentService,
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// parseIDParam parses a path parameter as an id, writing a 400 on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id parameter").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// GetAllStudents lists every student (admin only)
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// GetStudentByID returns one student (admin only)
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// CreateStudent creates the student profile for an existing user account,
// identified by the username query parameter. This completes registration.
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	username := ctx.Query("username")
	if username == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "username query parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), &req, username)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", username).Msg("Create student failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// UpdateStudent updates a student's profile (admin only)
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student profile (admin only). The owning user
// account stays.
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetMyProfile returns the calling user's student profile
func (c *StudentController) GetMyProfile(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	student, err := c.studentService.GetStudentByUserID(ctx.Request.Context(), principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// UpdateMyProfile updates the calling user's student profile
func (c *StudentController) UpdateMyProfile(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudentByUserID(ctx.Request.Context(), principal.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// GetMyCourses returns the calling user's enrolled course set
func (c *StudentController) GetMyCourses(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	courses, err := c.enrollmentService.GetStudentCoursesByUserID(ctx.Request.Context(), principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// EnrollMe enrolls the calling user's student profile in a course
func (c *StudentController) EnrollMe(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	var req dto.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "courseId is required").WithField("courseId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.EnrollByUserID(ctx.Request.Context(), principal.UserID, req.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Successfully enrolled in course"})
}

// UnenrollMe removes the calling user's student profile from a course
func (c *StudentController) UnenrollMe(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	var req dto.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "courseId is required").WithField("courseId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.UnenrollByUserID(ctx.Request.Context(), principal.UserID, req.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Successfully unenrolled from course"})
}

// GetStudentCourses returns a student's course set (admin only)
func (c *StudentController) GetStudentCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.enrollmentService.GetStudentCourses(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// EnrollStudent enrolls a student in a course by ids (admin only) and
// returns the student with its refreshed course set.
func (c *StudentController) EnrollStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.enrollmentService.Enroll(ctx.Request.Context(), studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, err := c.enrollmentService.GetStudentCourses(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	student.Courses = courses

	ctx.JSON(http.StatusOK, student)
}

// UnenrollStudent removes a student from a course by ids (admin only)
func (c *StudentController) UnenrollStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.enrollmentService.Unenroll(ctx.Request.Context(), studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
