package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models/dto"
	"github.com/ascent/coursebuddy/internal/app/services"
	"github.com/ascent/coursebuddy/internal/middleware"
)

// CourseController handles course CRUD endpoints
type CourseController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, enrollmentService *services.EnrollmentService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// GetAllCourses lists every course (public)
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// GetCourseByID returns one course (public)
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// GetCourseStudents returns the students enrolled in a course (admin only)
func (c *CourseController) GetCourseStudents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	students, err := c.enrollmentService.GetCourseStudents(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// CreateCourse creates a course (admin only)
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var createdBy *int64
	if principal, ok := middleware.CurrentPrincipal(ctx); ok {
		createdBy = &principal.UserID
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req, createdBy)
	if err != nil {
		c.logger.Warn().Err(err).Str("courseCode", req.CourseCode).Msg("Create course failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, course)
}

// UpdateCourse rewrites a course (admin only)
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse removes a course (admin only)
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
