package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ascent/coursebuddy/internal/app/controllers"
	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/middleware"
)

// SetupRouter configures all application routes. The authenticator runs on
// every request and fails open to anonymous; RequireAuth/RequireRole on the
// groups below are the enforcement points.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")
	api.Use(authMiddleware.Authenticate())

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Admin user management ---
	// The reference system left these open; here they require an ADMIN
	// principal, with the seeded default admin as the bootstrap path.
	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/create-admin", adminController.CreateAdmin)
		admin.GET("/list-users", adminController.ListUsers)
		admin.PUT("/update-password", adminController.UpdatePassword)
	}

	// --- Student routes ---
	students := api.Group("/students")
	{
		// Creating the profile completes registration and stays open
		students.POST("", studentController.CreateStudent)

		// Self-service routes for the authenticated user
		me := students.Group("/me")
		me.Use(authMiddleware.RequireAuth())
		{
			me.GET("", studentController.GetMyProfile)
			me.PUT("", studentController.UpdateMyProfile)
			me.GET("/courses", studentController.GetMyCourses)
			me.POST("/enroll", studentController.EnrollMe)
			me.POST("/unenroll", studentController.UnenrollMe)
		}

		// Admin-only by-id routes
		adminOnly := students.Group("")
		adminOnly.Use(authMiddleware.RequireRole(models.RoleAdmin))
		{
			adminOnly.GET("", studentController.GetAllStudents)
			adminOnly.GET("/:id", studentController.GetStudentByID)
			adminOnly.PUT("/:id", studentController.UpdateStudent)
			adminOnly.DELETE("/:id", studentController.DeleteStudent)
			adminOnly.GET("/:id/courses", studentController.GetStudentCourses)
			adminOnly.POST("/:id/courses/:courseId", studentController.EnrollStudent)
			adminOnly.DELETE("/:id/courses/:courseId", studentController.UnenrollStudent)
		}
	}

	// --- Course routes ---
	courses := api.Group("/courses")
	{
		// Reads are public
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)

		coursesAdmin := courses.Group("")
		coursesAdmin.Use(authMiddleware.RequireRole(models.RoleAdmin))
		{
			coursesAdmin.GET("/:id/students", courseController.GetCourseStudents)
			coursesAdmin.POST("", courseController.CreateCourse)
			coursesAdmin.PUT("/:id", courseController.UpdateCourse)
			coursesAdmin.DELETE("/:id", courseController.DeleteCourse)
		}
	}
}
